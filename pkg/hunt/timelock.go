package hunt

import "time"

// evaluateLock decides whether the gift after ordinal may be attempted.
// Callers must hold h.mu.
func (h *Hunt) evaluateLock(ordinal int) Result {
	next := ordinal + 1
	if next > h.catalog.Len() {
		return AllComplete{Finished: true}
	}

	completedAt, ok := h.completions[ordinal]
	if !ok {
		return h.configError("time lock evaluated before completion", ErrMissingCompletion)
	}
	delay, err := h.catalog.UnlockDelay(next)
	if err != nil {
		return h.configError("time lock without interval", err)
	}
	nextGift, err := h.catalog.Gift(next)
	if err != nil {
		return h.configError("next gift missing from catalog", err)
	}

	now := h.clock.Now()
	elapsed := now.Sub(completedAt)
	if elapsed < delay {
		remaining := delay - elapsed
		return Locked{
			Hours:        int(remaining / time.Hour),
			Minutes:      int((remaining % time.Hour) / time.Minute),
			NextGiftName: nextGift.Name,
		}
	}

	p := &h.progress[next-1]
	if !p.reachable {
		p.subState = AwaitingAnswer
		p.reachable = true
	}
	h.logger.Info("Gift reachable", "gift", next, "name", nextGift.Name)
	return DeliverClue{
		Ordinal:  next,
		GiftName: nextGift.Name,
		Question: nextGift.Question,
	}
}
