package hunt

import (
	"fmt"
	"time"
)

// State is the serializable form of a hunt's progress. The hunt itself keeps
// nothing outside memory; State lets a caller persist and restore it.
type State struct {
	Catalog     string            `json:"catalog"`
	Gifts       []GiftState       `json:"gifts"`
	Completions map[int]time.Time `json:"completions,omitempty"`
	SavedAt     time.Time         `json:"saved_at"`
}

type GiftState struct {
	SubState  SubState `json:"sub_state"`
	Draft     string   `json:"draft,omitempty"`
	Reachable bool     `json:"reachable,omitempty"`
}

// Snapshot copies the current progress.
func (h *Hunt) Snapshot() *State {
	h.mu.Lock()
	defer h.mu.Unlock()

	s := &State{
		Catalog:     h.catalog.Name,
		Gifts:       make([]GiftState, len(h.progress)),
		Completions: make(map[int]time.Time, len(h.completions)),
		SavedAt:     h.clock.Now(),
	}
	for i, p := range h.progress {
		s.Gifts[i] = GiftState{SubState: p.subState, Draft: p.draft, Reachable: p.reachable}
	}
	for ordinal, ts := range h.completions {
		s.Completions[ordinal] = ts
	}
	return s
}

// Restore replaces the current progress with a snapshot taken from a hunt
// over the same catalog.
func (h *Hunt) Restore(s *State) error {
	if s == nil {
		return fmt.Errorf("state cannot be nil")
	}
	if s.Catalog != h.catalog.Name {
		return fmt.Errorf("state belongs to catalog %q, hunt uses %q", s.Catalog, h.catalog.Name)
	}
	if len(s.Gifts) != h.catalog.Len() {
		return fmt.Errorf("state has %d gifts, catalog has %d", len(s.Gifts), h.catalog.Len())
	}

	sawIncomplete := false
	for i, gs := range s.Gifts {
		if gs.SubState < AwaitingAnswer || gs.SubState > Complete {
			return fmt.Errorf("gift %d: invalid sub-state %d", i+1, gs.SubState)
		}
		if gs.SubState == Complete {
			if sawIncomplete {
				return fmt.Errorf("gift %d is complete but an earlier gift is not", i+1)
			}
			if _, ok := s.Completions[i+1]; !ok {
				return fmt.Errorf("gift %d: %w", i+1, ErrMissingCompletion)
			}
		} else {
			sawIncomplete = true
		}
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.progress = make([]progress, len(s.Gifts))
	for i, gs := range s.Gifts {
		h.progress[i] = progress{subState: gs.SubState, draft: gs.Draft, reachable: gs.Reachable}
	}
	if len(h.progress) > 0 {
		h.progress[0].reachable = true
	}
	h.completions = make(map[int]time.Time, len(s.Completions))
	for ordinal, ts := range s.Completions {
		h.completions[ordinal] = ts
	}
	h.logger.Info("Hunt restored", "catalog", s.Catalog, "saved_at", s.SavedAt)
	return nil
}
