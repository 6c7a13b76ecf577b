package hunt

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/jwebster45206/gift-hunt/pkg/gift"
)

var (
	ErrMissingCompletion = errors.New("no completion timestamp recorded for gift")
	ErrEmptyDraft        = errors.New("draft cannot be empty")
	ErrNotCustomizing    = errors.New("gift is not awaiting customization")
)

// SubState is the per-gift progress marker. It only ever moves forward.
type SubState int

const (
	AwaitingAnswer SubState = iota
	AwaitingCustomization
	Complete
)

func (s SubState) String() string {
	switch s {
	case AwaitingAnswer:
		return "awaiting_answer"
	case AwaitingCustomization:
		return "awaiting_customization"
	case Complete:
		return "complete"
	default:
		return fmt.Sprintf("substate(%d)", int(s))
	}
}

type progress struct {
	subState  SubState
	draft     string
	reachable bool // lock from the previous gift observed elapsed
}

// Hunt owns the mutable state of a single hunt and the transition function
// that advances it. All methods are safe for concurrent use; state changes
// are serialized behind one mutex.
type Hunt struct {
	mu          sync.Mutex
	catalog     *gift.Catalog
	clock       clockwork.Clock
	logger      *slog.Logger
	progress    []progress
	completions map[int]time.Time
}

// New creates a hunt at its initial state: gift 1 awaiting an answer.
func New(catalog *gift.Catalog, clock clockwork.Clock, logger *slog.Logger) *Hunt {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if logger == nil {
		logger = slog.Default()
	}
	h := &Hunt{
		catalog: catalog,
		clock:   clock,
		logger:  logger,
	}
	h.reset()
	return h
}

func (h *Hunt) reset() {
	h.progress = make([]progress, h.catalog.Len())
	if len(h.progress) > 0 {
		h.progress[0].reachable = true
	}
	h.completions = make(map[int]time.Time)
}

// Reset discards all progress.
func (h *Hunt) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.reset()
	h.logger.Info("Hunt reset", "catalog", h.catalog.Name)
}

func (h *Hunt) Catalog() *gift.Catalog {
	return h.catalog
}

// Opening returns the first gift, whose question opens the hunt.
func (h *Hunt) Opening() (gift.Gift, error) {
	return h.catalog.Gift(1)
}

func (h *Hunt) IsComplete() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.activeOrdinal() == 0
}

// activeOrdinal returns the first gift that is not complete, or 0.
func (h *Hunt) activeOrdinal() int {
	for i, p := range h.progress {
		if p.subState != Complete {
			return i + 1
		}
	}
	return 0
}

// Advance applies one user turn and reports what happened.
func (h *Hunt) Advance(text string) Result {
	h.mu.Lock()
	defer h.mu.Unlock()

	ordinal := h.activeOrdinal()
	if ordinal == 0 {
		return AllComplete{}
	}
	g, err := h.catalog.Gift(ordinal)
	if err != nil {
		return h.configError("active gift missing from catalog", err)
	}
	p := &h.progress[ordinal-1]

	// Exit is checked before anything else while customizing.
	if p.subState == AwaitingCustomization && isExitPhrase(text) {
		h.complete(ordinal)
		h.logger.Info("Gift customization finished", "gift", ordinal, "name", g.Name)
		return h.evaluateLock(ordinal)
	}

	switch p.subState {
	case AwaitingAnswer:
		if !p.reachable {
			// An elapsed lock marks the gift reachable; the guess is then judged like any other.
			if res := h.evaluateLock(ordinal - 1); res.Kind() != KindDeliverClue {
				return res
			}
		}

		if !g.Accepts(text) {
			h.logger.Debug("Wrong answer", "gift", ordinal)
			return Failure{Guess: text, Question: g.Question}
		}

		p.subState = AwaitingCustomization
		p.draft = g.Content
		h.logger.Info("Gift unlocked", "gift", ordinal, "name", g.Name, "customizable", g.Customizable)

		if !g.Customizable {
			h.complete(ordinal)
			return h.evaluateLock(ordinal)
		}
		return SuccessUnlock{
			Ordinal:             ordinal,
			GiftName:            g.Name,
			Content:             g.Content,
			CustomizationPrompt: g.CustomizationPrompt,
		}

	case AwaitingCustomization:
		if isSkipAhead(text) {
			h.logger.Info("Skip-ahead request refused", "gift", ordinal)
			return GuardrailViolation{}
		}
		return GenerateRequest{
			Ordinal: ordinal,
			Prompt:  buildRewritePrompt(p.draft, text),
		}

	case Complete:
		return h.evaluateLock(ordinal)
	}

	return Unknown{}
}

// complete marks the gift done and stamps its completion time once.
func (h *Hunt) complete(ordinal int) {
	h.progress[ordinal-1].subState = Complete
	if _, ok := h.completions[ordinal]; !ok {
		h.completions[ordinal] = h.clock.Now()
	}
}

func (h *Hunt) configError(reason string, err error) ConfigError {
	h.logger.Error("Hunt configuration error", "reason", reason, "error", err)
	return ConfigError{Reason: reason, Err: err}
}

// Draft returns the current content draft of a gift.
func (h *Hunt) Draft(ordinal int) (string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if ordinal < 1 || ordinal > len(h.progress) {
		return "", fmt.Errorf("%w: %d", gift.ErrOrdinalOutOfRange, ordinal)
	}
	return h.progress[ordinal-1].draft, nil
}

// UpdateDraft stores generated text as the gift's new draft. It is the
// write-back half of a GenerateRequest and fails if the gift has moved on
// while generation was running.
func (h *Hunt) UpdateDraft(ordinal int, text string) error {
	if text == "" {
		return ErrEmptyDraft
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if ordinal < 1 || ordinal > len(h.progress) {
		return fmt.Errorf("%w: %d", gift.ErrOrdinalOutOfRange, ordinal)
	}
	p := &h.progress[ordinal-1]
	if p.subState != AwaitingCustomization {
		return fmt.Errorf("%w: gift %d is %s", ErrNotCustomizing, ordinal, p.subState)
	}
	p.draft = text
	h.logger.Debug("Draft updated", "gift", ordinal, "length", len(text))
	return nil
}

// GiftProgress is a read-only view of one gift's progress.
type GiftProgress struct {
	Ordinal     int        `json:"ordinal"`
	Name        string     `json:"name"`
	SubState    string     `json:"sub_state"`
	Reachable   bool       `json:"reachable"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

func (h *Hunt) Progress() []GiftProgress {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]GiftProgress, 0, len(h.progress))
	for i, p := range h.progress {
		g, _ := h.catalog.Gift(i + 1)
		gp := GiftProgress{
			Ordinal:   i + 1,
			Name:      g.Name,
			SubState:  p.subState.String(),
			Reachable: p.reachable,
		}
		if ts, ok := h.completions[i+1]; ok {
			gp.CompletedAt = &ts
		}
		out = append(out, gp)
	}
	return out
}
