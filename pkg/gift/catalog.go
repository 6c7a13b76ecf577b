package gift

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrOrdinalOutOfRange = errors.New("gift ordinal out of range")
	ErrNoUnlockDelay     = errors.New("no unlock delay configured for gift")
)

// Gift is one stage of the hunt: a question to answer and the content it unlocks.
type Gift struct {
	Ordinal             int      `json:"-" yaml:"-"`                                                           // 1-based position in the catalog
	Name                string   `json:"name" yaml:"name"`                                                     // Display name, e.g. "The Birthday Bard"
	Question            string   `json:"question" yaml:"question"`                                             // Clue that unlocks the gift
	Answers             []string `json:"answers" yaml:"answers"`                                               // Accepted answers, compared after normalization
	Content             string   `json:"content" yaml:"content"`                                               // Static payload (text or markup)
	CustomizationPrompt string   `json:"customization_prompt,omitempty" yaml:"customization_prompt,omitempty"` // Shown to the user after unlock
	Customizable        bool     `json:"customizable,omitempty" yaml:"customizable,omitempty"`                 // Whether the content can be rewritten on request
}

// Catalog is the ordered, read-only list of gifts plus the unlock intervals.
// UnlockIntervals maps a gift ordinal to the minimum delay after the
// previous gift's completion before the gift may be attempted.
type Catalog struct {
	Name            string
	gifts           []Gift
	unlockIntervals map[int]time.Duration
}

// NewCatalog builds a catalog from gifts in order. Ordinals are assigned from
// slice position.
func NewCatalog(name string, gifts []Gift, intervals map[int]time.Duration) *Catalog {
	c := &Catalog{
		Name:            name,
		gifts:           make([]Gift, len(gifts)),
		unlockIntervals: make(map[int]time.Duration, len(intervals)),
	}
	for i, g := range gifts {
		g.Ordinal = i + 1
		g.Answers = append([]string(nil), g.Answers...)
		c.gifts[i] = g
	}
	for ordinal, d := range intervals {
		c.unlockIntervals[ordinal] = d
	}
	return c
}

func (c *Catalog) Len() int {
	return len(c.gifts)
}

// Gift returns a copy of the gift at the given 1-based ordinal.
func (c *Catalog) Gift(ordinal int) (Gift, error) {
	if ordinal < 1 || ordinal > len(c.gifts) {
		return Gift{}, fmt.Errorf("%w: %d (catalog has %d)", ErrOrdinalOutOfRange, ordinal, len(c.gifts))
	}
	g := c.gifts[ordinal-1]
	g.Answers = append([]string(nil), g.Answers...)
	return g, nil
}

func (c *Catalog) Answers(ordinal int) ([]string, error) {
	g, err := c.Gift(ordinal)
	if err != nil {
		return nil, err
	}
	return g.Answers, nil
}

// UnlockDelay returns the wait required after gift ordinal-1 completes.
// A configured zero delay is valid and distinct from an absent one.
func (c *Catalog) UnlockDelay(ordinal int) (time.Duration, error) {
	if ordinal < 1 || ordinal > len(c.gifts) {
		return 0, fmt.Errorf("%w: %d (catalog has %d)", ErrOrdinalOutOfRange, ordinal, len(c.gifts))
	}
	d, ok := c.unlockIntervals[ordinal]
	if !ok {
		return 0, fmt.Errorf("%w: %d", ErrNoUnlockDelay, ordinal)
	}
	return d, nil
}

// Gifts returns copies of all gifts in order.
func (c *Catalog) Gifts() []Gift {
	out := make([]Gift, 0, len(c.gifts))
	for i := range c.gifts {
		g, _ := c.Gift(i + 1)
		out = append(out, g)
	}
	return out
}
