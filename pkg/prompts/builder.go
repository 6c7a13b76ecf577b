package prompts

import (
	"fmt"
	"strings"

	"github.com/jwebster45206/gift-hunt/pkg/hunt"
)

// Builder assembles the status-report prompt sent to the generator for turns
// the hunt does not answer with fixed text.
type Builder struct {
	result      hunt.Result
	userMessage string
}

func New() *Builder {
	return &Builder{}
}

func (b *Builder) WithResult(r hunt.Result) *Builder {
	b.result = r
	return b
}

func (b *Builder) WithUserMessage(message string) *Builder {
	b.userMessage = message
	return b
}

// Build returns the system instruction and the user prompt.
func (b *Builder) Build() (string, string, error) {
	if b.result == nil {
		return "", "", fmt.Errorf("result is required")
	}

	var status strings.Builder
	fmt.Fprintf(&status, "GAME_MASTER_STATUS: %s.", strings.ToUpper(b.result.Kind().String()))
	switch r := b.result.(type) {
	case hunt.Failure:
		fmt.Fprintf(&status, " The player guessed wrong. CURRENT_CLUE: %s", r.Question)
	case hunt.Unknown:
		status.WriteString(" The Game Master could not classify this turn. Ask the player to try again.")
	default:
		return "", "", fmt.Errorf("no generated reply for result %s", b.result.Kind())
	}
	fmt.Fprintf(&status, "\nUSER_INPUT: %s", b.userMessage)

	return SystemInstruction, status.String(), nil
}
