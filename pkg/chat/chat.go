package chat

import (
	"fmt"
	"strings"
)

// StartMessage is sent by clients to open the hunt and receive gift 1's question.
const StartMessage = "START_GAME_INIT"

// MaxMessageLength bounds a single user message.
const MaxMessageLength = 2000

// Agent states hint the client how to style a reply.
const (
	AgentStateExcited  = "excited"
	AgentStateSmiling  = "smiling"
	AgentStateConfused = "confused"
)

// ChatRequest represents a message sent by the player to the hunt API.
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse represents the agent's reply.
type ChatResponse struct {
	ResponseText string `json:"response_text,omitempty"`
	AgentState   string `json:"agent_state,omitempty"`
	Kind         string `json:"kind,omitempty"` // result kind that produced the reply
	Error        string `json:"error,omitempty"`
}

func (cr *ChatRequest) Validate() error {
	if strings.TrimSpace(cr.Message) == "" {
		return fmt.Errorf("message cannot be empty")
	}
	if len(cr.Message) > MaxMessageLength {
		return fmt.Errorf("message exceeds %d characters", MaxMessageLength)
	}
	return nil
}
