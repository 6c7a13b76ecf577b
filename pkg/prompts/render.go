package prompts

import (
	"fmt"

	"github.com/jwebster45206/gift-hunt/pkg/chat"
	"github.com/jwebster45206/gift-hunt/pkg/gift"
	"github.com/jwebster45206/gift-hunt/pkg/hunt"
)

// Welcome opens the hunt with the first gift's question.
func Welcome(first gift.Gift) chat.ChatResponse {
	return chat.ChatResponse{
		ResponseText: fmt.Sprintf("Welcome to the hunt! I'm Agent Cupid, your guide. "+
			"Your first gift, '%s', is locked. To unlock it, answer this: **%s**", first.Name, first.Question),
		AgentState: chat.AgentStateExcited,
	}
}

// Render turns results that need no generation into a reply. ok is false for
// FAILURE, UNKNOWN and GENERATE_REQUEST, which the caller must generate.
func Render(r hunt.Result) (resp chat.ChatResponse, ok bool) {
	resp.Kind = r.Kind().String()
	switch r := r.(type) {
	case hunt.SuccessUnlock:
		resp.ResponseText = fmt.Sprintf("**YES! You got it right!**\nAgent Cupid is thrilled to unlock gift #%d: **%s!**\n\n%s\n\n**Next Step:** %s",
			r.Ordinal, r.GiftName, r.Content, r.CustomizationPrompt)
		resp.AgentState = chat.AgentStateExcited
	case hunt.Locked:
		resp.ResponseText = fmt.Sprintf("HUH! You're a little too fast! The next gift (**%s**) has a **%s** time lock on it. "+
			"Go enjoy your gift and come back later. I'll be waiting!", r.NextGiftName, r.TimeRemaining())
		resp.AgentState = chat.AgentStateSmiling
	case hunt.DeliverClue:
		resp.ResponseText = fmt.Sprintf("Amazing! Time's up, and you're ready for the next surprise, **%s**!\nYour next challenge is: **%s**",
			r.GiftName, r.Question)
		resp.AgentState = chat.AgentStateExcited
	case hunt.AllComplete:
		resp.ResponseText = "That's every gift unlocked! Happy birthday from Agent Cupid. Thanks for playing!"
		resp.AgentState = chat.AgentStateExcited
	case hunt.GuardrailViolation:
		resp.ResponseText = GuardrailRefusal
		resp.AgentState = chat.AgentStateConfused
	case hunt.ConfigError:
		resp.ResponseText = InternalError
		resp.AgentState = chat.AgentStateConfused
	default:
		return resp, false
	}
	return resp, true
}

// Revised wraps a freshly generated draft.
func Revised(draft string) chat.ChatResponse {
	return chat.ChatResponse{
		ResponseText: fmt.Sprintf("**REVISED DRAFT!**\nAgent Cupid has refined it based on your notes:\n\n%s\n\n"+
			"**How is that? Want another edit, or are you ready to say 'I'm done!'?**", draft),
		AgentState: chat.AgentStateExcited,
		Kind:       hunt.KindGenerateRequest.String(),
	}
}
