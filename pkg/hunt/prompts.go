package hunt

import "fmt"

// RewritePrompt is the instruction sent to the text generator when the user
// asks for a new version of a customizable gift. Arguments: current draft,
// user request.
const RewritePrompt = `You are a funny and romantic rewrite specialist. Rewrite the poem entirely based on the user's request. It must be a reply to the original poem: if the user asks to make it funnier, write a thank-you reply to the author in a funnier tone.
If the user asks for a roast, make the roast funny and affectionate, NEVER mean or dismissive.
The final poem MUST be concise, under 8 lines, and suitable for a cheerful chat interface.

Current Poem (Modify This):
---
%s
---
User Request: %s`

func buildRewritePrompt(draft, request string) string {
	return fmt.Sprintf(RewritePrompt, draft, request)
}
