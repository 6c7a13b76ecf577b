package hunt

import (
	"regexp"
	"strings"
)

// exitPattern matches "I'm done", "Im done", "I am done" and "perfect".
var exitPattern = regexp.MustCompile(`(?i)\bi(?:['’ ]?m| am) done\b|\bperfect\b`)

// skipAheadTokens are refused while a gift is being customized.
var skipAheadTokens = []string{"next", "challenge", "gift"}

func isExitPhrase(text string) bool {
	return exitPattern.MatchString(text)
}

func isSkipAhead(text string) bool {
	lower := strings.ToLower(text)
	for _, token := range skipAheadTokens {
		if strings.Contains(lower, token) {
			return true
		}
	}
	return false
}
