package textfilter

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// harshWords maps disparaging words that have no place in an affectionate
// roast to playful alternatives.
var harshWords = map[string]string{
	"stupid":     "silly",
	"idiot":      "goofball",
	"idiotic":    "goofy",
	"dumb":       "daft",
	"moron":      "dork",
	"ugly":       "quirky",
	"pathetic":   "adorable",
	"worthless":  "priceless",
	"useless":    "hopeless",
	"loser":      "sweetheart",
	"hate":       "tease",
	"disgusting": "outrageous",
	"terrible":   "wonderfully bad",
	"awful":      "awfully cute",
	"shut up":    "hush",
	"fat":        "cuddly",
	"lame":       "cheesy",
	"annoying":   "relentless",
	"clueless":   "dreamy",
	"boring":     "cozy",
}

// ToneFilter softens harsh words in generated text.
type ToneFilter struct {
	words   []string
	regexes map[string]*regexp.Regexp
}

// NewToneFilter creates a tone filter with its patterns compiled.
func NewToneFilter() *ToneFilter {
	tf := &ToneFilter{
		regexes: make(map[string]*regexp.Regexp, len(harshWords)),
	}
	for word := range harshWords {
		tf.words = append(tf.words, word)
		tf.regexes[word] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(word) + `\b`)
	}
	// Longest first, so phrases are replaced before the words inside them.
	sort.Slice(tf.words, func(i, j int) bool {
		if len(tf.words[i]) != len(tf.words[j]) {
			return len(tf.words[i]) > len(tf.words[j])
		}
		return tf.words[i] < tf.words[j]
	})
	return tf
}

// Soften replaces harsh words, keeping the case pattern of each match.
func (tf *ToneFilter) Soften(text string) string {
	result := text
	for _, word := range tf.words {
		replacement := harshWords[word]
		result = tf.regexes[word].ReplaceAllStringFunc(result, func(match string) string {
			return preserveCase(match, replacement)
		})
	}
	return result
}

// IsHarsh reports whether the text contains any word Soften would change.
func (tf *ToneFilter) IsHarsh(text string) bool {
	for _, word := range tf.words {
		if tf.regexes[word].MatchString(text) {
			return true
		}
	}
	return false
}

// preserveCase applies the case pattern of the original word to the replacement
func preserveCase(original, replacement string) string {
	if original == "" {
		return replacement
	}

	if strings.ToUpper(original) == original {
		return strings.ToUpper(replacement)
	}
	if strings.ToLower(original) == original {
		return strings.ToLower(replacement)
	}

	titleCaser := cases.Title(language.English)
	if titleCaser.String(strings.ToLower(original)) == original {
		return titleCaser.String(replacement)
	}

	// Only the first letter is capitalized, e.g. "Shut up" -> "Hush".
	runes := []rune(strings.ToLower(replacement))
	if first := []rune(original)[0]; unicode.IsUpper(first) {
		runes[0] = unicode.ToUpper(runes[0])
	}
	return string(runes)
}
