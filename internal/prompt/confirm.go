package prompt

import "strings"

var (
	yesWords = map[string]struct{}{
		"yes": {}, "y": {}, "yeah": {}, "yep": {}, "yup": {}, "sure": {}, "ok": {}, "okay": {}, "true": {}, "1": {},
	}
	noWords = map[string]struct{}{
		"no": {}, "n": {}, "nope": {}, "nah": {}, "false": {}, "0": {},
	}
	// "don't" and "can't" tokenize as "don"/"can" + "t".
	negators = map[string]struct{}{
		"not": {}, "dont": {}, "don": {}, "t": {}, "never": {},
	}
)

// ConfirmPrompt recognizes a yes/no answer.
type ConfirmPrompt struct {
	Text string
}

func NewConfirmPrompt(text string) *ConfirmPrompt {
	return &ConfirmPrompt{Text: text}
}

// Recognize - returns the answer and whether one was found.
// The first yes or no word wins; a negated one ("not sure") leaves the answer unrecognized.
func (that *ConfirmPrompt) Recognize(text string) (bool, bool) {
	negated := false

	for _, token := range tokens(normalize(text)) {
		token = strings.Trim(token, ".-+")

		if _, ok := negators[token]; ok {
			negated = true
			continue
		}

		_, yes := yesWords[token]
		_, no := noWords[token]

		switch {
		case (yes || no) && negated:
			return false, false
		case yes:
			return true, true
		case no:
			return false, true
		}
	}

	return false, false
}
