package prompt

import (
	"math"
	"strconv"
	"strings"
)

var numberWords = map[string]int{
	"zero":  0,
	"one":   1,
	"two":   2,
	"three": 3,
	"four":  4,
	"five":  5,
	"six":   6,
	"seven": 7,
	"eight": 8,
	"nine":  9,
	"ten":   10,
}

// NumberPrompt recognizes a whole number in free text and checks it with Validator.
type NumberPrompt struct {
	Text      string
	Validator func(int) bool
}

func NewNumberPrompt(text string, validator func(int) bool) *NumberPrompt {
	return &NumberPrompt{
		Text:      text,
		Validator: validator,
	}
}

// Recognize - returns the first number found in text if it passes validation.
func (that *NumberPrompt) Recognize(text string) (int, bool) {
	value, ok := recognizeNumber(text)
	if !ok {
		return 0, false
	}

	if that.Validator != nil && !that.Validator(value) {
		return 0, false
	}

	return value, true
}

func recognizeNumber(text string) (int, bool) {
	for _, token := range tokens(normalize(text)) {
		token = strings.Trim(token, ".")
		if token == "" {
			continue
		}

		if n, err := strconv.Atoi(token); err == nil {
			return n, true
		}

		if !isNumeric(token) {
			if n, ok := numberWords[strings.TrimLeft(token, "+")]; ok {
				return n, true
			}

			continue
		}

		if f, err := strconv.ParseFloat(token, 64); err == nil {
			if f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
				return 0, false
			}

			return int(f), true
		}
	}

	return 0, false
}

func isNumeric(token string) bool {
	digits := 0

	for i, r := range token {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case (r == '-' || r == '+') && i == 0:
		case r == '.':
		default:
			return false
		}
	}

	return digits > 0
}
