package sanitizer

import (
	"strings"
	"unicode"
)

func TrimAndNormalize(s string) string {
	s = strings.TrimSpace(s)

	if s == "" {
		return ""
	}

	var result strings.Builder
	var lastWasSpace bool

	for _, r := range s {
		if unicode.IsSpace(r) {
			if !lastWasSpace {
				result.WriteRune(' ')
				lastWasSpace = true
			}
		} else {
			result.WriteRune(r)
			lastWasSpace = false
		}
	}

	return result.String()
}

func NormalizeID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

func NormalizeName(name string) string {
	return TrimAndNormalize(name)
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizeTimeLabel collapses whitespace and uppercases the label so
// "08:00 am" matches the canonical "08:00 AM" grid form. It does not check
// grid membership, that is the validator's job.
func NormalizeTimeLabel(label string) string {
	return strings.ToUpper(TrimAndNormalize(label))
}

func NormalizeWeekday(weekday string) string {
	return strings.ToLower(TrimAndNormalize(weekday))
}
