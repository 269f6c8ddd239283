package domain

import (
	"fmt"
	"strconv"
	"time"
	"unicode"
)

// ParseDuration parses free-text timer durations like "1h30m", "90m",
// "45s" or "90". Digit runs accumulate until a unit letter (h, m, s);
// a trailing run with no unit counts as minutes; whitespace is
// ignored. Unknown characters, an empty input, or a total of zero are
// rejected.
func ParseDuration(input string) (time.Duration, error) {
	var total time.Duration
	var digits []rune

	for _, r := range input {
		switch {
		case unicode.IsDigit(r):
			digits = append(digits, r)
		case unicode.IsLetter(r):
			if len(digits) == 0 {
				continue
			}
			value, err := strconv.ParseInt(string(digits), 10, 64)
			if err != nil {
				return 0, ErrInvalidDuration
			}
			digits = digits[:0]
			switch unicode.ToLower(r) {
			case 'h':
				total += time.Duration(value) * time.Hour
			case 'm':
				total += time.Duration(value) * time.Minute
			case 's':
				total += time.Duration(value) * time.Second
			default:
				return 0, ErrInvalidDuration
			}
		case unicode.IsSpace(r):
		default:
			return 0, ErrInvalidDuration
		}
	}

	// Trailing number without a unit is taken as minutes.
	if len(digits) > 0 {
		value, err := strconv.ParseInt(string(digits), 10, 64)
		if err != nil {
			return 0, ErrInvalidDuration
		}
		total += time.Duration(value) * time.Minute
	}

	if total == 0 {
		return 0, ErrInvalidDuration
	}
	return total, nil
}

// FormatSuggestion renders a duration as editable picker text with
// hour/minute granularity, e.g. "1h 30m", "2h" or "45m". Durations
// under a minute floor to "1s" so the suggestion stays startable.
func FormatSuggestion(d time.Duration) string {
	mins := int(d.Minutes())
	if mins <= 0 {
		return "1s"
	}
	h := mins / 60
	m := mins % 60
	switch {
	case h > 0 && m > 0:
		return fmt.Sprintf("%dh %dm", h, m)
	case h > 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dm", m)
	}
}
