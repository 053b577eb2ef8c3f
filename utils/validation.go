package utils

import (
	"encoding/json"
	"strconv"
	"strings"
)

// ParseOptionalInRange coerces a raw JSON value to an integer within
// [min, max]. Any parse failure or out-of-range value yields nil rather than
// an error: optional rating fields degrade to absent instead of rejecting the
// submission.
func ParseOptionalInRange(raw interface{}, min, max int) *int {
	n, ok := ParseInt(raw)
	if !ok || n < min || n > max {
		return nil
	}
	return &n
}

// ParseInt accepts the integer shapes a JSON payload can carry: numbers,
// numeric strings, and json.Number. Non-integral floats do not parse.
func ParseInt(raw interface{}) (int, bool) {
	switch v := raw.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		if v != float64(int(v)) {
			return 0, false
		}
		return int(v), true
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, false
		}
		return int(n), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// NormalizeComment trims surrounding whitespace and caps the comment at
// maxLen characters. Empty results become nil.
func NormalizeComment(raw string, maxLen int) *string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	runes := []rune(trimmed)
	if len(runes) > maxLen {
		trimmed = string(runes[:maxLen])
	}
	return &trimmed
}
