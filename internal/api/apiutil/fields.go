package apiutil

import "strings"

// ParseOptionalBool accepts the usual form and query spellings. Empty means false.
func ParseOptionalBool(raw string, field string) (bool, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false, nil
	}
	switch strings.ToLower(raw) {
	case "true", "1", "yes", "on":
		return true, nil
	case "false", "0", "no", "off":
		return false, nil
	default:
		return false, FieldError{Field: field, Reason: "must be a boolean"}
	}
}
