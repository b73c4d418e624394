package domain

// Preview returns at most limit runes of s, marking truncation with "...".
func Preview(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit]) + "..."
}

func Ptr[T any](v T) *T {
	return &v
}

// OptionalString returns nil for the empty string.
func OptionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
