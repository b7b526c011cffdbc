package util

import "strings"

// StripCodeFences unwraps a markdown code block around a model answer.
// Two explicit steps: drop every backtick, then drop everything up to and
// including the last "json" language tag.
func StripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "`") {
		return s
	}
	s = strings.ReplaceAll(s, "`", "")
	if i := strings.LastIndex(s, "json"); i >= 0 {
		s = s[i+len("json"):]
	}
	return strings.TrimSpace(s)
}
