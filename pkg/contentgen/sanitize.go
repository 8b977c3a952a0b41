package contentgen

import "strings"

// SanitizeJSON normalizes a model reply that is expected to contain JSON.
// Markdown code fences are stripped and the text is sliced to the outermost
// brace or bracket span, since models often wrap JSON in prose or fences.
func SanitizeJSON(text string) string {
	s := strings.TrimSpace(text)

	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		if idx := strings.LastIndex(s, "```"); idx >= 0 {
			s = s[:idx]
		}
		s = strings.TrimSpace(s)
	}

	start, end := braceSpan(s, '{', '}')
	if start < 0 {
		start, end = braceSpan(s, '[', ']')
	}
	if start >= 0 && end > start {
		return s[start : end+1]
	}
	return s
}

func braceSpan(s string, open, close byte) (int, int) {
	start := strings.IndexByte(s, open)
	end := strings.LastIndexByte(s, close)
	if start < 0 || end <= start {
		return -1, -1
	}
	return start, end
}
