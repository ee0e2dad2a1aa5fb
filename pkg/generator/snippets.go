package generator

import "strings"

// extractCodeBlock returns the contents of the first fenced block tagged with
// lang, or "" when the response has no such block.
func extractCodeBlock(response, lang string) string {
	marker := "```" + lang
	idx := strings.Index(response, marker)
	if idx < 0 {
		return ""
	}

	rest := response[idx+len(marker):]
	end := strings.Index(rest, "```")
	if end < 0 {
		return strings.TrimSpace(rest)
	}
	return strings.TrimSpace(rest[:end])
}

// cleanCodeBlock strips generic markdown fences from a response that is meant
// to be a single document, such as a README.
func cleanCodeBlock(response string) string {
	text := strings.TrimSpace(response)
	if !strings.HasPrefix(text, "```") {
		return text
	}

	text = strings.TrimPrefix(text, "```")
	if nl := strings.IndexByte(text, '\n'); nl >= 0 {
		// Drop a language tag on the opening fence line.
		tag := strings.TrimSpace(text[:nl])
		if len(tag) <= 12 && !strings.ContainsAny(tag, " \t") {
			text = text[nl+1:]
		}
	}
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}
