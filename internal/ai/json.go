package ai

import "strings"

// IsolateJSON pulls the outermost JSON object out of a model response. The
// raw text may carry explanatory wrapper content or markdown code fences
// around the payload; isolation is greedy, from the first '{' to the last
// '}'. The second return value is false when no balanced object is present.
func IsolateJSON(raw string) (string, bool) {
	cleaned := stripFences(raw)

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start == -1 || end == -1 || end < start {
		return "", false
	}

	return cleaned[start : end+1], true
}

func stripFences(raw string) string {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "```") {
		return raw
	}

	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSpace(raw)
	if idx := strings.LastIndex(raw, "```"); idx != -1 {
		raw = raw[:idx]
	}

	return strings.TrimSpace(raw)
}
