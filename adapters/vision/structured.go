package vision

import (
	"encoding/json"
	"fmt"
	"strings"
)

// decodeStructured parses model output into a typed result, stripping the
// markdown fences and conversational prefixes models sometimes emit even in
// JSON mode.
func decodeStructured[T any](content string) (*T, error) {
	cleaned := cleanJSONContent(content)

	var result T
	if err := json.Unmarshal([]byte(cleaned), &result); err != nil {
		return nil, fmt.Errorf("failed to parse model JSON: %w\nCleaned content: %s", err, cleaned)
	}
	return &result, nil
}

// cleanJSONContent removes markdown code blocks and chatter around JSON
func cleanJSONContent(content string) string {
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, "```json") && strings.HasSuffix(content, "```") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimSuffix(content, "```")
		content = strings.TrimSpace(content)
	} else if strings.HasPrefix(content, "```") && strings.HasSuffix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(content, "```")
		content = strings.TrimSpace(content)
	}

	// Drop any chatter line preceding the JSON body.
	if idx := strings.Index(content, "\n{"); idx > 0 {
		prefix := content[:idx]
		if !strings.Contains(prefix, "{") && !strings.Contains(prefix, "[") {
			content = content[idx+1:]
		}
	}

	return strings.TrimSpace(content)
}
