package llm

import "strings"

// CleanJSONResponse strips markdown fences and any prose wrapping from a
// model completion, leaving the outermost JSON object.
func CleanJSONResponse(response string) string {
	response = strings.TrimSpace(response)
	response = strings.TrimPrefix(response, "```json")
	response = strings.TrimPrefix(response, "```")
	response = strings.TrimSuffix(response, "```")

	start := strings.Index(response, "{")
	end := strings.LastIndex(response, "}")
	if start >= 0 && end > start {
		response = response[start : end+1]
	}

	return strings.TrimSpace(response)
}
