package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shubham-309/chatbot/internal/models"
)

const formatInstructionsTemplate = `The output should be formatted as a JSON instance that conforms to the JSON schema below.

As an example, for the schema {"properties": {"foo": {"title": "Foo", "description": "a list of strings", "type": "array", "items": {"type": "string"}}}, "required": ["foo"]}
the object {"foo": ["bar", "baz"]} is a well-formatted instance of the schema. The object {"properties": {"foo": ["bar", "baz"]}} is not well-formatted.

Here is the output schema:
` + "```" + `
%s
` + "```"

// FormatInstructions tells the model to answer with an instance of schemaJSON.
func FormatInstructions(schemaJSON string) string {
	return fmt.Sprintf(formatInstructionsTemplate, strings.TrimSpace(schemaJSON))
}

// ParseJSON decodes the outermost JSON object of a model reply into out.
// Markdown fences and surrounding prose are ignored.
func ParseJSON(content string, out any) error {
	trimmed := strings.TrimSpace(content)
	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start == -1 || end == -1 || end <= start {
		return fmt.Errorf("missing json object in model output")
	}

	if err := json.Unmarshal([]byte(trimmed[start:end+1]), out); err != nil {
		return fmt.Errorf("failed to parse model output: %w", err)
	}
	return nil
}

// FormatHistory renders the conversation for interpolation into a prompt,
// one "role: content" line per message.
func FormatHistory(history []models.HistoryEntry) string {
	if len(history) == 0 {
		return "[]"
	}

	var builder strings.Builder
	for _, entry := range history {
		content := strings.TrimSpace(entry.Content)
		if content == "" {
			continue
		}
		if builder.Len() > 0 {
			builder.WriteString("\n")
		}
		builder.WriteString(entry.Role)
		builder.WriteString(": ")
		builder.WriteString(content)
	}
	if builder.Len() == 0 {
		return "[]"
	}
	return builder.String()
}
