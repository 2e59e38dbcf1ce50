package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/khoahotran/career-path/internal/application/service"
)

// decodeFields reads the string fields named by schema out of a model's JSON
// answer. Some models wrap JSON in a markdown fence even in JSON mode.
func decodeFields(raw string, schema service.ResponseSchema) (map[string]string, error) {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")

	var obj map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &obj); err != nil {
		return nil, fmt.Errorf("model returned invalid JSON: %w", err)
	}

	out := make(map[string]string, len(schema.Fields))
	for _, f := range schema.Fields {
		if s, ok := obj[f].(string); ok {
			out[f] = s
		}
	}
	for _, f := range schema.Required {
		if strings.TrimSpace(out[f]) == "" {
			return nil, fmt.Errorf("model response is missing required field %q", f)
		}
	}
	return out, nil
}
