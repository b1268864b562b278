package source

import (
	"fmt"

	json "github.com/goccy/go-json"
)

// JSON decodes a JSON declaration document.
func JSON(data []byte) (any, error) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("source: decode json: %w", err)
	}
	return unwrapDocument(v), nil
}
