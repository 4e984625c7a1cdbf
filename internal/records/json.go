package records

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/roach88/workday/internal/responsibility"
)

func decodeJSONFile(path string) ([]responsibility.Responsibility, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read records: %w", err)
	}
	return DecodeJSON(data)
}

// DecodeJSON parses a JSON record document. Unknown fields are rejected.
func DecodeJSON(data []byte) ([]responsibility.Responsibility, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}

	decoder := json.NewDecoder(bytes.NewReader(trimmed))
	decoder.DisallowUnknownFields()

	switch trimmed[0] {
	case '[':
		var rs []responsibility.Responsibility
		if err := decoder.Decode(&rs); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
		return rs, nil
	case '{':
		var doc document
		if err := decoder.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
		return doc.Responsibilities, nil
	default:
		return nil, fmt.Errorf("expected a JSON array of responsibilities or an object with a responsibilities key")
	}
}
