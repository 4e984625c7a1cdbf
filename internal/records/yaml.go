package records

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/workday/internal/responsibility"
)

// document is the mapping form of a record file.
type document struct {
	Responsibilities []responsibility.Responsibility `yaml:"responsibilities" json:"responsibilities"`
}

func decodeYAMLFile(path string) ([]responsibility.Responsibility, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read records: %w", err)
	}
	return DecodeYAML(data)
}

// DecodeYAML parses a YAML record document. Unknown fields are rejected.
func DecodeYAML(data []byte) ([]responsibility.Responsibility, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if len(root.Content) == 0 {
		return nil, nil
	}

	// Decode again with strict field checking once the shape is known.
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	switch root.Content[0].Kind {
	case yaml.SequenceNode:
		var rs []responsibility.Responsibility
		if err := decoder.Decode(&rs); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
		return rs, nil
	case yaml.MappingNode:
		var doc document
		if err := decoder.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
		return doc.Responsibilities, nil
	default:
		return nil, fmt.Errorf("line %d: expected a list of responsibilities or a responsibilities mapping", root.Content[0].Line)
	}
}
