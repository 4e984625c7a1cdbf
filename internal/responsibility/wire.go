package responsibility

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// distributionWire is the serialized shape of a Distribution.
type distributionWire struct {
	Type  DistributionKind `json:"type" yaml:"type"`
	Alpha *Date            `json:"alpha,omitempty" yaml:"alpha,omitempty"`
	Omega *Date            `json:"omega,omitempty" yaml:"omega,omitempty"`
	Dates []Date           `json:"dates,omitempty" yaml:"dates,omitempty"`
}

func (w distributionWire) decode() (Distribution, error) {
	switch w.Type {
	case Continuous:
		if w.Alpha == nil || w.Omega == nil {
			return Distribution{}, fmt.Errorf("Continuous distribution requires alpha and omega")
		}
		if w.Dates != nil {
			return Distribution{}, fmt.Errorf("Continuous distribution does not take dates")
		}
		return Range(*w.Alpha, *w.Omega), nil
	case Discrete:
		if w.Alpha != nil || w.Omega != nil {
			return Distribution{}, fmt.Errorf("Discrete distribution does not take alpha or omega")
		}
		return On(w.Dates...), nil
	case "":
		return Distribution{}, fmt.Errorf("distribution type is required")
	default:
		return Distribution{}, fmt.Errorf("unknown distribution type %q: must be Continuous or Discrete", w.Type)
	}
}

func (d Distribution) wire() distributionWire {
	w := distributionWire{Type: d.Kind}
	if d.Kind == Continuous {
		alpha, omega := d.Alpha, d.Omega
		w.Alpha, w.Omega = &alpha, &omega
	} else {
		w.Dates = d.Dates
		if w.Dates == nil {
			w.Dates = []Date{}
		}
	}
	return w
}

func (d Distribution) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.wire())
}

func (d *Distribution) UnmarshalJSON(data []byte) error {
	var w distributionWire
	if err := decodeJSONStrict(data, &w); err != nil {
		return err
	}
	decoded, err := w.decode()
	if err != nil {
		return err
	}
	*d = decoded
	return nil
}

func (d Distribution) MarshalYAML() (interface{}, error) {
	return d.wire(), nil
}

func (d *Distribution) UnmarshalYAML(node *yaml.Node) error {
	var w distributionWire
	if err := decodeYAMLStrict(node, &w); err != nil {
		return err
	}
	decoded, err := w.decode()
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*d = decoded
	return nil
}

// effortWire is the serialized shape of an Effort.
type effortWire struct {
	Type  EffortKind `json:"type" yaml:"type"`
	Value *float64   `json:"value" yaml:"value"`
}

func (w effortWire) decode() (Effort, error) {
	switch w.Type {
	case Absolute, Relative:
	case "":
		return Effort{}, fmt.Errorf("effort type is required")
	default:
		return Effort{}, fmt.Errorf("unknown effort type %q: must be Absolute or Relative", w.Type)
	}
	if w.Value == nil {
		return Effort{}, fmt.Errorf("%s effort requires a value", w.Type)
	}
	return Effort{Kind: w.Type, Value: *w.Value}, nil
}

func (e Effort) wire() effortWire {
	v := e.Value
	return effortWire{Type: e.Kind, Value: &v}
}

func (e Effort) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.wire())
}

func (e *Effort) UnmarshalJSON(data []byte) error {
	var w effortWire
	if err := decodeJSONStrict(data, &w); err != nil {
		return err
	}
	decoded, err := w.decode()
	if err != nil {
		return err
	}
	*e = decoded
	return nil
}

func (e Effort) MarshalYAML() (interface{}, error) {
	return e.wire(), nil
}

func (e *Effort) UnmarshalYAML(node *yaml.Node) error {
	var w effortWire
	if err := decodeYAMLStrict(node, &w); err != nil {
		return err
	}
	decoded, err := w.decode()
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*e = decoded
	return nil
}

// Custom unmarshalers do not inherit the caller's strictness, so the wire
// shapes reject unknown fields themselves.

func decodeJSONStrict(data []byte, out any) error {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	return decoder.Decode(out)
}

func decodeYAMLStrict(node *yaml.Node, out any) error {
	data, err := yaml.Marshal(node)
	if err != nil {
		return err
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(out); err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	return nil
}
