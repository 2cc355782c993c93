package patch

import (
	"encoding/json"
	"fmt"

	"go.yaml.in/yaml/v4"
)

// Built-in operation kinds.
const (
	OpAdd     = "add"
	OpRemove  = "remove"
	OpReplace = "replace"
	OpMove    = "move"
	OpCopy    = "copy"
	OpTest    = "test"
)

// Operation is a single path-addressed mutation.
//
// Value is the operation's payload. Because JSON null is a legitimate value,
// the absence of a value is recorded separately in NoValue; the JSON and YAML
// codecs set and honour it, so {"op":"add","path":"/a"} decodes with
// NoValue=true while {"op":"add","path":"/a","value":null} does not.
type Operation struct {
	Op    string `json:"op" yaml:"op"`
	Path  string `json:"path" yaml:"path"`
	From  string `json:"from,omitempty" yaml:"from,omitempty"`
	Value any    `json:"value,omitempty" yaml:"value,omitempty"`
	Soft  bool   `json:"soft,omitempty" yaml:"soft,omitempty"`

	// NoValue reports that the operation carries no value.
	NoValue bool `json:"-" yaml:"-"`
}

// String returns a compact description for logs and error messages.
func (o Operation) String() string {
	s := "[op:" + o.Op + "] " + o.Path
	if o.From != "" {
		s = "[op:" + o.Op + "] " + o.From + " -> " + o.Path
	}
	if o.Soft {
		s += " (soft)"
	}
	return s
}

// isNoop reports a move or copy onto itself.
func (o Operation) isNoop() bool {
	return o.From != "" && o.From == o.Path
}

// hasValue reports whether the operation should carry a "value" member on the wire.
func (o Operation) hasValue() bool {
	if o.NoValue {
		return false
	}
	if o.Value != nil {
		return true
	}
	switch o.Op {
	case OpRemove, OpMove, OpCopy:
		return false
	}
	return true
}

// wireOperation fixes the member order of encoded operations.
type wireOperation struct {
	Op    string `json:"op" yaml:"op"`
	From  string `json:"from,omitempty" yaml:"from,omitempty"`
	Path  string `json:"path" yaml:"path"`
	Value *any   `json:"value,omitempty" yaml:"value,omitempty"`
	Soft  bool   `json:"soft,omitempty" yaml:"soft,omitempty"`
}

func (o Operation) wire() wireOperation {
	w := wireOperation{Op: o.Op, From: o.From, Path: o.Path, Soft: o.Soft}
	if o.hasValue() {
		v := o.Value
		w.Value = &v
	}
	return w
}

// MarshalJSON implements custom JSON marshaling for Operation.
// A nil Value is written as null unless the operation carries no value.
func (o Operation) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.wire())
}

// MarshalYAML implements yaml.Marshaler for Operation, with the same rules
// as MarshalJSON.
func (o Operation) MarshalYAML() (any, error) {
	return o.wire(), nil
}

// UnmarshalJSON implements custom JSON unmarshaling for Operation.
// It records whether a "value" member was present.
func (o *Operation) UnmarshalJSON(data []byte) error {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}

	var w struct {
		Op   string `json:"op"`
		From string `json:"from"`
		Path string `json:"path"`
		Soft bool   `json:"soft"`
	}
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	*o = Operation{Op: w.Op, From: w.From, Path: w.Path, Soft: w.Soft}
	raw, ok := m["value"]
	if !ok {
		o.NoValue = true
		return nil
	}
	return json.Unmarshal(raw, &o.Value)
}

// UnmarshalYAML implements yaml.Unmarshaler for Operation.
// It records whether a "value" key was present.
func (o *Operation) UnmarshalYAML(node *yaml.Node) error {
	var m map[string]any
	if err := node.Decode(&m); err != nil {
		return err
	}

	*o = Operation{}
	var err error
	if o.Op, err = stringMember(m, "op"); err != nil {
		return err
	}
	if o.Path, err = stringMember(m, "path"); err != nil {
		return err
	}
	if o.From, err = stringMember(m, "from"); err != nil {
		return err
	}
	if soft, ok := m["soft"]; ok {
		b, isBool := soft.(bool)
		if !isBool {
			return fmt.Errorf("operation member %q must be a boolean, got %T", "soft", soft)
		}
		o.Soft = b
	}
	value, ok := m["value"]
	o.Value = value
	o.NoValue = !ok
	return nil
}

func stringMember(m map[string]any, key string) (string, error) {
	v, ok := m[key]
	if !ok || v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("operation member %q must be a string, got %T", key, v)
	}
	return s, nil
}
