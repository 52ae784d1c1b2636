package linker

import (
	"bytes"
	"encoding/json"
	"fmt"
	"iter"
	"strings"
)

// Mapping is an insertion-ordered speaker label to name map.
type Mapping struct {
	keys   []string
	values map[string]string
}

func NewMapping() *Mapping {
	return &Mapping{values: make(map[string]string)}
}

// MappingFrom builds a Mapping from alternating label, name pairs.
func MappingFrom(pairs ...string) *Mapping {
	m := NewMapping()
	for i := 0; i+1 < len(pairs); i += 2 {
		m.Set(pairs[i], pairs[i+1])
	}
	return m
}

// Set adds or replaces a label. Replacing keeps the original position.
func (m *Mapping) Set(label, name string) {
	if m.values == nil {
		m.values = make(map[string]string)
	}
	if _, ok := m.values[label]; !ok {
		m.keys = append(m.keys, label)
	}
	m.values[label] = name
}

func (m *Mapping) Get(label string) (string, bool) {
	if m == nil {
		return "", false
	}
	v, ok := m.values[label]
	return v, ok
}

func (m *Mapping) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Keys returns the labels in insertion order.
func (m *Mapping) Keys() []string {
	if m == nil {
		return nil
	}
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// All iterates label, name pairs in insertion order.
func (m *Mapping) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		if m == nil {
			return
		}
		for _, k := range m.keys {
			if !yield(k, m.values[k]) {
				return
			}
		}
	}
}

func (m *Mapping) String() string {
	var b strings.Builder
	b.WriteByte('{')
	i := 0
	for k, v := range m.All() {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%q: %q", k, v)
		i++
	}
	b.WriteByte('}')
	return b.String()
}

// MarshalJSON encodes the mapping as a JSON object in insertion order.
func (m *Mapping) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	i := 0
	for k, v := range m.All() {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
		i++
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a flat JSON object of strings, keeping document order.
func (m *Mapping) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("mapping: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("mapping: expected object, got %v", tok)
	}

	out := NewMapping()
	for dec.More() {
		kt, err := dec.Token()
		if err != nil {
			return fmt.Errorf("mapping: %w", err)
		}
		key, _ := kt.(string)
		var val string
		if err := dec.Decode(&val); err != nil {
			return fmt.Errorf("mapping: value for %q: %w", key, err)
		}
		out.Set(key, val)
	}
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("mapping: %w", err)
	}
	*m = *out
	return nil
}
