package entity

import (
	"bytes"
	"encoding/json"
)

// Identifier is the compound org.namespace.name identifier every federated
// entity is addressed by.
type Identifier struct {
	Organization string
	Namespace    string
	Name         string
}

func (id Identifier) String() string {
	return id.Organization + "." + id.Namespace + "." + id.Name
}

// CountResult is one value bucket of a grouped count.
type CountResult struct {
	Value string `json:"value"`
	Count int64  `json:"count"`
}

// CountResponse is the payload of the count-by-field endpoints.
type CountResponse struct {
	Field  string        `json:"field"`
	Counts []CountResult `json:"counts"`
}

// SummaryResponse is the payload of the summary endpoints.
type SummaryResponse struct {
	TotalCount int64 `json:"total_count"`
}

// Metadata carries the unharmonized portion of an entity's metadata. Node
// properties under the unharmonized prefix are collected here with the
// prefix stripped.
type Metadata struct {
	Unharmonized map[string]any `json:"unharmonized,omitempty"`
}

// Fields is an insertion-ordered string-keyed collection that marshals to a
// JSON object preserving order. Entity models use it to carry node
// properties outside their fixed field set without losing determinism.
type Fields struct {
	keys   []string
	values map[string]any
}

func NewFields() *Fields {
	return &Fields{values: make(map[string]any)}
}

// Set stores value under key. Setting an existing key overwrites the value
// but keeps the key's original position.
func (f *Fields) Set(key string, value any) {
	if _, ok := f.values[key]; !ok {
		f.keys = append(f.keys, key)
	}
	f.values[key] = value
}

func (f *Fields) Get(key string) (any, bool) {
	if f == nil {
		return nil, false
	}
	value, ok := f.values[key]
	return value, ok
}

func (f *Fields) Len() int {
	if f == nil {
		return 0
	}
	return len(f.keys)
}

// Keys returns the keys in insertion order.
func (f *Fields) Keys() []string {
	if f == nil {
		return nil
	}
	out := make([]string, len(f.keys))
	copy(out, f.keys)
	return out
}

func (f *Fields) MarshalJSON() ([]byte, error) {
	if f == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range f.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		value, err := json.Marshal(f.values[key])
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (f *Fields) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	// Replay keys in the order they appear in the document so a decode and
	// re-encode round trip is stable.
	dec := json.NewDecoder(bytes.NewReader(data))
	if _, err := dec.Token(); err != nil { // opening brace
		return err
	}
	f.keys = nil
	f.values = make(map[string]any, len(raw))
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			break
		}
		var value any
		if err := json.Unmarshal(raw[key], &value); err != nil {
			return err
		}
		f.Set(key, value)
		// Skip the value token stream.
		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return err
		}
	}
	return nil
}
