package domain

import (
	"bytes"
	"encoding/json"
	"errors"
)

// Specifications is an insertion-ordered string map. Overwriting a key keeps its original
// position; empty values are never stored.
type Specifications struct {
	keys   []string
	values map[string]string
}

type SpecEntry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

func NewSpecifications() Specifications {
	return Specifications{values: map[string]string{}}
}

// Set stores value under key. An empty value removes nothing and is ignored.
func (s *Specifications) Set(key, value string) {
	if key == "" || value == "" {
		return
	}
	if s.values == nil {
		s.values = map[string]string{}
	}
	if _, ok := s.values[key]; !ok {
		s.keys = append(s.keys, key)
	}
	s.values[key] = value
}

func (s Specifications) Get(key string) (string, bool) {
	v, ok := s.values[key]
	return v, ok
}

func (s Specifications) Len() int { return len(s.keys) }

func (s Specifications) Keys() []string {
	out := make([]string, len(s.keys))
	copy(out, s.keys)
	return out
}

func (s Specifications) Entries() []SpecEntry {
	out := make([]SpecEntry, 0, len(s.keys))
	for _, k := range s.keys {
		out = append(out, SpecEntry{Key: k, Value: s.values[k]})
	}
	return out
}

// MarshalJSON writes an object whose member order is the insertion order.
func (s Specifications) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range s.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(s.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON keeps the document order of the object members.
func (s *Specifications) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return errors.New("specifications: expected a JSON object")
	}
	*s = NewSpecifications()
	for dec.More() {
		kt, err := dec.Token()
		if err != nil {
			return err
		}
		var v string
		if err := dec.Decode(&v); err != nil {
			return err
		}
		s.Set(kt.(string), v)
	}
	_, err = dec.Token()
	return err
}
