// models/raw_aggregate.go
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// AggregateEntry is one key/value pair of a RawAggregate.
type AggregateEntry struct {
	Key   string
	Value float64
}

// RawAggregate is the category -> number object returned by the dashboard API
// for one dimension. Entries keep the order of the JSON object they were
// decoded from.
type RawAggregate struct {
	Entries []AggregateEntry
}

// Len returns the number of entries.
func (r RawAggregate) Len() int { return len(r.Entries) }

// Get returns the value stored under key.
func (r RawAggregate) Get(key string) (float64, bool) {
	for _, e := range r.Entries {
		if e.Key == key {
			return e.Value, true
		}
	}
	return 0, false
}

// Set overwrites the value under key, appending it when absent.
func (r *RawAggregate) Set(key string, value float64) {
	for i := range r.Entries {
		if r.Entries[i].Key == key {
			r.Entries[i].Value = value
			return
		}
	}
	r.Entries = append(r.Entries, AggregateEntry{Key: key, Value: value})
}

// Keys returns the keys in mapping order.
func (r RawAggregate) Keys() []string {
	keys := make([]string, 0, len(r.Entries))
	for _, e := range r.Entries {
		keys = append(keys, e.Key)
	}
	return keys
}

// Sum adds up every value.
func (r RawAggregate) Sum() float64 {
	var total float64
	for _, e := range r.Entries {
		total += e.Value
	}
	return total
}

// UnmarshalJSON decodes a JSON object, keeping key order. A JSON null decodes
// to an empty aggregate.
func (r *RawAggregate) UnmarshalJSON(data []byte) error {
	r.Entries = nil
	return decodeOrderedObject(data, func(key string, value json.RawMessage) error {
		var v float64
		if err := json.Unmarshal(value, &v); err != nil {
			return fmt.Errorf("value of %q is not a number: %w", key, err)
		}
		r.Set(key, v)
		return nil
	})
}

// MarshalJSON encodes the aggregate as a JSON object in mapping order.
func (r RawAggregate) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range r.Entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Key)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(e.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// decodeOrderedObject walks the members of a JSON object in document order.
func decodeOrderedObject(data []byte, member func(key string, value json.RawMessage) error) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected JSON object, got %v", tok)
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("expected object key, got %v", tok)
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("failed to decode value of %q: %w", key, err)
		}
		if err := member(key, value); err != nil {
			return err
		}
	}

	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}
