package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// RawTable is the unprocessed in-page representation of a <table>:
// header cell texts (possibly empty) and row cell texts, in document order.
type RawTable struct {
	Headers []string
	Rows    [][]string
}

// Record is a single normalized table row. Fields keep the order of the
// table's headers (or column positions), which plain Go maps would lose
// on JSON round trips.
type Record struct {
	Keys   []string
	Values []string
}

// Get returns the value for a key and whether it is present.
func (r Record) Get(key string) (string, bool) {
	for i, k := range r.Keys {
		if k == key {
			return r.Values[i], true
		}
	}
	return "", false
}

// MarshalJSON writes the record as a JSON object with fields in key order.
func (r Record) MarshalJSON() ([]byte, error) {
	if len(r.Keys) != len(r.Values) {
		return nil, fmt.Errorf("record: %d keys but %d values", len(r.Keys), len(r.Values))
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.Keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(r.Values[i])
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

// UnmarshalJSON reads a JSON object back into a Record, preserving the
// field order of the source document.
func (r *Record) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("record: expected JSON object, got %v", tok)
	}

	r.Keys = r.Keys[:0]
	r.Values = r.Values[:0]
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("record: non-string key %v", keyTok)
		}

		valTok, err := dec.Token()
		if err != nil {
			return err
		}
		var val string
		switch v := valTok.(type) {
		case string:
			val = v
		case json.Delim:
			// A nested object or array would desync the token stream:
			// its inner keys would be read as top-level fields.
			return fmt.Errorf("record: nested value for key %q", key)
		default:
			// Cell values are always strings on the write side; stringify
			// scalars so hand-edited files still load.
			val = fmt.Sprintf("%v", valTok)
		}

		r.Keys = append(r.Keys, key)
		r.Values = append(r.Values, val)
	}

	// Consume the closing brace.
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

// NormalizedTable is an ordered sequence of uniform records produced by the
// table normalizer.
type NormalizedTable struct {
	Records []Record
}

// IsEmpty reports whether the table produced no records and therefore must
// not be persisted.
func (t NormalizedTable) IsEmpty() bool {
	return len(t.Records) == 0
}
