// Package jsonobj edits JSON documents one object level at a time while
// keeping key order. Values below the edited level stay encoded, so content
// the caller never touches is written back as it was read (minus whitespace).
package jsonobj

import (
	"bytes"
	"encoding/json"
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Object is an ordered JSON object with lazily decoded values.
type Object = *orderedmap.OrderedMap[string, json.RawMessage]

// New returns an empty Object.
func New() Object {
	return orderedmap.New[string, json.RawMessage]()
}

// Decode parses data, which must be a JSON object.
func Decode(data []byte) (Object, error) {
	obj := New()
	if err := json.Unmarshal(data, obj); err != nil {
		return nil, err
	}
	return obj, nil
}

// IsNull reports whether raw is the JSON literal null.
func IsNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// Field decodes obj[key] into v. It reports false when the key is absent or
// the value does not fit v.
func Field(obj Object, key string, v any) bool {
	raw, ok := obj.Get(key)
	if !ok {
		return false
	}
	return json.Unmarshal(raw, v) == nil
}

// Set encodes v and stores it under key. Existing keys keep their position.
func Set(obj Object, key string, v any) error {
	raw, err := Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %q: %w", key, err)
	}
	obj.Set(key, raw)
	return nil
}

// SetObject stores a nested Object under key.
func SetObject(obj Object, key string, child Object) error {
	raw, err := Encode(child)
	if err != nil {
		return fmt.Errorf("encoding %q: %w", key, err)
	}
	obj.Set(key, raw)
	return nil
}

// InsertSorted stores v under key. A new key is placed before the first
// existing key that sorts after it; an existing key is replaced in place.
func InsertSorted(obj Object, key string, v any) (Object, error) {
	raw, err := Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encoding %q: %w", key, err)
	}
	if _, ok := obj.Get(key); ok {
		obj.Set(key, raw)
		return obj, nil
	}

	out := New()
	inserted := false
	for pair := obj.Oldest(); pair != nil; pair = pair.Next() {
		if !inserted && pair.Key > key {
			out.Set(key, raw)
			inserted = true
		}
		out.Set(pair.Key, pair.Value)
	}
	if !inserted {
		out.Set(key, raw)
	}
	return out, nil
}

// Keys returns the keys of obj in order.
func Keys(obj Object) []string {
	keys := make([]string, 0, obj.Len())
	for pair := obj.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Marshal encodes v as compact JSON without HTML escaping, so version ranges
// such as ">=1.2 <2" stay readable.
func Marshal(v any) (json.RawMessage, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Encode writes obj as compact JSON in key order.
func Encode(obj Object) (json.RawMessage, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	for pair := obj.Oldest(); pair != nil; pair = pair.Next() {
		if !first {
			buf.WriteByte(',')
		}
		first = false

		key, err := Marshal(pair.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		if err := json.Compact(&buf, pair.Value); err != nil {
			return nil, fmt.Errorf("value of %q: %w", pair.Key, err)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Format writes obj as two-space indented JSON with a trailing newline, the
// layout npm and the Angular CLI use for their files.
func Format(obj Object) ([]byte, error) {
	compact, err := Encode(obj)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, compact, "", "  "); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}
