// Package normalize maps loosely-typed upstream records into canonical
// entities. Every field comes out either concretely typed or explicitly
// absent (nil); a zero value never stands in for missing data.
//
// Normalization is strict: a key present with the wrong type is a malformed
// payload, not something to coerce. It is also all-or-nothing per record; a
// record either normalizes completely or the whole operation fails. The one
// documented exception is booleans, which default to false when the key is
// present but the value is null.
package normalize

import (
	"encoding/json"
	"fmt"
	"math"
	"time"
)

// Record is one semi-structured upstream object, as decoded with
// json.Decoder.UseNumber.
type Record map[string]any

// Error reports a field that could not be normalized. It satisfies the
// malformed-payload failure mode: the record is rejected, never partially
// applied.
type Error struct {
	Field string
	Want  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("malformed upstream payload: field %q is not a valid %s", e.Field, e.Want)
}

// Timestamp layouts accepted from the upstream, tried in order.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// optString returns nil for a missing or null key.
func optString(r Record, key string) (*string, error) {
	raw, ok := r[key]
	if !ok || raw == nil {
		return nil, nil
	}
	s, ok := raw.(string)
	if !ok {
		return nil, &Error{Field: key, Want: "string"}
	}
	return &s, nil
}

// reqString is for identity fields; missing, null or empty is malformed.
func reqString(r Record, key string) (string, error) {
	s, err := optString(r, key)
	if err != nil {
		return "", err
	}
	if s == nil || *s == "" {
		return "", &Error{Field: key, Want: "non-empty string"}
	}
	return *s, nil
}

// optFloat accepts integer or floating wire representations.
func optFloat(r Record, key string) (*float64, error) {
	raw, ok := r[key]
	if !ok || raw == nil {
		return nil, nil
	}
	switch v := raw.(type) {
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return nil, &Error{Field: key, Want: "number"}
		}
		return &f, nil
	case float64:
		return &v, nil
	default:
		return nil, &Error{Field: key, Want: "number"}
	}
}

// optInt accepts integer or floating wire representations; a fractional
// value is truncated toward zero.
func optInt(r Record, key string) (*int, error) {
	f, err := optFloat(r, key)
	if err != nil {
		return nil, &Error{Field: key, Want: "integer"}
	}
	if f == nil {
		return nil, nil
	}
	n := int(math.Trunc(*f))
	return &n, nil
}

// optBool applies the documented quirk: a present-but-null value is false,
// not absent. Only a genuinely wrong type is rejected.
func optBool(r Record, key string) (bool, error) {
	raw, ok := r[key]
	if !ok || raw == nil {
		return false, nil
	}
	b, ok := raw.(bool)
	if !ok {
		return false, &Error{Field: key, Want: "boolean"}
	}
	return b, nil
}

// optTime parses the wire timestamp string. An empty or null value is
// absent; a non-empty string no layout matches is malformed.
func optTime(r Record, key string) (*time.Time, error) {
	s, err := optString(r, key)
	if err != nil {
		return nil, &Error{Field: key, Want: "timestamp string"}
	}
	if s == nil || *s == "" {
		return nil, nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, *s); err == nil {
			return &t, nil
		}
	}
	return nil, &Error{Field: key, Want: "timestamp string"}
}

// optStringList decodes an array of strings.
func optStringList(r Record, key string) ([]string, error) {
	raw, ok := r[key]
	if !ok || raw == nil {
		return nil, nil
	}
	items, ok := raw.([]any)
	if !ok {
		return nil, &Error{Field: key, Want: "string array"}
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, &Error{Field: key, Want: "string array"}
		}
		out = append(out, s)
	}
	return out, nil
}

// optObjectList decodes an array of objects kept in raw map form
// (price history entries, comparable property stubs).
func optObjectList(r Record, key string) ([]map[string]any, error) {
	raw, ok := r[key]
	if !ok || raw == nil {
		return nil, nil
	}
	items, ok := raw.([]any)
	if !ok {
		return nil, &Error{Field: key, Want: "object array"}
	}
	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, &Error{Field: key, Want: "object array"}
		}
		out = append(out, obj)
	}
	return out, nil
}

// optObject returns a nested record, nil when missing or null. A leaf value
// where an object was expected is malformed.
func optObject(r Record, key string) (Record, error) {
	raw, ok := r[key]
	if !ok || raw == nil {
		return nil, nil
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, &Error{Field: key, Want: "object"}
	}
	return Record(obj), nil
}

func optRecordList(r Record, key string) ([]Record, error) {
	objs, err := optObjectList(r, key)
	if err != nil {
		return nil, err
	}
	if objs == nil {
		return nil, nil
	}
	out := make([]Record, len(objs))
	for i, obj := range objs {
		out[i] = Record(obj)
	}
	return out, nil
}
