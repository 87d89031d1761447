package models

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Record is one loosely structured input object as decoded from JSONC.
type Record map[string]any

// Lookup returns the raw value and whether the key is present. A key that is
// present with a null value reports (nil, true).
func (r Record) Lookup(key string) (any, bool) {
	v, ok := r[key]

	return v, ok
}

// String returns the trimmed string value of key, or "" when it is absent or not a string.
func (r Record) String(key string) string {
	s, ok := r[key].(string)
	if !ok {
		return ""
	}

	return strings.TrimSpace(s)
}

// Text returns the string form of a scalar value, or "" for null, maps and lists.
func (r Record) Text(key string) string {
	return strings.TrimSpace(Scalar(r[key]))
}

// Scalar formats a decoded JSON scalar. Numbers keep every digit and never use
// exponent notation, so 1234567 stays "1234567". Null, maps and lists give "".
func Scalar(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case json.Number:
		return val.String()
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case bool:
		return strconv.FormatBool(val)
	default:
		return ""
	}
}

// Map returns the nested object stored under key.
func (r Record) Map(key string) (Record, bool) {
	m, ok := r[key].(map[string]any)

	return Record(m), ok
}

// Entry is a keyed record that keeps its position in the source document.
type Entry struct {
	Key    string
	Record Record

	// Err is set when the value under Key is not an object.
	Err error
}
