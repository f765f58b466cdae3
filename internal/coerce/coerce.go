// Package coerce normalizes values crossing the store/widget boundary.
// Stored snapshots follow JSON decoding semantics: numbers are float64,
// aggregates are map[string]any.
package coerce

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Clone deep-copies payload through a JSON round trip, normalizing numeric
// types along the way. A payload that cannot be marshalled is copied shallow.
func Clone(payload map[string]any) map[string]any {
	if payload == nil {
		return nil
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		out := make(map[string]any, len(payload))
		for key, value := range payload {
			out[key] = value
		}
		return out
	}

	decoder := json.NewDecoder(bytes.NewReader(raw))
	cloned := map[string]any{}
	if err := decoder.Decode(&cloned); err != nil {
		out := make(map[string]any, len(payload))
		for key, value := range payload {
			out[key] = value
		}
		return out
	}
	return cloned
}

// AsMap reports value as a string-keyed map when its underlying type allows.
func AsMap(value any) (map[string]any, bool) {
	if value == nil {
		return nil, false
	}
	if m, ok := value.(map[string]any); ok {
		return m, true
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	out := make(map[string]any, rv.Len())
	for _, key := range rv.MapKeys() {
		out[key.String()] = rv.MapIndex(key).Interface()
	}
	return out, true
}

// Number parses a widget's textual slot into a float64.
func Number(text string) (float64, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return 0, fmt.Errorf("coerce: empty numeric value")
	}
	number, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, fmt.Errorf("coerce: parse number %q: %w", text, err)
	}
	return number, nil
}

// String renders a stored value into a widget's textual slot. Floats drop
// their trailing zero fraction so 42.0 renders as "42".
func String(value any) string {
	switch typed := value.(type) {
	case nil:
		return ""
	case string:
		return typed
	case bool:
		return strconv.FormatBool(typed)
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(typed), 'f', -1, 32)
	case json.Number:
		return typed.String()
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", typed)
	default:
		return fmt.Sprintf("%v", typed)
	}
}

// Equal compares two stored values, treating all numeric types as one domain
// so a float64 from a JSON snapshot matches an int literal from markup.
func Equal(a, b any) bool {
	na, aNum := toFloat(a)
	nb, bNum := toFloat(b)
	if aNum || bNum {
		return aNum && bNum && na == nb
	}
	return reflect.DeepEqual(a, b)
}

func toFloat(value any) (float64, bool) {
	switch typed := value.(type) {
	case float64:
		return typed, true
	case float32:
		return float64(typed), true
	case int:
		return float64(typed), true
	case int8:
		return float64(typed), true
	case int16:
		return float64(typed), true
	case int32:
		return float64(typed), true
	case int64:
		return float64(typed), true
	case uint:
		return float64(typed), true
	case uint8:
		return float64(typed), true
	case uint16:
		return float64(typed), true
	case uint32:
		return float64(typed), true
	case uint64:
		return float64(typed), true
	case json.Number:
		number, err := typed.Float64()
		if err != nil {
			return 0, false
		}
		return number, true
	default:
		return 0, false
	}
}
