package normalization

import (
	"strconv"
	"strings"
)

// AsString trims and returns the string representation of value when possible.
func AsString(value any) string {
	if s, ok := value.(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

// AsInt coerces numeric values (including numeric strings) decoded from event payloads into ints.
// The boolean is false when value carries no number.
func AsInt(value any) (int, bool) {
	switch typed := value.(type) {
	case int:
		return typed, true
	case int32:
		return int(typed), true
	case int64:
		return int(typed), true
	case nil:
		return 0, false
	}
	f, ok := AsFloat64(value)
	return int(f), ok
}

// AsFloat64 coerces numeric values (including numeric strings) into float64.
func AsFloat64(value any) (float64, bool) {
	switch typed := value.(type) {
	case float64:
		return typed, true
	case float32:
		return float64(typed), true
	case int:
		return float64(typed), true
	case int32:
		return float64(typed), true
	case int64:
		return float64(typed), true
	case string:
		if trimmed := strings.TrimSpace(typed); trimmed != "" {
			if parsed, err := strconv.ParseFloat(trimmed, 64); err == nil {
				return parsed, true
			}
		}
	}
	return 0, false
}

// AsBool accepts JSON booleans and the strings "true"/"false".
func AsBool(value any) (bool, bool) {
	switch typed := value.(type) {
	case bool:
		return typed, true
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(typed))
		return parsed, err == nil
	}
	return false, false
}

// MapFromPayload unwraps common envelope structures (e.g. {"data": {...}}) into a plain map.
func MapFromPayload(value any) map[string]any {
	if value == nil {
		return nil
	}
	if typed, ok := value.(map[string]any); ok {
		if data, ok := typed["data"].(map[string]any); ok {
			return data
		}
		return typed
	}
	return nil
}

// FirstString returns the first non-empty string found under keys.
func FirstString(payload map[string]any, keys ...string) string {
	for _, key := range keys {
		if s := AsString(payload[key]); s != "" {
			return s
		}
	}
	return ""
}
