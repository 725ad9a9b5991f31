package service

import (
	"strconv"

	"github.com/goccy/go-json"
)

// Хелперы для разбора ответов внешних API, декодированных в map.
// Отсутствующее поле, null и поле не того типа трактуются одинаково.

func extractObject(data map[string]interface{}, key string) (map[string]interface{}, bool) {
	if data == nil {
		return nil, false
	}
	obj, ok := data[key].(map[string]interface{})
	return obj, ok
}

func extractString(data map[string]interface{}, key string) (string, bool) {
	if data == nil {
		return "", false
	}
	switch v := data[key].(type) {
	case string:
		return v, v != ""
	case float64:
		// id в некоторых ответах приходит числом
		return strconv.FormatFloat(v, 'f', -1, 64), true
	}
	return "", false
}

func extractFloat(data map[string]interface{}, key string) (float64, bool) {
	if data == nil {
		return 0, false
	}
	switch v := data[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	}
	return 0, false
}

func extractInt(data map[string]interface{}, key string) (int64, bool) {
	f, ok := extractFloat(data, key)
	if !ok || f != float64(int64(f)) {
		return 0, false
	}
	return int64(f), true
}

// extractPath спускается по вложенным объектам и возвращает строку в конце пути
func extractPath(data map[string]interface{}, path ...string) (string, bool) {
	current := data
	for _, key := range path[:len(path)-1] {
		next, ok := extractObject(current, key)
		if !ok {
			return "", false
		}
		current = next
	}
	return extractString(current, path[len(path)-1])
}

func stringPtr(s string, ok bool) *string {
	if !ok {
		return nil
	}
	return &s
}
