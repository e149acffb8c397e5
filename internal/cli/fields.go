package cli

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// toJSONValue round-trips v through encoding/json so field selection and
// sorting operate on the same shapes the encoder will emit.
func toJSONValue(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode output: %w", err)
	}
	var value any
	if err := json.Unmarshal(data, &value); err != nil {
		return nil, fmt.Errorf("decode output: %w", err)
	}
	return value, nil
}

// selectFields keeps only the named fields of each object. Paths may use
// dots to reach nested objects; selected values keep their nesting.
func selectFields(value any, fields []string) any {
	switch typed := value.(type) {
	case []any:
		out := make([]any, 0, len(typed))
		for _, item := range typed {
			out = append(out, selectFields(item, fields))
		}
		return out
	case map[string]any:
		out := map[string]any{}
		for _, path := range fields {
			parts := splitPath(path)
			if len(parts) == 0 {
				continue
			}
			if selected, ok := getPath(typed, parts); ok {
				setPath(out, parts, selected)
			}
		}
		return out
	default:
		return value
	}
}

func splitPath(path string) []string {
	parts := strings.Split(path, ".")
	out := parts[:0]
	for _, part := range parts {
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getPath(value any, parts []string) (any, bool) {
	current := value
	for _, part := range parts {
		obj, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = obj[part]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

func setPath(out map[string]any, parts []string, value any) {
	for len(parts) > 1 {
		child, ok := out[parts[0]].(map[string]any)
		if !ok {
			child = map[string]any{}
			out[parts[0]] = child
		}
		out = child
		parts = parts[1:]
	}
	out[parts[0]] = value
}

// sortValues orders a decoded JSON array by one top-level field. The sort
// is stable so equal keys keep their input order.
func sortValues(items []any, key string, descending bool) {
	sort.SliceStable(items, func(i, j int) bool {
		cmp := compareKeys(sortField(items[i], key), sortField(items[j], key))
		if descending {
			return cmp > 0
		}
		return cmp < 0
	})
}

func sortField(value any, key string) any {
	obj, ok := value.(map[string]any)
	if !ok {
		return nil
	}
	return obj[key]
}

// compareKeys orders two decoded JSON field values: numbers compare
// numerically (negatives included), everything else by its lowercased
// string form.
func compareKeys(a, b any) int {
	av, aok := a.(float64)
	bv, bok := b.(float64)
	if aok && bok {
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		}
		return 0
	}
	return strings.Compare(keyString(a), keyString(b))
}

func keyString(v any) string {
	switch typed := v.(type) {
	case nil:
		return ""
	case string:
		return strings.ToLower(typed)
	case bool:
		if typed {
			return "true"
		}
		return "false"
	default:
		return fmt.Sprintf("%v", typed)
	}
}
