package cli

import (
	"reflect"
	"testing"
)

func TestSelectFieldsDotPaths(t *testing.T) {
	value := map[string]any{
		"id": "1",
		"team": map[string]any{
			"key":  "ENG",
			"name": "Engineering",
		},
		"title": "fix the thing",
	}
	got := selectFields(value, []string{"id", "team.key"})
	want := map[string]any{
		"id": "1",
		"team": map[string]any{
			"key": "ENG",
		},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("selectFields = %v, want %v", got, want)
	}
}

func TestSelectFieldsMissingPath(t *testing.T) {
	value := map[string]any{"id": "1"}
	got := selectFields(value, []string{"id", "nope.deep"})
	want := map[string]any{"id": "1"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("selectFields = %v, want %v", got, want)
	}
}

func TestSortValuesStable(t *testing.T) {
	items := []any{
		map[string]any{"state": "Todo", "id": "1"},
		map[string]any{"state": "Done", "id": "2"},
		map[string]any{"state": "Todo", "id": "3"},
	}
	sortValues(items, "state", false)

	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.(map[string]any)["id"].(string))
	}
	// Equal keys keep input order.
	want := []string{"2", "1", "3"}
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("order = %v, want %v", ids, want)
	}
}

func TestSortValuesNumericDescending(t *testing.T) {
	items := []any{
		map[string]any{"priority": float64(2), "id": "a"},
		map[string]any{"priority": float64(10), "id": "b"},
		map[string]any{"priority": float64(1), "id": "c"},
	}
	sortValues(items, "priority", true)
	first := items[0].(map[string]any)
	if first["id"] != "b" {
		t.Errorf("10 should sort before 2 numerically, got %v first", first)
	}
}

func TestSortValuesNegativeNumbers(t *testing.T) {
	items := []any{
		map[string]any{"delta": float64(3), "id": "a"},
		map[string]any{"delta": float64(-5), "id": "b"},
		map[string]any{"delta": float64(0), "id": "c"},
	}
	sortValues(items, "delta", false)

	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.(map[string]any)["id"].(string))
	}
	want := []string{"b", "c", "a"}
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("order = %v, want %v", ids, want)
	}
}
