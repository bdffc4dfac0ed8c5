package model

import "testing"

func TestNormalizeObjectsCanonicalMap(t *testing.T) {
	raw := map[string]any{
		"doors": []any{
			map[string]any{"id": "e1", "type": "door", "object": "Door W", "count": int64(5)},
		},
		"floors": []any{
			map[string]any{"id": "e2", "type": "floor", "object": "Parkett Ek", "area": 150.5},
		},
	}

	objects := NormalizeObjects(raw)
	if len(objects) != 2 {
		t.Fatalf("buckets = %d, want 2", len(objects))
	}

	doors := objects["doors"]
	if len(doors) != 1 || doors[0].Object != "Door W" {
		t.Fatalf("doors = %+v", doors)
	}
	if doors[0].Count == nil || *doors[0].Count != 5 {
		t.Errorf("count = %v, want 5", doors[0].Count)
	}
	if doors[0].Area != nil {
		t.Errorf("area should be absent, got %v", *doors[0].Area)
	}

	floors := objects["floors"]
	if floors[0].Area == nil || *floors[0].Area != 150.5 {
		t.Errorf("area = %v, want 150.5", floors[0].Area)
	}
}

func TestNormalizeObjectsLegacyArray(t *testing.T) {
	raw := []any{
		map[string]any{"type": "Door", "object": "Door W", "count": int64(3)},
		map[string]any{"type": "Door", "object": "Door S", "count": int64(1)},
		map[string]any{"type": "Golv", "object": "Parkett", "area": 88.0},
	}

	objects := NormalizeObjects(raw)
	if len(objects["doors"]) != 2 {
		t.Errorf("doors = %+v", objects["doors"])
	}
	if len(objects["golvs"]) != 1 {
		t.Errorf("legacy grouping should pluralize the stored type: %+v", objects)
	}
}

func TestNormalizeObjectsEmptyAndMalformed(t *testing.T) {
	if objects := NormalizeObjects(nil); objects == nil || len(objects) != 0 {
		t.Errorf("nil input should yield an empty map, got %+v", objects)
	}

	raw := map[string]any{
		"doors":   []any{"not a record", map[string]any{"object": "Door W", "count": int64(1)}},
		"windows": "not a list",
	}
	objects := NormalizeObjects(raw)
	if len(objects["doors"]) != 1 {
		t.Errorf("doors = %+v", objects["doors"])
	}
	if _, ok := objects["windows"]; ok {
		t.Errorf("malformed bucket should be dropped: %+v", objects)
	}
}

func TestNormalizeObjectsNumberWidths(t *testing.T) {
	raw := map[string]any{
		"doors": []any{map[string]any{"object": "A", "count": 2.0}},
		"roofs": []any{map[string]any{"object": "B", "area": int64(40)}},
	}

	objects := NormalizeObjects(raw)
	if c := objects["doors"][0].Count; c == nil || *c != 2 {
		t.Errorf("float-encoded count = %v, want 2", c)
	}
	if a := objects["roofs"][0].Area; a == nil || *a != 40 {
		t.Errorf("int-encoded area = %v, want 40", a)
	}
}
