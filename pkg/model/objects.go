package model

import "strings"

// BuildingObjects is the canonical shape of a building's `buildingObjects`
// field: pluralized category key -> line items.
type BuildingObjects map[string][]ObjectRecord

// NormalizeObjects converts a raw Firestore `buildingObjects` value into the
// canonical category-keyed map. Legacy documents store the field as a flat
// array of records; those are grouped by pluralized type. This runs once per
// read at the repository boundary so business logic never branches on shape.
func NormalizeObjects(raw any) BuildingObjects {
	objects := BuildingObjects{}
	switch v := raw.(type) {
	case map[string]any:
		for key, items := range v {
			list, ok := items.([]any)
			if !ok {
				continue
			}
			for _, item := range list {
				if rec, ok := decodeObjectRecord(item); ok {
					objects[key] = append(objects[key], rec)
				}
			}
		}
	case []any:
		for _, item := range v {
			rec, ok := decodeObjectRecord(item)
			if !ok {
				continue
			}
			key := strings.ToLower(rec.Type) + "s"
			objects[key] = append(objects[key], rec)
		}
	}
	return objects
}

func decodeObjectRecord(raw any) (ObjectRecord, bool) {
	fields, ok := raw.(map[string]any)
	if !ok {
		return ObjectRecord{}, false
	}
	rec := ObjectRecord{
		ID:              stringField(fields, "id"),
		Type:            stringField(fields, "type"),
		Object:          stringField(fields, "object"),
		MaintenanceDate: stringField(fields, "maintenanceDate"),
	}
	if rec.Object == "" && rec.Type == "" {
		return ObjectRecord{}, false
	}
	if val, ok := numberField(fields, "count"); ok {
		count := int(val)
		rec.Count = &count
	}
	if val, ok := numberField(fields, "area"); ok {
		area := val
		rec.Area = &area
	}
	return rec, true
}

func stringField(fields map[string]any, key string) string {
	if s, ok := fields[key].(string); ok {
		return s
	}
	return ""
}

// numberField handles the integer/float split Firestore makes when decoding
// into interface values.
func numberField(fields map[string]any, key string) (float64, bool) {
	switch n := fields[key].(type) {
	case int64:
		return float64(n), true
	case float64:
		return n, true
	case int:
		return float64(n), true
	}
	return 0, false
}
