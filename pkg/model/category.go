package model

import "strings"

// Category is one of the six known building-object categories. CategoryUnknown
// marks input the portal cannot classify; it is rejected at ingestion.
type Category string

const (
	CategoryDoor    Category = "door"
	CategoryWindow  Category = "window"
	CategoryFloor   Category = "floor"
	CategoryWall    Category = "wall"
	CategoryRoof    Category = "roof"
	CategoryArea    Category = "area"
	CategoryUnknown Category = "unknown"
)

// Categories lists the six known categories in file-name inference order.
func Categories() []Category {
	return []Category{CategoryWindow, CategoryDoor, CategoryFloor, CategoryWall, CategoryRoof, CategoryArea}
}

// CountBased reports whether the category tracks discrete items (count) rather
// than continuous surfaces (area).
func (c Category) CountBased() bool {
	return c == CategoryDoor || c == CategoryWindow
}

// Known reports whether the category is one of the six billable categories.
func (c Category) Known() bool {
	switch c {
	case CategoryDoor, CategoryWindow, CategoryFloor, CategoryWall, CategoryRoof, CategoryArea:
		return true
	}
	return false
}

// BucketKey returns the pluralized key used in a building's object map and in
// the cost breakdown ("door" -> "doors").
func (c Category) BucketKey() string {
	return string(c) + "s"
}

// ParseCategory maps a stored type tag to a Category by exact lowercase match.
func ParseCategory(s string) Category {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if c.Known() {
		return c
	}
	return CategoryUnknown
}

// CategoryFromFileName infers the category from a pricelist file name by
// case-insensitive substring match, e.g. "door.csv" -> CategoryDoor.
func CategoryFromFileName(name string) Category {
	lower := strings.ToLower(name)
	for _, c := range Categories() {
		if strings.Contains(lower, string(c)) {
			return c
		}
	}
	return CategoryUnknown
}
