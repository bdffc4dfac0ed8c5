package model

import "testing"

func TestCategoryFromFileName(t *testing.T) {
	cases := []struct {
		name string
		want Category
	}{
		{"door.csv", CategoryDoor},
		{"FLOOR_2024.csv", CategoryFloor},
		{"window-north.csv", CategoryWindow},
		{"prislista_wall.json", CategoryWall},
		{"Roof.csv", CategoryRoof},
		{"area-export.csv", CategoryArea},
		{"misc.csv", CategoryUnknown},
		{"", CategoryUnknown},
	}
	for _, tc := range cases {
		if got := CategoryFromFileName(tc.name); got != tc.want {
			t.Errorf("CategoryFromFileName(%q) = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestParseCategory(t *testing.T) {
	if got := ParseCategory(" Door "); got != CategoryDoor {
		t.Errorf("ParseCategory(\" Door \") = %q", got)
	}
	if got := ParseCategory("fence"); got != CategoryUnknown {
		t.Errorf("ParseCategory(\"fence\") = %q", got)
	}
}

func TestCategoryProperties(t *testing.T) {
	for _, c := range []Category{CategoryDoor, CategoryWindow} {
		if !c.CountBased() {
			t.Errorf("%q should be count-based", c)
		}
	}
	for _, c := range []Category{CategoryFloor, CategoryWall, CategoryRoof, CategoryArea} {
		if c.CountBased() {
			t.Errorf("%q should be area-based", c)
		}
	}
	if CategoryUnknown.Known() {
		t.Error("unknown must not be a known category")
	}
	if CategoryDoor.BucketKey() != "doors" {
		t.Errorf("bucket key = %q", CategoryDoor.BucketKey())
	}
}
