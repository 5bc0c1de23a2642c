package daily

import (
	"testing"
	"time"
)

func TestDateKeyUsesUTC(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*3600)
	d := time.Date(2025, 3, 1, 22, 0, 0, 0, loc)
	if got := DateKey(d); got != "2025-03-02" {
		t.Errorf("DateKey = %q, want 2025-03-02", got)
	}
}

func TestWordIndexDeterministic(t *testing.T) {
	d := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	later := d.Add(10 * time.Hour)

	a := WordIndex(d, "salt", 200)
	if b := WordIndex(later, "salt", 200); a != b {
		t.Errorf("Expected same index within a day, got %d and %d", a, b)
	}
	if a < 0 || a >= 200 {
		t.Errorf("Index %d out of range", a)
	}
	if WordIndex(d, "salt", 0) != 0 {
		t.Error("Expected 0 for an empty list")
	}
}

func TestWordIndexDependsOnSaltAndDate(t *testing.T) {
	d := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	const n = 1 << 30
	if WordIndex(d, "a", n) == WordIndex(d, "b", n) {
		t.Error("Expected different salts to pick different indexes")
	}
	if WordIndex(d, "a", n) == WordIndex(d.AddDate(0, 0, 1), "a", n) {
		t.Error("Expected consecutive days to pick different indexes")
	}
	long := string(make([]byte, 100))
	if got := WordIndex(d, long, 10); got < 0 || got >= 10 {
		t.Errorf("Expected a long salt to work, got %d", got)
	}
}

func TestPick(t *testing.T) {
	d := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	list := []string{"GATOS", "PERRO", "ABEJA"}
	if got := Pick(list, d, "s"); got != list[WordIndex(d, "s", 3)] {
		t.Errorf("Pick = %q", got)
	}
	if Pick(nil, d, "s") != "" {
		t.Error("Expected empty word for an empty list")
	}
}
