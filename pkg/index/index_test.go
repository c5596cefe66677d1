package index

import "testing"

func TestBuild(t *testing.T) {
	idx := NewNameIndex()
	if dups := idx.Build([]string{"a", "b", "c"}); dups != nil {
		t.Fatalf("Expected no duplicates, got %v", dups)
	}
	for i, name := range []string{"a", "b", "c"} {
		pos, ok := idx.Get(name)
		if !ok || pos != i {
			t.Errorf("Get(%q) = %d, %v; want %d", name, pos, ok, i)
		}
	}
}

func TestBuildReportsDuplicatesOnce(t *testing.T) {
	idx := NewNameIndex()
	idx.Set("stale", 0)

	dups := idx.Build([]string{"x", "y", "x", "y", "x", "z"})
	if len(dups) != 2 || dups[0] != "x" || dups[1] != "y" {
		t.Fatalf("Expected [x y], got %v", dups)
	}
	if idx.Len() != 0 {
		t.Errorf("Index should be empty after a failed build, has %d entries", idx.Len())
	}
}

func TestRemoveShiftsPositions(t *testing.T) {
	idx := NewNameIndex()
	idx.Build([]string{"a", "b", "c", "d"})

	idx.Remove("b")
	if idx.Has("b") {
		t.Error("b should be gone")
	}
	want := map[string]int{"a": 0, "c": 1, "d": 2}
	for name, pos := range want {
		if got, _ := idx.Get(name); got != pos {
			t.Errorf("Get(%q) = %d, want %d", name, got, pos)
		}
	}

	idx.Remove("missing")
	if idx.Len() != 3 {
		t.Errorf("Removing an unknown name changed the index: %d entries", idx.Len())
	}
}
