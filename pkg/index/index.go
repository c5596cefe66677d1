// Package index maps task names to their position in an ordered task list.
package index

// NameIndex resolves a task name to its position in the owner's slice.
// It does no locking of its own; the owner serializes access together with
// the slice it describes.
type NameIndex struct {
	Positions map[string]int
}

func NewNameIndex() *NameIndex {
	return &NameIndex{Positions: make(map[string]int)}
}

// Build replaces the index with the given names in order. It returns the
// names seen more than once, each reported a single time in the order its
// first repeat was met. When duplicates are found the index is left empty.
func (idx *NameIndex) Build(names []string) []string {
	positions := make(map[string]int, len(names))
	reported := make(map[string]bool)
	var dups []string
	for i, name := range names {
		if _, exists := positions[name]; exists {
			if !reported[name] {
				dups = append(dups, name)
				reported[name] = true
			}
			continue
		}
		positions[name] = i
	}
	if len(dups) > 0 {
		idx.Positions = make(map[string]int)
		return dups
	}
	idx.Positions = positions
	return nil
}

// Get returns the position of name.
func (idx *NameIndex) Get(name string) (int, bool) {
	pos, ok := idx.Positions[name]
	return pos, ok
}

func (idx *NameIndex) Has(name string) bool {
	_, ok := idx.Positions[name]
	return ok
}

// Set records name at pos.
func (idx *NameIndex) Set(name string, pos int) {
	idx.Positions[name] = pos
}

// Remove drops name and shifts every later position down by one, matching
// a removal from the backing slice.
func (idx *NameIndex) Remove(name string) {
	pos, exists := idx.Positions[name]
	if !exists {
		return
	}
	delete(idx.Positions, name)
	for n, p := range idx.Positions {
		if p > pos {
			idx.Positions[n] = p - 1
		}
	}
}

func (idx *NameIndex) Len() int {
	return len(idx.Positions)
}
