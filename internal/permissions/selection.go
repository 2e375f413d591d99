package permissions

import (
	"mcon/internal/models"
)

// Selection is a deduplicated set of bucket names chosen for one access mode.
// Insertion order is kept so rendering and derived permissions are stable.
// Selections are values: every mutation returns a new Selection.
type Selection struct {
	names []string
}

// NewSelection creates a selection from the given names, dropping duplicates
func NewSelection(names ...string) Selection {
	var s Selection
	for _, name := range names {
		if !s.Has(name) {
			s.names = append(s.names, name)
		}
	}
	return s
}

// Has reports whether name is selected
func (s Selection) Has(name string) bool {
	for _, n := range s.names {
		if n == name {
			return true
		}
	}
	return false
}

// Len returns the number of selected names
func (s Selection) Len() int {
	return len(s.names)
}

// Names returns a copy of the selected names
func (s Selection) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Toggle removes name if it is selected and adds it otherwise
func (s Selection) Toggle(name string) Selection {
	if s.Has(name) {
		out := make([]string, 0, len(s.names)-1)
		for _, n := range s.names {
			if n != name {
				out = append(out, n)
			}
		}
		return Selection{names: out}
	}

	out := make([]string, len(s.names), len(s.names)+1)
	copy(out, s.names)
	return Selection{names: append(out, name)}
}

// SelectAll returns a selection holding every bucket name
func (s Selection) SelectAll(buckets []models.Bucket) Selection {
	return NewSelection(models.BucketNames(buckets)...)
}

// DeselectAll returns an empty selection
func (s Selection) DeselectAll() Selection {
	return Selection{}
}

// Equal reports whether both selections hold the same names, ignoring order
func (s Selection) Equal(other Selection) bool {
	if s.Len() != other.Len() {
		return false
	}
	for _, n := range s.names {
		if !other.Has(n) {
			return false
		}
	}
	return true
}
