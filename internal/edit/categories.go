// Package edit implements the edit-todo flow independently of the terminal UI:
// category loading, the screen state machine and request construction.
package edit

import "github.com/hy4ri/bubbly-todo/internal/api"

// CategoryInfo is the lookup value stored per category name.
type CategoryInfo struct {
	Color *string
	ID    *int64
}

// CategorySet is an ordered list of category names with a name lookup.
// The zero value is an empty set.
type CategorySet struct {
	names  []string
	byName map[string]CategoryInfo
}

// NewCategorySet builds a set from the server's category list, preserving order.
// Names are unique keys: a repeated name keeps its first occurrence.
func NewCategorySet(categories []api.Category) CategorySet {
	set := CategorySet{
		names:  make([]string, 0, len(categories)),
		byName: make(map[string]CategoryInfo, len(categories)),
	}
	for _, c := range categories {
		if _, dup := set.byName[c.Category]; dup {
			continue
		}
		set.names = append(set.names, c.Category)
		set.byName[c.Category] = CategoryInfo{Color: c.CategoryColor, ID: c.CategoryID}
	}
	return set
}

// Len returns the number of categories.
func (s CategorySet) Len() int {
	return len(s.names)
}

// Name returns the name at row i. It panics if i is out of range.
func (s CategorySet) Name(i int) string {
	return s.names[i]
}

// Names returns a copy of the ordered names.
func (s CategorySet) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Lookup returns the color and id stored for name.
func (s CategorySet) Lookup(name string) (CategoryInfo, bool) {
	info, ok := s.byName[name]
	return info, ok
}

// IndexOf returns the row of name, or -1.
func (s CategorySet) IndexOf(name string) int {
	for i, n := range s.names {
		if n == name {
			return i
		}
	}
	return -1
}
