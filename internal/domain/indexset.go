package domain

import (
	"maps"
	"slices"
)

// IndexSet is a set of dataset or category indices
type IndexSet map[int]struct{}

// NewIndexSet builds a set from the given indices
func NewIndexSet(indices ...int) IndexSet {
	s := make(IndexSet, len(indices))
	for _, i := range indices {
		s[i] = struct{}{}
	}
	return s
}

// Add inserts i
func (s IndexSet) Add(i int) {
	s[i] = struct{}{}
}

// Remove deletes i
func (s IndexSet) Remove(i int) {
	delete(s, i)
}

// Has reports whether i is in the set
func (s IndexSet) Has(i int) bool {
	_, ok := s[i]
	return ok
}

// Len returns the number of members
func (s IndexSet) Len() int {
	return len(s)
}

// Clone returns an independent copy
func (s IndexSet) Clone() IndexSet {
	if s == nil {
		return IndexSet{}
	}
	return maps.Clone(s)
}

// Sorted returns the members in ascending order
func (s IndexSet) Sorted() []int {
	out := make([]int, 0, len(s))
	for i := range s {
		out = append(out, i)
	}
	slices.Sort(out)
	return out
}

// Union adds every member of other
func (s IndexSet) Union(other IndexSet) {
	for i := range other {
		s[i] = struct{}{}
	}
}

// Equal reports whether both sets hold the same members
func (s IndexSet) Equal(other IndexSet) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if !other.Has(i) {
			return false
		}
	}
	return true
}
