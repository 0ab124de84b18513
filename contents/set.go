// SPDX-License-Identifier: MIT

package contents

import (
	"cmp"
	"math"
	"slices"
	"strconv"
)

// Set is a set of data-point identifiers. The zero value (nil) is a valid
// empty set for every read-only method.
type Set[P comparable] map[P]struct{}

// New returns an empty Set with room for capacity elements.
func New[P comparable](capacity int) Set[P] {
	return make(Set[P], capacity)
}

// Of returns a Set holding items. Repeated items are stored once.
func Of[P comparable](items ...P) Set[P] {
	s := make(Set[P], len(items))
	for _, it := range items {
		s[it] = struct{}{}
	}

	return s
}

// Add inserts p into s.
func (s Set[P]) Add(p P) {
	s[p] = struct{}{}
}

// Has reports whether p is in s.
func (s Set[P]) Has(p P) bool {
	_, ok := s[p]

	return ok
}

// Len returns the number of elements in s.
func (s Set[P]) Len() int { return len(s) }

// Empty reports whether s has no elements.
func (s Set[P]) Empty() bool { return len(s) == 0 }

// Items returns the elements of s in unspecified order.
func (s Set[P]) Items() []P {
	out := make([]P, 0, len(s))
	for p := range s {
		out = append(out, p)
	}

	return out
}

// Clone returns a shallow copy of s. Cloning a nil set yields an empty,
// non-nil set.
func Clone[P comparable](s Set[P]) Set[P] {
	out := make(Set[P], len(s))
	for p := range s {
		out[p] = struct{}{}
	}

	return out
}

// Equal reports whether a and b hold exactly the same elements.
func Equal[P comparable](a, b Set[P]) bool {
	if len(a) != len(b) {
		return false
	}
	for p := range a {
		if _, ok := b[p]; !ok {
			return false
		}
	}

	return true
}

// Sorted returns the elements of s in ascending order.
func Sorted[P cmp.Ordered](s Set[P]) []P {
	out := s.Items()
	slices.Sort(out)

	return out
}

// Natural returns the elements of s in ascending numeric order when every
// element parses as a number ("2" before "10"), and in lexical order
// otherwise. Elements with equal values, such as "1" and "1.0", keep their
// lexical order.
func Natural(s Set[string]) []string {
	out := Sorted(s)
	values := make(map[string]float64, len(out))
	for _, p := range out {
		f, err := strconv.ParseFloat(p, 64)
		if err != nil || math.IsNaN(f) {
			return out
		}
		values[p] = f
	}
	slices.SortStableFunc(out, func(a, b string) int { return cmp.Compare(values[a], values[b]) })

	return out
}
