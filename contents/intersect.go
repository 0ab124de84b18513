// SPDX-License-Identifier: MIT

package contents

// Intersect returns a new Set holding the elements present in both a and b.
// Either argument may be nil or empty; the result is then empty. Neither
// argument is modified and the result never aliases them.
//
// Complexity: O(min(|a|,|b|)) time.
func Intersect[P comparable](a, b Set[P]) Set[P] {
	// walk the smaller operand, probe the larger
	if len(b) < len(a) {
		a, b = b, a
	}
	out := make(Set[P])
	for p := range a {
		if _, ok := b[p]; ok {
			out[p] = struct{}{}
		}
	}

	return out
}

// Intersects reports whether a and b share at least one element, without
// allocating the intersection.
func Intersects[P comparable](a, b Set[P]) bool {
	if len(b) < len(a) {
		a, b = b, a
	}
	for p := range a {
		if _, ok := b[p]; ok {
			return true
		}
	}

	return false
}

// IntersectAll returns the intersection of every set in sets. With no
// arguments it returns an empty set; with one it returns a copy.
func IntersectAll[P comparable](sets ...Set[P]) Set[P] {
	if len(sets) == 0 {
		return make(Set[P])
	}
	out := Clone(sets[0])
	for _, s := range sets[1:] {
		if len(out) == 0 {
			break
		}
		out = Intersect(out, s)
	}

	return out
}
