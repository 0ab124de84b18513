// SPDX-License-Identifier: MIT

package simplextree

import "iter"

// Simplices yields every simplex depth-first in pre-order: a simplex comes
// before its extensions, siblings in rank order, the root excluded. The
// sequence is lazy and can be ranged over any number of times; stopping early
// is fine.
//
// Complexity: O(S·d) for S simplices of dimension at most d.
func (t *Tree[K, P]) Simplices() iter.Seq[Simplex[K, P]] {
	return t.walk(-1)
}

// Skeleton yields the simplices of dimension <= k in the same order as
// Simplices. A negative k yields nothing.
func (t *Tree[K, P]) Skeleton(k int) iter.Seq[Simplex[K, P]] {
	if k < 0 {
		return func(func(Simplex[K, P]) bool) {}
	}

	return t.walk(k)
}

// walk is an explicit-stack pre-order traversal. maxDim < 0 means unbounded.
func (t *Tree[K, P]) walk(maxDim int) iter.Seq[Simplex[K, P]] {
	return func(yield func(Simplex[K, P]) bool) {
		stack := t.childrenDesc(0, nil)
		var idx int
		for len(stack) > 0 {
			idx = stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if !yield(t.simplexAt(idx)) {
				return
			}
			if maxDim < 0 || t.arena[idx].depth <= maxDim {
				stack = t.childrenDesc(idx, stack)
			}
		}
	}
}

// childrenDesc pushes the children of idx onto stack in descending rank order,
// so that popping visits them ascending.
func (t *Tree[K, P]) childrenDesc(idx int, stack []int) []int {
	ch := t.arena[idx].children
	if ch == nil {
		return stack
	}
	ch.Reverse(func(_ int, child int) bool {
		stack = append(stack, child)
		return true
	})

	return stack
}

// Leaves returns the simplices whose tree entity has no children, in
// traversal order. Every maximal simplex is a leaf, but a leaf need not be
// maximal: in the full triangle (a,b,c) the edge (b,c) is a leaf too.
func (t *Tree[K, P]) Leaves() []Simplex[K, P] {
	var out []Simplex[K, P]
	t.eachIndex(func(idx int) {
		if ch := t.arena[idx].children; ch == nil || ch.Len() == 0 {
			out = append(out, t.simplexAt(idx))
		}
	})

	return out
}

// Maximal returns the simplices that are not a face of any other simplex, in
// traversal order. Together with the closure property they determine the
// whole complex.
//
// Complexity: O(S·d²) lookups.
func (t *Tree[K, P]) Maximal() []Simplex[K, P] {
	covered := make([]bool, len(t.arena))
	// every facet of a simplex of dimension >= 1 is covered
	var facet []int
	for idx := 1; idx < len(t.arena); idx++ {
		if t.arena[idx].depth < 2 {
			continue
		}
		ranks := t.ranksOf(idx)
		for skip := range ranks {
			facet = facet[:0]
			facet = append(facet, ranks[:skip]...)
			facet = append(facet, ranks[skip+1:]...)
			if f, ok := t.find(facet); ok {
				covered[f] = true
			}
		}
	}

	var out []Simplex[K, P]
	t.eachIndex(func(idx int) {
		if !covered[idx] {
			out = append(out, t.simplexAt(idx))
		}
	})

	return out
}

// eachIndex calls fn for every non-root arena index in pre-order.
func (t *Tree[K, P]) eachIndex(fn func(idx int)) {
	stack := t.childrenDesc(0, nil)
	var idx int
	for len(stack) > 0 {
		idx = stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		fn(idx)
		stack = t.childrenDesc(idx, stack)
	}
}
