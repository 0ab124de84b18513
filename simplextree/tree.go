// SPDX-License-Identifier: MIT

package simplextree

import (
	"slices"

	"github.com/katalvlaran/simplicial/contents"
)

// Tree is a finished simplex tree. It is never mutated after Build returns,
// so all methods are safe for concurrent use.
type Tree[K comparable, P comparable] struct {
	ids    []K         // rank → node identifier
	rank   map[K]int   // node identifier → rank
	arena  []entity[P] // arena[0] is the root
	levels []span      // levels[d] holds the d-simplices
	limit  int         // dimension cap of construction; -1 for none
}

// NodeCount returns the number of input nodes (0-simplices).
func (t *Tree[K, P]) NodeCount() int { return len(t.ids) }

// Len returns the number of simplices of every dimension. The root is not a
// simplex and is not counted.
func (t *Tree[K, P]) Len() int { return len(t.arena) - 1 }

// MaxDimension returns the greatest n for which an n-simplex exists, or -1
// for a tree built from no nodes.
func (t *Tree[K, P]) MaxDimension() int { return len(t.levels) - 1 }

// DimensionLimit returns the dimension cap the tree was built with
// (WithMaxDimension), or -1 when the tree holds the whole complex.
func (t *Tree[K, P]) DimensionLimit() int { return t.limit }

// FVector returns the number of simplices of each dimension: FVector()[d] is
// the count of d-simplices.
func (t *Tree[K, P]) FVector() []int {
	out := make([]int, len(t.levels))
	for d, s := range t.levels {
		out[d] = s.hi - s.lo
	}

	return out
}

// Nodes returns the node identifiers in rank order.
func (t *Tree[K, P]) Nodes() []K { return slices.Clone(t.ids) }

// Rank returns the rank of id, or false if id is not a node of the tree.
func (t *Tree[K, P]) Rank(id K) (int, bool) {
	r, ok := t.rank[id]

	return r, ok
}

// Lookup returns the contents of the simplex spanned by ids, given in any
// order. It reports false when the ids do not form a simplex: unknown or
// repeated identifiers, an empty argument list, or an empty intersection.
func (t *Tree[K, P]) Lookup(ids ...K) (contents.Set[P], bool) {
	if len(ids) == 0 {
		return nil, false
	}
	ranks := make([]int, len(ids))
	for i, id := range ids {
		r, ok := t.rank[id]
		if !ok {
			return nil, false
		}
		ranks[i] = r
	}
	slices.Sort(ranks)

	idx, ok := t.find(ranks)
	if !ok {
		return nil, false
	}

	return t.arena[idx].contents, true
}

// find walks from the root along strictly increasing ranks and returns the
// arena index of the path's end.
func (t *Tree[K, P]) find(ranks []int) (int, bool) {
	idx := 0
	for i, r := range ranks {
		if i > 0 && r <= ranks[i-1] {
			return 0, false
		}
		ch := t.arena[idx].children
		if ch == nil {
			return 0, false
		}
		next, ok := ch.Get(r)
		if !ok {
			return 0, false
		}
		idx = next
	}

	return idx, true
}

// ranksOf returns the vertex ranks of the simplex at arena index idx.
func (t *Tree[K, P]) ranksOf(idx int) []int {
	e := &t.arena[idx]
	out := make([]int, e.depth)
	for i := e.depth - 1; i >= 0; i-- {
		out[i] = t.arena[idx].key
		idx = t.arena[idx].parent
	}

	return out
}

// simplexAt materializes the simplex at arena index idx.
func (t *Tree[K, P]) simplexAt(idx int) Simplex[K, P] {
	ranks := t.ranksOf(idx)
	nodes := make([]K, len(ranks))
	for i, r := range ranks {
		nodes[i] = t.ids[r]
	}

	return Simplex[K, P]{Nodes: nodes, Contents: t.arena[idx].contents}
}
