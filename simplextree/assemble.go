// SPDX-License-Identifier: MIT

package simplextree

import (
	"cmp"
	"fmt"
	"slices"
)

// Assemble rebuilds a Tree from a flat list of simplices, such as the output
// of Simplices after a round trip through storage. ids fixes the rank order;
// each simplex must list its nodes in that order.
//
// Assemble checks structure only: ranks, duplicates, and that every simplex's
// prefix face is present so the entity has a parent. Run Verify on the result
// for the full closure and contents checks.
//
// Of the Build options only WithMaxDimension applies: it marks the list as a
// capped complex, so Verify does not expect simplices above the cap and
// Assemble rejects any that are listed.
func Assemble[K comparable, P comparable](ids []K, simplices []Simplex[K, P], opts ...Option) (*Tree[K, P], error) {
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}

	nodes := make([]Node[K, P], len(ids))
	for i, id := range ids {
		nodes[i].ID = id
	}
	rank, err := validate(nodes)
	if err != nil {
		return nil, err
	}

	// translate to ranks, then order by (dimension, ranks) so parents precede children
	type ranked struct {
		ranks []int
		src   int
	}
	rs := make([]ranked, len(simplices))
	for i, s := range simplices {
		if len(s.Nodes) == 0 {
			return nil, fmt.Errorf("simplextree: simplex #%d has no nodes: %w", i, ErrInvalidInput)
		}
		if o.MaxDimension >= 0 && s.Dimension() > o.MaxDimension {
			return nil, fmt.Errorf("simplextree: simplex #%d %v above dimension limit %d: %w", i, s.Nodes, o.MaxDimension, ErrInvalidInput)
		}
		r := make([]int, len(s.Nodes))
		for j, id := range s.Nodes {
			k, ok := rank[id]
			if !ok {
				return nil, fmt.Errorf("simplextree: simplex #%d: unknown node %v: %w", i, id, ErrInvalidInput)
			}
			if j > 0 && k <= r[j-1] {
				return nil, fmt.Errorf("simplextree: simplex #%d %v: %w", i, s.Nodes, ErrOrderViolated)
			}
			r[j] = k
		}
		rs[i] = ranked{ranks: r, src: i}
	}
	slices.SortFunc(rs, func(a, b ranked) int {
		if c := cmp.Compare(len(a.ranks), len(b.ranks)); c != 0 {
			return c
		}
		return slices.Compare(a.ranks, b.ranks)
	})

	t := &Tree[K, P]{
		ids:   slices.Clone(ids),
		rank:  rank,
		arena: make([]entity[P], 1, 1+len(simplices)),
		limit: o.MaxDimension,
	}
	t.arena[0] = entity[P]{key: rootKey, parent: -1}

	lo := 1
	for _, r := range rs {
		dim := len(r.ranks) - 1
		// entering a higher dimension closes the current one; a skipped dimension is a gap
		for len(t.levels) < dim {
			if len(t.arena) == lo {
				return nil, fmt.Errorf("simplextree: no simplex of dimension %d below %v: %w", len(t.levels), simplices[r.src].Nodes, ErrClosureViolated)
			}
			t.levels = append(t.levels, span{lo, len(t.arena)})
			lo = len(t.arena)
		}

		parent, ok := t.find(r.ranks[:dim])
		if !ok {
			return nil, fmt.Errorf("simplextree: simplex %v has no parent face: %w", simplices[r.src].Nodes, ErrClosureViolated)
		}
		last := r.ranks[dim]
		if ch := t.arena[parent].children; ch != nil {
			if _, dup := ch.Get(last); dup {
				return nil, fmt.Errorf("simplextree: simplex %v listed twice: %w", simplices[r.src].Nodes, ErrInvalidInput)
			}
		}
		t.addChild(parent, last, simplices[r.src].Contents)
	}
	if len(t.arena) > lo {
		t.levels = append(t.levels, span{lo, len(t.arena)})
	}

	if n := len(ids); n > 0 && (len(t.levels) == 0 || t.levels[0].hi-t.levels[0].lo != n) {
		return nil, fmt.Errorf("simplextree: not every node is a 0-simplex: %w", ErrClosureViolated)
	}

	return t, nil
}
