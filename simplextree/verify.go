// SPDX-License-Identifier: MIT

package simplextree

import (
	"fmt"

	"github.com/katalvlaran/simplicial/contents"
)

// Verify re-checks the tree against the definitions it was built from:
//   - child keys strictly increase along every path;
//   - every facet of every simplex is present (closure);
//   - every set of nodes sharing a data point is present, up to the
//     dimension limit (completeness);
//   - every simplex of dimension >= 1 shares at least one data point, and its
//     contents equal the intersection of its members' contents.
//
// A tree returned by Build always passes; Verify exists for trees that went
// through persistence or for debugging. The first violation is returned,
// wrapped around one of ErrOrderViolated, ErrClosureViolated or
// ErrContentsMismatch.
//
// Complexity: O(S·d²) lookups plus O(S·d) intersections, and one
// intersection test per pair of siblings.
func (t *Tree[K, P]) Verify() error {
	vertex := make([]contents.Set[P], len(t.ids))
	if len(t.levels) > 0 {
		for idx := t.levels[0].lo; idx < t.levels[0].hi; idx++ {
			vertex[t.arena[idx].key] = t.arena[idx].contents
		}
	}

	var facet []int
	for idx := 1; idx < len(t.arena); idx++ {
		e := &t.arena[idx]
		if p := &t.arena[e.parent]; p.key != rootKey && e.key <= p.key {
			return fmt.Errorf("simplextree: simplex %v: key %d under %d: %w", t.simplexAt(idx).Nodes, e.key, p.key, ErrOrderViolated)
		}
		if e.depth < 2 {
			continue
		}

		ranks := t.ranksOf(idx)
		members := make([]contents.Set[P], len(ranks))
		for i, r := range ranks {
			members[i] = vertex[r]
		}
		if e.contents.Empty() {
			return fmt.Errorf("simplextree: simplex %v has no shared data points: %w", t.simplexAt(idx).Nodes, ErrContentsMismatch)
		}
		if want := contents.IntersectAll(members...); !contents.Equal(want, e.contents) {
			return fmt.Errorf("simplextree: simplex %v: %w", t.simplexAt(idx).Nodes, ErrContentsMismatch)
		}

		for skip := range ranks {
			facet = facet[:0]
			facet = append(facet, ranks[:skip]...)
			facet = append(facet, ranks[skip+1:]...)
			if _, ok := t.find(facet); !ok {
				return fmt.Errorf("simplextree: simplex %v: facet without vertex #%d missing: %w", t.simplexAt(idx).Nodes, skip, ErrClosureViolated)
			}
		}
	}

	return t.verifyComplete()
}

// verifyComplete re-applies the construction rule: under every entity, two
// children whose contents intersect must be joined by a child of the first
// keyed by the second. With closure already checked this proves that no
// simplex of the complex is missing, up to the dimension limit.
func (t *Tree[K, P]) verifyComplete() error {
	var i, j int
	var c1, c2 *entity[P]
	for idx := range t.arena {
		e := &t.arena[idx]
		// children of e have dimension e.depth; joining two gives e.depth+1
		if e.children == nil || e.children.Len() < 2 || (t.limit >= 0 && e.depth >= t.limit) {
			continue
		}
		kids := e.children.Values()
		for i = 0; i < len(kids)-1; i++ {
			c1 = &t.arena[kids[i]]
			for j = i + 1; j < len(kids); j++ {
				c2 = &t.arena[kids[j]]
				if !contents.Intersects(c1.contents, c2.contents) {
					continue
				}
				if c1.children != nil {
					if _, ok := c1.children.Get(c2.key); ok {
						continue
					}
				}
				missing := append(t.simplexAt(kids[i]).Nodes, t.ids[c2.key])
				return fmt.Errorf("simplextree: simplex %v shares data points but is missing: %w", missing, ErrClosureViolated)
			}
		}
	}

	return nil
}
