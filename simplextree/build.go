// SPDX-License-Identifier: MIT

package simplextree

import (
	"cmp"
	"slices"

	"github.com/tidwall/btree"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/simplicial/contents"
)

// Build constructs the simplex tree of nodes. The rank of each node is its
// position in nodes, so the same slice always yields the same tree.
//
// Contents may be empty: such a node is still a 0-simplex but joins no
// higher simplex. On invalid input Build returns a nil tree and an error
// matching ErrInvalidInput.
func Build[K comparable, P comparable](nodes []Node[K, P], opts ...Option) (*Tree[K, P], error) {
	// 1. Resolve options
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}

	// 2. Validate and rank before touching the arena
	rank, err := validate(nodes)
	if err != nil {
		return nil, err
	}

	// 3. Allocate the tree with its root sentinel
	t := &Tree[K, P]{
		ids:   make([]K, len(nodes)),
		rank:  rank,
		arena: make([]entity[P], 1, 1+len(nodes)),
		limit: o.MaxDimension,
	}
	t.arena[0] = entity[P]{key: rootKey, parent: -1}
	for i, n := range nodes {
		t.ids[i] = n.ID
	}

	b := &builder[K, P]{tree: t, opts: o}
	b.run(nodes)

	return t, nil
}

// BuildMap builds the tree of m, ranking identifiers in ascending order.
func BuildMap[K cmp.Ordered, P comparable](m map[K][]P, opts ...Option) (*Tree[K, P], error) {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	nodes := make([]Node[K, P], len(keys))
	for i, k := range keys {
		nodes[i] = Node[K, P]{ID: k, Contents: m[k]}
	}

	return Build(nodes, opts...)
}

// builder carries construction state; it is discarded when Build returns.
type builder[K comparable, P comparable] struct {
	tree *Tree[K, P]
	opts Options
}

// candidate is a child discovered by a level scan, not yet in the arena.
type candidate[P comparable] struct {
	parent   int
	key      int
	contents contents.Set[P]
}

// run builds level 0 and then iterates the closure rule to a fixed point.
func (b *builder[K, P]) run(nodes []Node[K, P]) {
	t := b.tree
	if len(nodes) == 0 {
		return
	}

	// level 0: every node, whatever its contents
	lo := len(t.arena)
	for r, n := range nodes {
		t.addChild(0, r, contents.Of(n.Contents...))
	}
	t.levels = append(t.levels, span{lo, len(t.arena)})
	b.report(0, len(nodes))

	// parents whose sibling pairs produce the next level; the root yields edges
	parents := []int{0}
	for dim := 1; b.opts.MaxDimension < 0 || dim <= b.opts.MaxDimension; dim++ {
		found := b.scan(parents)

		lo = len(t.arena)
		for _, cands := range found {
			for _, c := range cands {
				t.addChild(c.parent, c.key, c.contents)
			}
		}
		created := len(t.arena) - lo
		if created == 0 {
			break
		}
		t.levels = append(t.levels, span{lo, len(t.arena)})
		b.report(dim, created)

		// only (dim-1)-simplices with two or more children can have grandchildren
		prev := t.levels[dim-1]
		parents = parents[:0]
		for idx := prev.lo; idx < prev.hi; idx++ {
			if ch := t.arena[idx].children; ch != nil && ch.Len() > 1 {
				parents = append(parents, idx)
			}
		}
		if len(parents) == 0 {
			break
		}
	}
}

// scan computes the next-level candidates of every parent. Result i belongs to
// parents[i]; candidates are ordered by (first child rank, second child rank).
// The arena is only read here, so parents can be scanned concurrently.
func (b *builder[K, P]) scan(parents []int) [][]candidate[P] {
	found := make([][]candidate[P], len(parents))
	if b.opts.Workers <= 1 || len(parents) == 1 {
		for i, p := range parents {
			found[i] = b.scanParent(p)
		}

		return found
	}

	var g errgroup.Group
	g.SetLimit(b.opts.Workers)
	for i, p := range parents {
		g.Go(func() error {
			found[i] = b.scanParent(p) // each goroutine owns slot i
			return nil
		})
	}
	_ = g.Wait() // scanParent cannot fail

	return found
}

// scanParent pairs every child of p with each higher-ranked sibling.
func (b *builder[K, P]) scanParent(p int) []candidate[P] {
	t := b.tree
	ch := t.arena[p].children
	if ch == nil || ch.Len() < 2 {
		return nil
	}
	kids := ch.Values() // arena indices in rank order

	var out []candidate[P]
	var i, j int
	var c1, c2 *entity[P]
	for i = 0; i < len(kids)-1; i++ {
		c1 = &t.arena[kids[i]]
		for j = i + 1; j < len(kids); j++ {
			c2 = &t.arena[kids[j]]
			if !contents.Intersects(c1.contents, c2.contents) {
				continue
			}
			out = append(out, candidate[P]{
				parent:   kids[i],
				key:      c2.key,
				contents: contents.Intersect(c1.contents, c2.contents),
			})
		}
	}

	return out
}

// report logs a finished level and calls the OnLevel hook.
func (b *builder[K, P]) report(dim, created int) {
	b.opts.Logger.Debug("simplextree: level built", "dimension", dim, "simplices", created)
	if b.opts.OnLevel != nil {
		b.opts.OnLevel(dim, created)
	}
}

// addChild appends a new entity under parent and links it by key.
func (t *Tree[K, P]) addChild(parent, key int, set contents.Set[P]) int {
	idx := len(t.arena)
	t.arena = append(t.arena, entity[P]{
		key:      key,
		parent:   parent,
		depth:    t.arena[parent].depth + 1,
		contents: set,
	})
	pe := &t.arena[parent] // re-take after append may have moved the arena
	if pe.children == nil {
		pe.children = btree.NewMap[int, int](0)
	}
	pe.children.Set(key, idx)

	return idx
}
