// SPDX-License-Identifier: MIT

package hypergraph

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/simplicial/contents"
	"github.com/katalvlaran/simplicial/simplextree"
)

var (
	// ErrTreeNil is returned when FromTree receives a nil tree.
	ErrTreeNil = errors.New("hypergraph: tree is nil")

	// ErrEmpty is returned when a matrix would have zero rows or columns.
	ErrEmpty = errors.New("hypergraph: no vertices or no edges")
)

// Hyperedge is one simplex viewed as an edge over its member nodes.
type Hyperedge[K comparable, P comparable] struct {
	// ID numbers the edge from 1 in traversal order.
	ID int
	// Nodes are the incident vertices in rank order.
	Nodes []K
	// Contents are the data points shared by all Nodes (read-only).
	Contents contents.Set[P]
}

// Option configures FromTree.
type Option func(*Options)

// Options holds the resolved FromTree configuration.
type Options struct {
	// MaximalOnly keeps only simplices that are not faces of another simplex.
	MaximalOnly bool
	// MinDimension drops simplices of lower dimension. When unset it is 1 for
	// the full view and 0 for the maximal view.
	MinDimension int

	minSet bool
}

// DefaultOptions returns the full view without singleton edges.
func DefaultOptions() Options {
	return Options{MinDimension: 1}
}

// WithMaximalOnly exports maximal simplices only.
func WithMaximalOnly() Option {
	return func(o *Options) { o.MaximalOnly = true }
}

// WithMinDimension drops simplices of dimension < d. Panics if d < 0.
func WithMinDimension(d int) Option {
	if d < 0 {
		panic("hypergraph: WithMinDimension(d < 0)")
	}
	return func(o *Options) {
		o.MinDimension = d
		o.minSet = true
	}
}

// Hypergraph is an immutable hypergraph over the nodes of a simplex tree.
type Hypergraph[K comparable, P comparable] struct {
	vertices    []K
	vertexIndex map[K]int
	edges       []Hyperedge[K, P]
}

// FromTree converts tree into a Hypergraph. Every tree node becomes a vertex,
// including nodes that end up on no edge.
func FromTree[K comparable, P comparable](tree *simplextree.Tree[K, P], opts ...Option) (*Hypergraph[K, P], error) {
	if tree == nil {
		return nil, fmt.Errorf("FromTree: %w", ErrTreeNil)
	}
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	if o.MaximalOnly && !o.minSet {
		o.MinDimension = 0
	}

	h := &Hypergraph[K, P]{vertices: tree.Nodes()}
	h.vertexIndex = make(map[K]int, len(h.vertices))
	for i, v := range h.vertices {
		h.vertexIndex[v] = i
	}

	add := func(s simplextree.Simplex[K, P]) {
		if s.Dimension() < o.MinDimension {
			return
		}
		h.edges = append(h.edges, Hyperedge[K, P]{ID: len(h.edges) + 1, Nodes: s.Nodes, Contents: s.Contents})
	}
	if o.MaximalOnly {
		for _, s := range tree.Maximal() {
			add(s)
		}
	} else {
		for s := range tree.Simplices() {
			add(s)
		}
	}

	return h, nil
}

// Vertices returns the vertices in rank order.
func (h *Hypergraph[K, P]) Vertices() []K {
	out := make([]K, len(h.vertices))
	copy(out, h.vertices)

	return out
}

// Edges returns the hyperedges in ID order.
func (h *Hypergraph[K, P]) Edges() []Hyperedge[K, P] {
	out := make([]Hyperedge[K, P], len(h.edges))
	copy(out, h.edges)

	return out
}

// Len returns the number of hyperedges.
func (h *Hypergraph[K, P]) Len() int { return len(h.edges) }

// Degree returns how many hyperedges contain v; unknown vertices have degree 0.
func (h *Hypergraph[K, P]) Degree(v K) int {
	n := 0
	for _, e := range h.edges {
		for _, x := range e.Nodes {
			if x == v {
				n++
				break
			}
		}
	}

	return n
}
