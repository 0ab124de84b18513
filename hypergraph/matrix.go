// SPDX-License-Identifier: MIT

package hypergraph

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// incidenceMark is placed at (v, e) when v belongs to hyperedge e.
const incidenceMark = 1.0

// IncidenceMatrix returns the |V|×|E| 0/1 incidence matrix. Rows follow
// Vertices(), columns follow Edges().
//
// Complexity: O(|V|·|E|) space, O(Σ|e|) fill.
func (h *Hypergraph[K, P]) IncidenceMatrix() (*mat.Dense, error) {
	return h.fill("IncidenceMatrix", func(Hyperedge[K, P]) float64 { return incidenceMark })
}

// WeightedIncidenceMatrix is IncidenceMatrix with each mark replaced by the
// number of data points on the hyperedge.
func (h *Hypergraph[K, P]) WeightedIncidenceMatrix() (*mat.Dense, error) {
	return h.fill("WeightedIncidenceMatrix", func(e Hyperedge[K, P]) float64 { return float64(e.Contents.Len()) })
}

// AdjacencyMatrix returns H·Hᵀ for the incidence matrix H: entry (u, v) counts
// the hyperedges containing both u and v, and the diagonal holds degrees.
func (h *Hypergraph[K, P]) AdjacencyMatrix() (*mat.Dense, error) {
	inc, err := h.IncidenceMatrix()
	if err != nil {
		return nil, fmt.Errorf("AdjacencyMatrix: %w", err)
	}
	var adj mat.Dense
	adj.Mul(inc, inc.T())

	return &adj, nil
}

// fill allocates the incidence shape and writes mark(e) at every (v, e).
func (h *Hypergraph[K, P]) fill(method string, mark func(Hyperedge[K, P]) float64) (*mat.Dense, error) {
	// Stage 1 (Validate): gonum rejects zero-sized dense matrices
	if len(h.vertices) == 0 || len(h.edges) == 0 {
		return nil, fmt.Errorf("%s: %d vertices, %d edges: %w", method, len(h.vertices), len(h.edges), ErrEmpty)
	}

	// Stage 2 (Execute): one column per hyperedge
	m := mat.NewDense(len(h.vertices), len(h.edges), nil)
	var col int
	var e Hyperedge[K, P]
	for col, e = range h.edges {
		w := mark(e)
		for _, v := range e.Nodes {
			m.Set(h.vertexIndex[v], col, w)
		}
	}

	return m, nil
}
