// SPDX-License-Identifier: MIT

// Package hypergraph exports a simplex tree as a hypergraph: every simplex
// becomes a hyperedge whose incident vertices are its member nodes, carrying
// the simplex contents as edge data.
//
// Two views are offered, mirroring how Mapper complexes are usually drawn:
//
//   - all simplices of dimension >= 1 (default), or
//   - maximal simplices only (WithMaximalOnly), which is enough to recover
//     the whole complex because it is closed under faces. In this mode an
//     isolated node shows up as a singleton hyperedge.
//
// Hyperedges are numbered from 1 in simplex-tree traversal order.
//
// Matrices (gonum.org/v1/gonum/mat):
//
//	Incidence:  |V|×|E|, H[v][e] = 1 iff v ∈ e
//	Weighted:   |V|×|E|, H[v][e] = |contents(e)| iff v ∈ e
//	Adjacency:  |V|×|V|, H·Hᵀ; off-diagonal = shared hyperedges, diagonal = degree
//
// Errors:
//
//   - ErrTreeNil  a nil tree was passed to FromTree.
//   - ErrEmpty    a matrix was requested for a hypergraph without vertices or edges.
package hypergraph
