// SPDX-License-Identifier: MIT

// Package simplicial computes the simplicial complex generated by a Mapper
// partial clustering and keeps it as a simplex tree, ready for hypergraph
// analysis.
//
// A Mapper run yields nodes, each holding some data points; a data point may
// sit in several nodes. Any set of nodes that shares at least one data point
// spans a simplex: two nodes an edge, three a filled triangle, and so on. The
// shared points are the simplex's contents.
//
// Packages:
//
//	contents/     data-point sets and their intersection
//	simplextree/  level-by-level simplex tree construction, traversal, verification
//	hypergraph/   simplices as hyperedges; incidence & adjacency matrices (gonum)
//	loader/       YAML/JSON (and KeplerMapper) node files, in file order
//	store/        SQLite catalog of built complexes
//	metrics/      Prometheus metrics of construction
//	cmd/simplicial  command line front-end
//
// Quick example:
//
//	a{1,2}  b{1,2}  c{2,3}
//
//	edges:    (a,b){1,2}  (a,c){2}  (b,c){2}
//	triangle: (a,b,c){2}
//
//	go install github.com/katalvlaran/simplicial/cmd/simplicial@latest
package simplicial
