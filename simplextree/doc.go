// SPDX-License-Identifier: MIT

// Package simplextree builds the simplicial complex generated by a Mapper-style
// partial clustering and stores it as a simplex tree.
//
// What:
//
//   - Build(nodes, opts...): takes Mapper nodes (identifier + data points) in a
//     fixed order and returns a read-only *Tree.
//   - Every node is a 0-simplex. A tuple of nodes is a simplex iff the
//     intersection of its members' contents is non-empty; that intersection is
//     attached to the simplex.
//   - Each simplex (v0,…,vn), members in rank order, is exactly one
//     root-to-entity path: the entity for (v0,…,vn) is the child keyed vn of
//     the entity for (v0,…,v_{n-1}).
//
// How:
//
//	rank:    node i of the input gets rank i; all ordering uses ranks.
//	level 0: one root child per node, unconditionally.
//	level n: for every entity P whose children are (n-1)-simplices and every
//	         pair of children c1 < c2 of P, add a child keyed c2 under c1 when
//	         contents(c1) ∩ contents(c2) ≠ ∅. Level 1 is the same rule applied
//	         to the root.
//	stop:    the first level that creates nothing ends construction.
//
// An n-simplex exists iff its face without the last vertex and its face without
// the second-to-last vertex both exist and share data points, so each level
// only scans sibling pairs of the previous one instead of all node subsets.
//
// Storage: entities live in an arena (a slice indexed by int); each entity
// keeps an ordered map child rank → arena index (tidwall/btree), so traversal
// is deterministic and no pointer cycles exist.
//
// Options:
//
//   - WithMaxDimension(d)  stop after d-simplices (the d-skeleton).
//   - WithWorkers(n)       scan each level with n goroutines; the result is
//     identical to the sequential build.
//   - WithLogger(l)        debug logging per level (log/slog).
//   - WithOnLevel(fn)      hook called after each level with its size.
//
// Complexity:
//
//	Time:   O(Σ_P deg(P)² · c) where c is the cost of one intersection. The
//	        worst case is exponential in the number of nodes; this is accepted.
//	Memory: O(S · c) for S simplices.
//
// Errors:
//
//   - ErrInvalidInput  duplicate node identifiers, or identifiers / data points
//     whose dynamic values cannot be hashed. Reported before anything is built;
//     errors.As with *InvalidInputError gives the offending position.
package simplextree
