// SPDX-License-Identifier: MIT

// Package contents implements the data-point sets attached to Mapper nodes
// and to every simplex of a simplex tree, together with the one primitive the
// tree builder needs: set intersection.
//
// What:
//
//   - Set[P]: a hash set of comparable data-point identifiers.
//   - Intersect(a, b): the element-wise intersection of two sets. An empty
//     result is a meaningful answer (the simplex does not exist), never an error.
//   - IntersectAll(sets...): intersection of any number of sets, used to check
//     simplex contents against their member nodes.
//   - Sorted(s): deterministic slice view for ordered element types.
//   - Natural(s): the same for string points, numeric when they all are.
//
// Complexity:
//
//   - Intersect:    Time O(min(|a|,|b|)), Memory O(|a ∩ b|)
//   - IntersectAll: Time O(k·min|s_i|)
//
// All functions are pure: they never mutate their arguments.
package contents
