package simplextree_test

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/simplicial/contents"
	"github.com/katalvlaran/simplicial/simplextree"
)

// node is a shorthand for a string-keyed, int-valued Mapper node.
func node(id string, pts ...int) simplextree.Node[string, int] {
	return simplextree.Node[string, int]{ID: id, Contents: pts}
}

// sig joins simplex members into a map key, e.g. "a,b,c".
func sig(ids []string) string { return strings.Join(ids, ",") }

// collect flattens a tree into signature → sorted contents, failing on duplicates.
func collect(t *testing.T, tree *simplextree.Tree[string, int]) map[string][]int {
	t.Helper()
	out := make(map[string][]int)
	for s := range tree.Simplices() {
		key := sig(s.Nodes)
		_, dup := out[key]
		require.False(t, dup, "simplex %s yielded twice", key)
		out[key] = contents.Sorted(s.Contents)
	}

	return out
}

// bruteForce enumerates every subset of nodes (in rank order) and keeps the
// singletons plus every larger subset whose contents intersect.
// maxDim < 0 means no dimension cap.
func bruteForce(nodes []simplextree.Node[string, int], maxDim int) map[string][]int {
	out := make(map[string][]int)
	n := len(nodes)
	for mask := 1; mask < 1<<n; mask++ {
		var ids []string
		var sets []contents.Set[int]
		for i := 0; i < n; i++ {
			if mask&(1<<i) != 0 {
				ids = append(ids, nodes[i].ID)
				sets = append(sets, contents.Of(nodes[i].Contents...))
			}
		}
		if maxDim >= 0 && len(ids)-1 > maxDim {
			continue
		}
		inter := contents.IntersectAll(sets...)
		if len(ids) == 1 || !inter.Empty() {
			out[sig(ids)] = contents.Sorted(inter)
		}
	}

	return out
}

// bruteMaxDimension is the largest n such that n+1 nodes share a data point,
// or 0 if there are nodes but no edges.
func bruteMaxDimension(all map[string][]int) int {
	best := -1
	for k := range all {
		if d := strings.Count(k, ","); d > best {
			best = d
		}
	}

	return best
}

// randomNodes returns n nodes "n0".."n{n-1}"; each joins each of points data
// points with probability p.
func randomNodes(rng *rand.Rand, n, points int, p float64) []simplextree.Node[string, int] {
	nodes := make([]simplextree.Node[string, int], n)
	for i := range nodes {
		nodes[i].ID = fmt.Sprintf("n%d", i)
		for pt := 0; pt < points; pt++ {
			if rng.Float64() < p {
				nodes[i].Contents = append(nodes[i].Contents, pt)
			}
		}
	}

	return nodes
}

// ordered returns the traversal as a slice, for order-sensitive comparisons.
func ordered(tree *simplextree.Tree[string, int]) []string {
	var out []string
	for s := range tree.Simplices() {
		out = append(out, fmt.Sprintf("%s=%v", sig(s.Nodes), contents.Sorted(s.Contents)))
	}

	return out
}

// splitSig is the inverse of sig.
func splitSig(k string) []string { return strings.Split(k, ",") }
