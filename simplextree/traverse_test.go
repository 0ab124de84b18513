package simplextree_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/simplicial/contents"
	"github.com/katalvlaran/simplicial/simplextree"
)

// triangleWithTail is the full triangle (a,b,c) plus the edge (c,d).
func triangleWithTail(t *testing.T) *simplextree.Tree[string, int] {
	t.Helper()
	tree, err := simplextree.Build([]simplextree.Node[string, int]{
		node("a", 1, 2), node("b", 1, 2), node("c", 1, 2, 3), node("d", 3),
	})
	require.NoError(t, err)

	return tree
}

func TestSimplices_PreOrder(t *testing.T) {
	tree := triangleWithTail(t)
	var got []string
	for s := range tree.Simplices() {
		got = append(got, sig(s.Nodes))
	}
	assert.Equal(t, []string{
		"a", "a,b", "a,b,c", "a,c",
		"b", "b,c",
		"c", "c,d",
		"d",
	}, got)
}

func TestSimplices_Restartable(t *testing.T) {
	tree := triangleWithTail(t)
	seq := tree.Simplices()

	var first, second []string
	for s := range seq {
		first = append(first, sig(s.Nodes))
	}
	for s := range seq {
		second = append(second, sig(s.Nodes))
	}
	assert.Equal(t, first, second)
}

func TestSimplices_EarlyStop(t *testing.T) {
	tree := triangleWithTail(t)
	n := 0
	for range tree.Simplices() {
		n++
		if n == 3 {
			break
		}
	}
	assert.Equal(t, 3, n)
}

func TestSimplex_Dimension(t *testing.T) {
	tree := triangleWithTail(t)
	for s := range tree.Simplices() {
		assert.Equal(t, len(s.Nodes)-1, s.Dimension())
	}
}

func TestSkeleton(t *testing.T) {
	tree := triangleWithTail(t)

	var edges []string
	for s := range tree.Skeleton(1) {
		assert.LessOrEqual(t, s.Dimension(), 1)
		edges = append(edges, sig(s.Nodes))
	}
	assert.Equal(t, []string{"a", "a,b", "a,c", "b", "b,c", "c", "c,d", "d"}, edges)

	n := 0
	for range tree.Skeleton(0) {
		n++
	}
	assert.Equal(t, 4, n)

	for range tree.Skeleton(-1) {
		t.Fatal("negative skeleton must be empty")
	}
}

func TestLeavesAndMaximal(t *testing.T) {
	tree := triangleWithTail(t)

	var leaves []string
	for _, s := range tree.Leaves() {
		leaves = append(leaves, sig(s.Nodes))
	}
	assert.Equal(t, []string{"a,b,c", "a,c", "b,c", "c,d", "d"}, leaves)

	var maximal []string
	for _, s := range tree.Maximal() {
		maximal = append(maximal, sig(s.Nodes))
	}
	assert.Equal(t, []string{"a,b,c", "c,d"}, maximal)
}

func TestMaximal_IsolatedVertex(t *testing.T) {
	tree, err := simplextree.Build([]simplextree.Node[string, int]{
		node("a", 1), node("b", 1), node("lonely", 9),
	})
	require.NoError(t, err)

	var maximal []string
	for _, s := range tree.Maximal() {
		maximal = append(maximal, sig(s.Nodes))
	}
	assert.Equal(t, []string{"a,b", "lonely"}, maximal)
}

// TestMaximal_MatchesBruteForce checks that a maximal simplex has no
// one-vertex extension and that every simplex is a face of some maximal one.
func TestMaximal_MatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for trial := 0; trial < 20; trial++ {
		nodes := randomNodes(rng, 6, 4, 0.6)
		tree, err := simplextree.Build(nodes)
		require.NoError(t, err)

		maximal := tree.Maximal()
		for _, m := range maximal {
			for _, n := range nodes {
				if containsID(m.Nodes, n.ID) {
					continue
				}
				_, ok := tree.Lookup(append(append([]string{}, m.Nodes...), n.ID)...)
				assert.False(t, ok, "%v extends by %s", m.Nodes, n.ID)
			}
		}
		for s := range tree.Simplices() {
			covered := false
			for _, m := range maximal {
				if subset(s.Nodes, m.Nodes) {
					covered = true
					break
				}
			}
			assert.True(t, covered, "%v not under any maximal simplex", s.Nodes)
		}
	}
}

func TestLookup(t *testing.T) {
	tree := triangleWithTail(t)

	got, ok := tree.Lookup("c", "a", "b")
	require.True(t, ok)
	assert.Equal(t, []int{1, 2}, contents.Sorted(got))

	got, ok = tree.Lookup("d", "c")
	require.True(t, ok)
	assert.Equal(t, []int{3}, contents.Sorted(got))

	for _, ids := range [][]string{
		{},
		{"a", "d"},
		{"a", "a"},
		{"zzz"},
		{"a", "b", "c", "d"},
	} {
		_, ok = tree.Lookup(ids...)
		assert.False(t, ok, "%v", ids)
	}

	_, ok = tree.Rank("zzz")
	assert.False(t, ok)
}

func TestNodes_IsCopy(t *testing.T) {
	tree := triangleWithTail(t)
	ids := tree.Nodes()
	ids[0] = "mutated"
	assert.Equal(t, "a", tree.Nodes()[0])
	assert.Equal(t, 4, tree.NodeCount())
}

func containsID(ids []string, id string) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}

	return false
}

func subset(a, b []string) bool {
	for _, x := range a {
		if !containsID(b, x) {
			return false
		}
	}

	return true
}
