package loader_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/simplicial/loader"
	"github.com/katalvlaran/simplicial/simplextree"
)

func ids(nodes []simplextree.Node[string, string]) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.ID
	}

	return out
}

func TestDecode_YAMLKeepsOrder(t *testing.T) {
	nodes, err := loader.Decode(strings.NewReader(`
zeta: [1, 2]
alpha: [2, 3]
mid: []
nil_node:
`))
	require.NoError(t, err)
	assert.Equal(t, []string{"zeta", "alpha", "mid", "nil_node"}, ids(nodes))
	assert.Equal(t, []string{"1", "2"}, nodes[0].Contents)
	assert.Empty(t, nodes[2].Contents)
	assert.Empty(t, nodes[3].Contents)
}

func TestDecode_JSON(t *testing.T) {
	nodes, err := loader.Decode(strings.NewReader(`{"b": [1, "1", 2], "a": ["x"]}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, ids(nodes))
	assert.Equal(t, []string{"1", "1", "2"}, nodes[0].Contents)
}

func TestDecode_KeplerMapperGraph(t *testing.T) {
	nodes, err := loader.Decode(strings.NewReader(`{
  "nodes": {"cube0_cluster0": [0, 1, 2], "cube1_cluster0": [2, 3]},
  "links": {"cube0_cluster0": ["cube1_cluster0"]},
  "meta_data": {"projection": "sum"}
}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"cube0_cluster0", "cube1_cluster0"}, ids(nodes))

	tree, err := simplextree.Build(nodes)
	require.NoError(t, err)
	got, ok := tree.Lookup("cube0_cluster0", "cube1_cluster0")
	require.True(t, ok)
	assert.True(t, got.Has("2"))
}

func TestDecode_NodesNamedNodes(t *testing.T) {
	// a node literally called "nodes" with a sequence value is a plain node
	nodes, err := loader.Decode(strings.NewReader("nodes: [1]\nother: [1]\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"nodes", "other"}, ids(nodes))
}

func TestDecode_Aliases(t *testing.T) {
	nodes, err := loader.Decode(strings.NewReader("a: &shared [1, 2]\nb: *shared\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2"}, nodes[1].Contents)
}

func TestDecode_DuplicateKeysReachBuild(t *testing.T) {
	nodes, err := loader.Decode(strings.NewReader("a: [1]\nb: [1]\na: [2]\n"))
	require.NoError(t, err)
	require.Len(t, nodes, 3)

	_, err = simplextree.Build(nodes)
	require.ErrorIs(t, err, simplextree.ErrInvalidInput)
}

func TestDecode_Empty(t *testing.T) {
	for _, doc := range []string{"", "~\n", "# only a comment\n"} {
		nodes, err := loader.Decode(strings.NewReader(doc))
		require.NoError(t, err, "%q", doc)
		assert.Empty(t, nodes)
	}
}

func TestDecode_Errors(t *testing.T) {
	cases := []struct {
		name string
		doc  string
		want error
	}{
		{"top-level sequence", "[1, 2]", loader.ErrMalformed},
		{"scalar contents", "a: 5", loader.ErrMalformed},
		{"mapping contents", "a: {x: 1}", loader.ErrMalformed},
		{"non-scalar key", "? [a]\n: [1]\n", loader.ErrMalformed},
		{"nested point", "a: [1, [2]]", simplextree.ErrInvalidInput},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := loader.Decode(strings.NewReader(tc.doc))
			require.ErrorIs(t, err, tc.want)
		})
	}

	_, err := loader.Decode(strings.NewReader("a: [1\n"))
	require.Error(t, err)
}

func TestDecodeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mapper.yaml")
	require.NoError(t, os.WriteFile(path, []byte("a: [1]\nb: [1]\n"), 0o600))

	nodes, err := loader.DecodeFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ids(nodes))

	_, err = loader.DecodeFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
