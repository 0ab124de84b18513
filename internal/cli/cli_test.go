package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/simplicial/simplextree"
	"github.com/katalvlaran/simplicial/store"
)

// mapperFile is a full triangle (a,b,c), the edge (c,d) and an empty node.
const mapperFile = `
a: [1, 2]
b: [1, 2]
c: [2, 3]
d: [3]
e: []
`

// run executes the CLI with args and returns stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()

	return out.String(), err
}

func writeMapper(t *testing.T, doc string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mapper.yaml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	return path
}

func TestBuild_JSON(t *testing.T) {
	out, err := run(t, "build", writeMapper(t, mapperFile), "-o", "json")
	require.NoError(t, err)

	var r report
	require.NoError(t, json.Unmarshal([]byte(out), &r))
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, r.Nodes)
	assert.Equal(t, 2, r.MaxDimension)
	assert.Equal(t, []int{5, 4, 1}, r.FVector)
	require.Len(t, r.Simplices, 10)
	assert.Equal(t, simplexRecord{ID: 1, Dimension: 0, Nodes: []string{"a"}, Contents: []string{"1", "2"}}, r.Simplices[0])
	assert.Equal(t, []string{"a", "b", "c"}, r.Simplices[2].Nodes)
	assert.Equal(t, []string{"2"}, r.Simplices[2].Contents)
}

func TestBuild_AutoFormatIsJSONWhenPiped(t *testing.T) {
	out, err := run(t, "build", writeMapper(t, mapperFile))
	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(out)))
}

func TestBuild_MaximalYAML(t *testing.T) {
	out, err := run(t, "build", writeMapper(t, mapperFile), "--maximal", "-o", "yaml")
	require.NoError(t, err)

	var r report
	require.NoError(t, yaml.Unmarshal([]byte(out), &r))
	var got [][]string
	for _, s := range r.Simplices {
		got = append(got, s.Nodes)
	}
	assert.Equal(t, [][]string{{"a", "b", "c"}, {"c", "d"}, {"e"}}, got)
}

func TestBuild_TableAndFilters(t *testing.T) {
	out, err := run(t, "build", writeMapper(t, mapperFile), "--min-dim", "1", "--max-dim", "1", "--workers", "2", "-o", "table")
	require.NoError(t, err)
	assert.Contains(t, out, "max dimension:  1")
	assert.Contains(t, out, "f-vector:       [5 4]")
	assert.Contains(t, out, "a,b")
	assert.NotContains(t, out, "a,b,c")
	assert.NotRegexp(t, `(?m)^\d+ +0 `, out)
}

func TestBuild_Errors(t *testing.T) {
	_, err := run(t, "build", writeMapper(t, "a: [1]\na: [2]\n"))
	assert.ErrorIs(t, err, simplextree.ErrInvalidInput)

	_, err = run(t, "build", writeMapper(t, mapperFile), "-o", "xml")
	assert.ErrorContains(t, err, "unknown format")

	_, err = run(t, "build", writeMapper(t, mapperFile), "--workers", "0")
	assert.ErrorContains(t, err, "--workers")

	_, err = run(t, "build", writeMapper(t, mapperFile), "--min-dim", "-2")
	assert.ErrorContains(t, err, "--min-dim")

	_, err = run(t, "build", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = run(t, "build")
	assert.Error(t, err)
}

func TestBuild_MetricsFile(t *testing.T) {
	prom := filepath.Join(t.TempDir(), "build.prom")
	_, err := run(t, "build", writeMapper(t, mapperFile), "--metrics-file", prom, "-o", "json")
	require.NoError(t, err)

	raw, err := os.ReadFile(prom)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "simplicial_builds_total 1")
	assert.Contains(t, string(raw), "simplicial_max_dimension 2")
}

func TestIncidence(t *testing.T) {
	path := writeMapper(t, mapperFile)

	out, err := run(t, "incidence", path, "--maximal", "-o", "json")
	require.NoError(t, err)
	var in incidence
	require.NoError(t, json.Unmarshal([]byte(out), &in))
	assert.Equal(t, [][]string{{"a", "b", "c"}, {"c", "d"}, {"e"}}, in.Edges)
	assert.Equal(t, []float64{1, 1, 0}, in.Matrix[2]) // c

	out, err = run(t, "incidence", path, "--maximal", "--weighted", "-o", "table")
	require.NoError(t, err)
	assert.Contains(t, out, "e1 = {a, b, c}")
	assert.Contains(t, out, "NODE")
}

func TestCatalog_SaveListShowDelete(t *testing.T) {
	db := filepath.Join(t.TempDir(), "catalog.db")
	path := writeMapper(t, mapperFile)

	out, err := run(t, "--db", db, "save", path, "--name", "triangle")
	require.NoError(t, err)
	id := strings.TrimSpace(out)
	require.NotEmpty(t, id)

	out, err = run(t, "--db", db, "list", "-o", "json")
	require.NoError(t, err)
	var infos []store.Info
	require.NoError(t, json.Unmarshal([]byte(out), &infos))
	require.Len(t, infos, 1)
	assert.Equal(t, "triangle", infos[0].Name)
	assert.Equal(t, 10, infos[0].SimplexCount)

	out, err = run(t, "--db", db, "list", "-o", "table")
	require.NoError(t, err)
	assert.Contains(t, out, "triangle")

	out, err = run(t, "--db", db, "show", id, "--maximal", "-o", "json")
	require.NoError(t, err)
	var r report
	require.NoError(t, json.Unmarshal([]byte(out), &r))
	assert.Equal(t, id, r.ID)
	require.Len(t, r.Simplices, 3)
	assert.Equal(t, []string{"a", "b", "c"}, r.Simplices[0].Nodes)

	_, err = run(t, "--db", db, "delete", id)
	require.NoError(t, err)
	_, err = run(t, "--db", db, "show", id)
	assert.ErrorIs(t, err, store.ErrNotFound)

	out, err = run(t, "--db", db, "list", "-o", "json")
	require.NoError(t, err)
	assert.JSONEq(t, "[]", out)
}

func TestVerboseLogsToStderr(t *testing.T) {
	var out, errOut bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs([]string{"-v", "build", writeMapper(t, mapperFile), "-o", "json"})
	require.NoError(t, root.Execute())

	assert.Contains(t, errOut.String(), "simplextree: level built")
	assert.True(t, json.Valid(out.Bytes()))
}

func TestBuild_NumericPointsSortNumerically(t *testing.T) {
	out, err := run(t, "build", writeMapper(t, "a: [10, 2, 1]\nb: [2, 10]\n"), "-o", "json")
	require.NoError(t, err)

	var r report
	require.NoError(t, json.Unmarshal([]byte(out), &r))
	require.Len(t, r.Simplices, 3)
	assert.Equal(t, []string{"1", "2", "10"}, r.Simplices[0].Contents)
	assert.Equal(t, []string{"2", "10"}, r.Simplices[1].Contents)
}
