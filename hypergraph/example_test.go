package hypergraph_test

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/simplicial/hypergraph"
	"github.com/katalvlaran/simplicial/simplextree"
)

// ExampleFromTree exports the maximal simplices of a small Mapper complex as
// hyperedges and prints the incidence matrix.
func ExampleFromTree() {
	tree, _ := simplextree.Build([]simplextree.Node[string, int]{
		{ID: "a", Contents: []int{1, 2}},
		{ID: "b", Contents: []int{1, 2}},
		{ID: "c", Contents: []int{2, 3}},
		{ID: "d", Contents: []int{3}},
	})

	h, _ := hypergraph.FromTree(tree, hypergraph.WithMaximalOnly())
	for _, e := range h.Edges() {
		fmt.Println(e.ID, e.Nodes)
	}

	inc, _ := h.IncidenceMatrix()
	rows, _ := inc.Dims()
	for i := 0; i < rows; i++ {
		fmt.Println(h.Vertices()[i], mat.Row(nil, i, inc))
	}

	// Output:
	// 1 [a b c]
	// 2 [c d]
	// a [1 0]
	// b [1 0]
	// c [1 1]
	// d [0 1]
}
