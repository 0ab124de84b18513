package contents_test

import (
	"fmt"

	"github.com/katalvlaran/simplicial/contents"
)

// ExampleIntersect intersects the data points of two Mapper nodes.
func ExampleIntersect() {
	a := contents.Of(1, 2, 3)
	b := contents.Of(2, 3, 4)

	edge := contents.Intersect(a, b)
	fmt.Println(contents.Sorted(edge))
	fmt.Println(contents.Intersect(a, contents.Of(9)).Empty())

	// Output:
	// [2 3]
	// true
}
