// SPDX-License-Identifier: MIT

// Command simplicial builds, exports and catalogs the simplicial complexes of
// Mapper clusterings. See `simplicial --help`.
package main

import "github.com/katalvlaran/simplicial/internal/cli"

func main() {
	cli.Execute()
}
