// SPDX-License-Identifier: MIT

package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/simplicial/hypergraph"
)

// incidence is the printed form of a hypergraph incidence matrix.
type incidence struct {
	Vertices []string    `json:"vertices" yaml:"vertices,flow"`
	Edges    [][]string  `json:"edges" yaml:"edges"`
	Matrix   [][]float64 `json:"matrix" yaml:"matrix"`
}

func newIncidence(h *hypergraph.Hypergraph[string, string], m *mat.Dense) incidence {
	out := incidence{Vertices: h.Vertices()}
	for _, e := range h.Edges() {
		out.Edges = append(out.Edges, e.Nodes)
	}
	rows, _ := m.Dims()
	out.Matrix = make([][]float64, rows)
	for i := range out.Matrix {
		out.Matrix[i] = mat.Row(nil, i, m)
	}

	return out
}

func (in incidence) table(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprint(tw, "NODE")
	for i := range in.Edges {
		fmt.Fprintf(tw, "\te%d", i+1)
	}
	fmt.Fprintln(tw)
	for i, v := range in.Vertices {
		fmt.Fprint(tw, v)
		for _, x := range in.Matrix[i] {
			fmt.Fprintf(tw, "\t%g", x)
		}
		fmt.Fprintln(tw)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w)
	for i, e := range in.Edges {
		fmt.Fprintf(w, "e%d = {%s}\n", i+1, strings.Join(e, ", "))
	}

	return nil
}

func (a *app) newIncidenceCmd() *cobra.Command {
	var bf buildFlags
	var maximal, weighted bool
	var format string
	cmd := &cobra.Command{
		Use:   "incidence <mapper-file>",
		Short: "Print the node × hyperedge incidence matrix of a Mapper complex",
		Long: `Builds the complex and prints its hypergraph incidence matrix: one row
per node, one column per simplex of dimension >= 1 (or per maximal
simplex with --maximal). With --weighted each entry is the number of
data points on the hyperedge instead of 1.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, err := a.build(args[0], bf)
			if err != nil {
				return err
			}
			var opts []hypergraph.Option
			if maximal {
				opts = append(opts, hypergraph.WithMaximalOnly())
			}
			h, err := hypergraph.FromTree(tree, opts...)
			if err != nil {
				return err
			}

			m, err := h.IncidenceMatrix()
			if weighted {
				m, err = h.WeightedIncidenceMatrix()
			}
			if err != nil {
				return err
			}

			return render(cmd.OutOrStdout(), format, newIncidence(h, m))
		},
	}
	bf.register(cmd)
	cmd.Flags().BoolVar(&maximal, "maximal", false, "one column per maximal simplex")
	cmd.Flags().BoolVar(&weighted, "weighted", false, "weight entries by the hyperedge's data-point count")
	cmd.Flags().StringVarP(&format, "format", "o", formatAuto, "output format: auto, table, json or yaml")

	return cmd
}
