// SPDX-License-Identifier: MIT

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/simplicial/contents"
	"github.com/katalvlaran/simplicial/hypergraph"
	"github.com/katalvlaran/simplicial/simplextree"
)

// Output formats accepted by --format.
const (
	formatAuto  = "auto"
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

// tabler is implemented by every value the CLI prints.
type tabler interface {
	table(w io.Writer) error
}

// render writes v in the requested format. auto picks a table on a terminal
// and JSON otherwise, so piped output stays machine-readable.
func render(w io.Writer, format string, v tabler) error {
	if format == formatAuto {
		format = formatJSON
		if isTerminal(w) {
			format = formatTable
		}
	}

	switch format {
	case formatTable:
		return v.table(w)
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q (want auto, table, json or yaml)", format)
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)

	return ok && term.IsTerminal(int(f.Fd()))
}

// simplexRecord is one printed simplex.
type simplexRecord struct {
	ID        int      `json:"id" yaml:"id"`
	Dimension int      `json:"dimension" yaml:"dimension"`
	Nodes     []string `json:"nodes" yaml:"nodes,flow"`
	Contents  []string `json:"contents" yaml:"contents,flow"`
}

// report is the printed form of a complex.
type report struct {
	ID           string          `json:"id,omitempty" yaml:"id,omitempty"`
	Nodes        []string        `json:"nodes" yaml:"nodes,flow"`
	MaxDimension int             `json:"max_dimension" yaml:"max_dimension"`
	FVector      []int           `json:"f_vector" yaml:"f_vector,flow"`
	Simplices    []simplexRecord `json:"simplices" yaml:"simplices"`
}

func newReport(id string, tree *simplextree.Tree[string, string], h *hypergraph.Hypergraph[string, string]) report {
	r := report{
		ID:           id,
		Nodes:        tree.Nodes(),
		MaxDimension: tree.MaxDimension(),
		FVector:      tree.FVector(),
		Simplices:    make([]simplexRecord, 0, h.Len()),
	}
	for _, e := range h.Edges() {
		r.Simplices = append(r.Simplices, simplexRecord{
			ID:        e.ID,
			Dimension: len(e.Nodes) - 1,
			Nodes:     e.Nodes,
			Contents:  contents.Natural(e.Contents),
		})
	}

	return r
}

func (r report) table(w io.Writer) error {
	if r.ID != "" {
		fmt.Fprintf(w, "complex:        %s\n", r.ID)
	}
	fmt.Fprintf(w, "nodes:          %d\n", len(r.Nodes))
	fmt.Fprintf(w, "max dimension:  %d\n", r.MaxDimension)
	fmt.Fprintf(w, "f-vector:       %v\n\n", r.FVector)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDIM\tNODES\tCONTENTS")
	for _, s := range r.Simplices {
		fmt.Fprintf(tw, "%d\t%d\t%s\t%s\n", s.ID, s.Dimension, strings.Join(s.Nodes, ","), strings.Join(s.Contents, ","))
	}

	return tw.Flush()
}
