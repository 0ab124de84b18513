// SPDX-License-Identifier: MIT

// Package cli implements the simplicial command line: build the simplex tree
// of a Mapper node file, export it, and keep built complexes in a local
// SQLite catalog.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// app holds state shared by every subcommand of one invocation.
type app struct {
	verbose bool
	dbPath  string
	logger  *slog.Logger
}

// NewRootCmd returns a fresh command tree. Each call has its own flag state.
func NewRootCmd() *cobra.Command {
	a := &app{logger: slog.New(slog.DiscardHandler)}

	root := &cobra.Command{
		Use:           "simplicial",
		Short:         "Simplicial complexes of Mapper clusterings",
		SilenceUsage:  true, // don't print usage on operational errors
		SilenceErrors: true, // Execute prints the error once
		Long: `simplicial computes every simplex generated by a Mapper node file
(node → data points): a set of nodes spans a simplex when they all share
at least one data point. Results can be printed, exported as a hypergraph,
or saved to a local catalog.`,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := slog.LevelWarn
			if a.verbose {
				level = slog.LevelDebug
			}
			a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
		},
	}
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log construction progress to stderr")
	root.PersistentFlags().StringVar(&a.dbPath, "db", "simplicial.db", "catalog database for save/list/show/delete")

	root.AddCommand(
		a.newBuildCmd(),
		a.newIncidenceCmd(),
		a.newSaveCmd(),
		a.newListCmd(),
		a.newShowCmd(),
		a.newDeleteCmd(),
	)

	return root
}

// Execute is called by main.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
