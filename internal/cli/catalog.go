// SPDX-License-Identifier: MIT

package cli

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/simplicial/hypergraph"
	"github.com/katalvlaran/simplicial/store"
)

// catalog is the printed form of `list`.
type catalog []store.Info

func (c catalog) table(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCREATED\tNODES\tSIMPLICES\tMAX DIM")
	for _, info := range c {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%d\n",
			info.ID, info.Name, info.CreatedAt.Local().Format(time.DateTime),
			info.NodeCount, info.SimplexCount, info.MaxDimension)
	}

	return tw.Flush()
}

func (a *app) openStore() (*store.Store, error) {
	return store.Open(a.dbPath, store.WithLogger(a.logger))
}

func (a *app) newSaveCmd() *cobra.Command {
	var bf buildFlags
	var name string
	cmd := &cobra.Command{
		Use:   "save <mapper-file>",
		Short: "Build a complex and save it to the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, err := a.build(args[0], bf)
			if err != nil {
				return err
			}
			if name == "" {
				name = args[0]
			}

			s, err := a.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			id, err := s.Save(cmd.Context(), name, tree)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)

			return nil
		},
	}
	bf.register(cmd)
	cmd.Flags().StringVar(&name, "name", "", "catalog name (default: the file path)")

	return cmd
}

func (a *app) newListCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved complexes, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			infos, err := s.List(cmd.Context())
			if err != nil {
				return err
			}
			if infos == nil {
				infos = []store.Info{}
			}

			return render(cmd.OutOrStdout(), format, catalog(infos))
		},
	}
	cmd.Flags().StringVarP(&format, "format", "o", formatAuto, "output format: auto, table, json or yaml")

	return cmd
}

func (a *app) newShowCmd() *cobra.Command {
	var vf viewFlags
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Print a saved complex",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if vf.minDim < 0 {
				return fmt.Errorf("--min-dim must be >= 0, got %d", vf.minDim)
			}
			s, err := a.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			info, tree, err := s.Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			h, err := hypergraph.FromTree(tree, vf.options()...)
			if err != nil {
				return err
			}

			return render(cmd.OutOrStdout(), vf.format, newReport(info.ID, tree, h))
		},
	}
	vf.register(cmd)

	return cmd
}

func (a *app) newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a saved complex",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			return s.Delete(cmd.Context(), args[0])
		},
	}
}
