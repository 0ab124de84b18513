// SPDX-License-Identifier: MIT

package cli

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/simplicial/hypergraph"
	"github.com/katalvlaran/simplicial/loader"
	"github.com/katalvlaran/simplicial/metrics"
	"github.com/katalvlaran/simplicial/simplextree"
)

// buildFlags are the construction flags shared by build, incidence and save.
type buildFlags struct {
	maxDim      int
	workers     int
	metricsFile string
}

func (f *buildFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.maxDim, "max-dim", -1, "stop after simplices of this dimension (-1: no limit)")
	cmd.Flags().IntVar(&f.workers, "workers", 1, "goroutines scanning each construction level")
	cmd.Flags().StringVar(&f.metricsFile, "metrics-file", "", "write Prometheus metrics of the build to this textfile")
}

// viewFlags select which simplices are printed.
type viewFlags struct {
	maximal bool
	minDim  int
	format  string
}

func (f *viewFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.maximal, "maximal", false, "print maximal simplices only")
	cmd.Flags().IntVar(&f.minDim, "min-dim", 0, "skip simplices below this dimension")
	cmd.Flags().StringVarP(&f.format, "format", "o", formatAuto, "output format: auto, table, json or yaml")
}

func (f *viewFlags) options() []hypergraph.Option {
	opts := []hypergraph.Option{hypergraph.WithMinDimension(f.minDim)}
	if f.maximal {
		opts = append(opts, hypergraph.WithMaximalOnly())
	}

	return opts
}

func (a *app) newBuildCmd() *cobra.Command {
	var bf buildFlags
	var vf viewFlags
	cmd := &cobra.Command{
		Use:   "build <mapper-file>",
		Short: "Build and print the simplicial complex of a Mapper node file",
		Long: `Reads a YAML or JSON mapping of node → data points (or a KeplerMapper
graph), builds its simplex tree and prints every simplex with the data
points its nodes share. Node order in the file fixes the rank order.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if vf.minDim < 0 {
				return fmt.Errorf("--min-dim must be >= 0, got %d", vf.minDim)
			}
			tree, err := a.build(args[0], bf)
			if err != nil {
				return err
			}
			h, err := hypergraph.FromTree(tree, vf.options()...)
			if err != nil {
				return err
			}

			return render(cmd.OutOrStdout(), vf.format, newReport("", tree, h))
		},
	}
	bf.register(cmd)
	vf.register(cmd)

	return cmd
}

// build loads path and constructs its tree with the flags' options,
// recording metrics when requested.
func (a *app) build(path string, f buildFlags) (*simplextree.Tree[string, string], error) {
	if f.workers < 1 {
		return nil, fmt.Errorf("--workers must be >= 1, got %d", f.workers)
	}
	nodes, err := loader.DecodeFile(path)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("mapper file loaded", "path", path, "nodes", len(nodes))

	opts := []simplextree.Option{
		simplextree.WithWorkers(f.workers),
		simplextree.WithLogger(a.logger),
	}
	if f.maxDim >= 0 {
		opts = append(opts, simplextree.WithMaxDimension(f.maxDim))
	}

	var reg *prometheus.Registry
	var col *metrics.Collector
	if f.metricsFile != "" {
		reg = prometheus.NewRegistry()
		col = metrics.NewCollector(reg)
		opts = append(opts, simplextree.WithOnLevel(col.OnLevel))
	}

	start := time.Now()
	tree, err := simplextree.Build(nodes, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	elapsed := time.Since(start)
	a.logger.Info("simplex tree built", "simplices", tree.Len(), "max_dimension", tree.MaxDimension(), "elapsed", elapsed)

	if col != nil {
		col.Observe(tree, elapsed)
		if err = metrics.WriteTextfile(reg, f.metricsFile); err != nil {
			return nil, fmt.Errorf("write metrics: %w", err)
		}
	}

	return tree, nil
}
