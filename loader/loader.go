// SPDX-License-Identifier: MIT

// Package loader reads the node → contents mapping produced by a Mapper run.
//
// Accepted documents (YAML, or JSON since JSON is valid YAML):
//
//	cube0_cluster0: [1, 2, 3]      # plain mapping: node → data points
//	cube0_cluster1: [3, 4]
//
//	{"nodes": {"cube0_cluster0": [1, 2, 3], ...}, "links": {...}}
//	                               # KeplerMapper graph: the "nodes" mapping is used
//
// Nodes are returned in document order, which becomes their rank. The
// document is decoded into yaml.Node rather than a Go map so that order is
// kept and repeated keys reach simplextree.Build, which rejects them.
// Data points are kept as their scalar text, so 1 and "1" are the same point.
package loader

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/simplicial/simplextree"
)

// ErrMalformed indicates a document that is not a mapping of node → sequence.
var ErrMalformed = errors.New("loader: malformed mapping")

// keplerNodesKey is the KeplerMapper graph key holding the node mapping.
const keplerNodesKey = "nodes"

// Decode reads one document from r. An empty document yields no nodes.
// A data point that is not a scalar is reported as a
// *simplextree.InvalidInputError, since it cannot be hashed.
func Decode(r io.Reader) ([]simplextree.Node[string, string], error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("loader: decode: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, nil
	}

	root := resolve(doc.Content[0])
	if isNull(root) {
		return nil, nil
	}
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: top level is not a mapping: %w", root.Line, ErrMalformed)
	}
	if nodes := keplerNodes(root); nodes != nil {
		root = nodes
	}

	out := make([]simplextree.Node[string, string], 0, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, val := resolve(root.Content[i]), resolve(root.Content[i+1])
		if key.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("line %d: node key is not a scalar: %w", key.Line, ErrMalformed)
		}
		n := simplextree.Node[string, string]{ID: key.Value}

		switch {
		case isNull(val):
			// a node without data points is still a 0-simplex
		case val.Kind == yaml.SequenceNode:
			n.Contents = make([]string, 0, len(val.Content))
			for _, item := range val.Content {
				item = resolve(item)
				if item.Kind != yaml.ScalarNode {
					return nil, &simplextree.InvalidInputError{
						Index:  len(out),
						Node:   key.Value,
						Reason: fmt.Sprintf("line %d: data point is not a scalar", item.Line),
					}
				}
				n.Contents = append(n.Contents, item.Value)
			}
		default:
			return nil, fmt.Errorf("line %d: node %q: contents are not a sequence: %w", val.Line, key.Value, ErrMalformed)
		}
		out = append(out, n)
	}

	return out, nil
}

// DecodeFile opens path and decodes it.
func DecodeFile(path string) ([]simplextree.Node[string, string], error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("loader: %w", err)
	}
	defer f.Close()

	nodes, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return nodes, nil
}

// keplerNodes returns the value of a top-level "nodes" key when it is itself
// a mapping, as in KeplerMapper graph output.
func keplerNodes(root *yaml.Node) *yaml.Node {
	for i := 0; i+1 < len(root.Content); i += 2 {
		if k := root.Content[i]; k.Kind == yaml.ScalarNode && k.Value == keplerNodesKey {
			if v := resolve(root.Content[i+1]); v.Kind == yaml.MappingNode {
				return v
			}
		}
	}

	return nil
}

// resolve follows aliases to their anchored node.
func resolve(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}

	return n
}

func isNull(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.Tag == "!!null"
}
