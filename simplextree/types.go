// SPDX-License-Identifier: MIT

package simplextree

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/tidwall/btree"

	"github.com/katalvlaran/simplicial/contents"
)

// ErrInvalidInput is returned by Build when the input mapping cannot form a
// simplex tree. Every *InvalidInputError unwraps to it.
var ErrInvalidInput = errors.New("simplextree: invalid input")

// Sentinel errors reported by Verify.
var (
	// ErrClosureViolated indicates a simplex whose facet is missing from the tree.
	ErrClosureViolated = errors.New("simplextree: closure violated")

	// ErrContentsMismatch indicates a simplex whose contents differ from the
	// intersection of its members' contents.
	ErrContentsMismatch = errors.New("simplextree: contents mismatch")

	// ErrOrderViolated indicates a child whose key does not exceed its parent's.
	ErrOrderViolated = errors.New("simplextree: child key not increasing")
)

// InvalidInputError describes the first offending input entry.
type InvalidInputError struct {
	// Index is the position of the offending node in the input slice.
	Index int
	// Node is the offending node identifier.
	Node any
	// Reason says what is wrong with it.
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("simplextree: invalid input at node #%d (%v): %s", e.Index, e.Node, e.Reason)
}

// Unwrap lets errors.Is(err, ErrInvalidInput) match.
func (e *InvalidInputError) Unwrap() error { return ErrInvalidInput }

// Node is one Mapper node: an identifier and the data points clustered into it.
// Repeated data points are stored once.
type Node[K comparable, P comparable] struct {
	ID       K
	Contents []P
}

// Simplex is one simplex of the complex: its member node identifiers in rank
// order and the data points they all share.
//
// Contents is shared with the tree and must not be modified.
type Simplex[K comparable, P comparable] struct {
	Nodes    []K
	Contents contents.Set[P]
}

// Dimension returns n for an n-simplex (len(Nodes)-1).
func (s Simplex[K, P]) Dimension() int { return len(s.Nodes) - 1 }

// rootKey marks the root entity, which has no node identifier.
const rootKey = -1

// entity is one simplex-tree node stored in the arena.
type entity[P comparable] struct {
	key      int                  // rank of the last vertex; rootKey for the root
	parent   int                  // arena index of the parent; -1 for the root
	depth    int                  // number of vertices on the path (0 for the root)
	contents contents.Set[P]      // intersection defining this simplex
	children *btree.Map[int, int] // child rank → arena index; nil until the first child
}

// span is a half-open range of arena indices holding one dimension.
type span struct{ lo, hi int }

// Option configures Build.
type Option func(*Options)

// Options holds the resolved Build configuration.
type Options struct {
	// MaxDimension caps the dimension of built simplices; -1 means no cap.
	MaxDimension int

	// Workers is the number of goroutines scanning a level; <= 1 is sequential.
	Workers int

	// Logger receives per-level debug records.
	Logger *slog.Logger

	// OnLevel, if non-nil, is called after each non-empty level with its
	// dimension and the number of simplices it created.
	OnLevel func(dimension, created int)
}

// DefaultOptions returns Options with:
//   - no dimension cap
//   - sequential scanning
//   - a discarding logger
//   - no level hook
func DefaultOptions() Options {
	return Options{
		MaxDimension: -1,
		Workers:      1,
		Logger:       slog.New(slog.DiscardHandler),
	}
}

// WithMaxDimension limits construction to simplices of dimension <= d.
// Panics if d < 0.
func WithMaxDimension(d int) Option {
	if d < 0 {
		panic("simplextree: WithMaxDimension(d < 0)")
	}
	return func(o *Options) { o.MaxDimension = d }
}

// WithWorkers scans each level with n goroutines. Panics if n < 1.
func WithWorkers(n int) Option {
	if n < 1 {
		panic("simplextree: WithWorkers(n < 1)")
	}
	return func(o *Options) { o.Workers = n }
}

// WithLogger sets the logger used for construction diagnostics.
// A nil logger keeps the default.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithOnLevel installs fn as the per-level hook.
func WithOnLevel(fn func(dimension, created int)) Option {
	return func(o *Options) { o.OnLevel = fn }
}
