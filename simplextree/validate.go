// SPDX-License-Identifier: MIT

package simplextree

import (
	"fmt"
	"reflect"
)

// validate assigns ranks in input order and rejects inputs that cannot be
// hashed consistently (non-comparable dynamic values, NaN) or that repeat an
// identifier. It allocates nothing but the rank map.
func validate[K comparable, P comparable](nodes []Node[K, P]) (map[K]int, error) {
	checkIDs := mayPanicOnHash(reflect.TypeFor[K]())
	checkPoints := mayPanicOnHash(reflect.TypeFor[P]())

	rank := make(map[K]int, len(nodes))
	for i, n := range nodes {
		if checkIDs && !hashable(n.ID) {
			return nil, &InvalidInputError{Index: i, Node: n.ID, Reason: "identifier is not hashable"}
		}
		if selfUnequal(n.ID) {
			return nil, &InvalidInputError{Index: i, Node: n.ID, Reason: "identifier is not equal to itself (NaN)"}
		}
		if first, dup := rank[n.ID]; dup {
			return nil, &InvalidInputError{
				Index:  i,
				Node:   n.ID,
				Reason: fmt.Sprintf("duplicate identifier, first seen at #%d", first),
			}
		}
		rank[n.ID] = i

		for _, p := range n.Contents {
			if checkPoints && !hashable(p) {
				return nil, &InvalidInputError{
					Index:  i,
					Node:   n.ID,
					Reason: fmt.Sprintf("data point of type %T is not hashable", p),
				}
			}
			if selfUnequal(p) {
				return nil, &InvalidInputError{
					Index:  i,
					Node:   n.ID,
					Reason: fmt.Sprintf("data point %v is not equal to itself", p),
				}
			}
		}
	}

	return rank, nil
}

// mayPanicOnHash reports whether values of t are comparable at compile time
// but may still hold a non-comparable dynamic value (interfaces, possibly
// nested in structs or arrays).
func mayPanicOnHash(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Interface:
		return true
	case reflect.Array:
		return mayPanicOnHash(t.Elem())
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if mayPanicOnHash(t.Field(i).Type) {
				return true
			}
		}
	}

	return false
}

// hashable reports whether v can be used as a map key without panicking.
func hashable(v any) bool {
	rv := reflect.ValueOf(v)

	return !rv.IsValid() || rv.Comparable()
}

// selfUnequal reports whether v != v: NaN, or a struct, array or interface
// holding one. Such a value never matches itself as a map key. v must be
// hashable.
func selfUnequal[T comparable](v T) bool {
	return v != v
}
