package maps

import (
	"golang.org/x/exp/constraints"
	goMaps "golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// MapValues maps the values of m into valueFunc(v).
func MapValues[M ~map[K]VA, K comparable, VA any, VB any](m M, valueFunc func(VA) VB) map[K]VB {
	rv := make(map[K]VB, len(m))
	for k, v := range m {
		rv[k] = valueFunc(v)
	}
	return rv
}

// SortedKeys returns the keys of m in ascending order.
func SortedKeys[M ~map[K]V, K constraints.Ordered, V any](m M) []K {
	keys := goMaps.Keys(m)
	slices.Sort(keys)
	return keys
}

// Clone returns a shallow copy of m; nil stays nil.
func Clone[M ~map[K]V, K comparable, V any](m M) M {
	return goMaps.Clone(m)
}
