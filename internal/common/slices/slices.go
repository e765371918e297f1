package slices

import (
	goslices "golang.org/x/exp/slices"
)

// Flatten merges a slice of slices into a single slice.
func Flatten[S ~[]E, E any](s []S) S {
	n := 0
	allNil := true
	for _, si := range s {
		n += len(si)
		allNil = allNil && si == nil
	}
	if allNil {
		return nil
	}
	rv := make(S, n)
	i := 0
	for _, si := range s {
		for _, e := range si {
			rv[i] = e
			i++
		}
	}
	return rv
}

// Unique returns a copy of s with duplicate elements removed, keeping only the first occurrence.
func Unique[S ~[]E, E comparable](s S) S {
	if s == nil {
		return nil
	}
	rv := make(S, 0)
	seen := make(map[E]bool)
	for _, v := range s {
		if !seen[v] {
			rv = append(rv, v)
			seen[v] = true
		}
	}
	return rv
}

// RemoveAt returns a copy of s without the element at index i. The order of the remaining elements is preserved.
func RemoveAt[S ~[]E, E any](s S, i int) S {
	rv := make(S, 0, len(s)-1)
	rv = append(rv, s[:i]...)
	return append(rv, s[i+1:]...)
}

// Clone returns a copy of s; nil stays nil.
func Clone[S ~[]E, E any](s S) S {
	return goslices.Clone(s)
}

// Duplicates returns, in order of first repetition, the elements that occur more than once in s.
func Duplicates[S ~[]E, E comparable](s S) S {
	var rv S
	count := make(map[E]int)
	for _, v := range s {
		count[v]++
		if count[v] == 2 {
			rv = append(rv, v)
		}
	}
	return rv
}
