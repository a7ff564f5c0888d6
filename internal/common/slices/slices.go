package slices

import (
	"fmt"

	goslices "golang.org/x/exp/slices"
)

// Chunk splits s into consecutive slices of maxLen elements, the last of which may be shorter.
// Ordering is preserved, such that element i of s ends up in chunk i/maxLen and concatenating
// the chunks gives back s. An empty s yields no chunks.
func Chunk[S ~[]E, E any](s S, maxLen int) []S {
	if maxLen < 1 {
		panic(fmt.Sprintf("maxLen is %d but must be at least 1", maxLen))
	}
	rv := make([]S, 0, (len(s)+maxLen-1)/maxLen)
	for i := 0; i < len(s); i += maxLen {
		end := i + maxLen
		if end > len(s) {
			end = len(s)
		}
		rv = append(rv, goslices.Clone(s[i:end]))
	}
	return rv
}

// Map returns a new slice holding fn applied to every element of s.
func Map[S ~[]E, E any, V any](s S, fn func(E) V) []V {
	rv := make([]V, len(s))
	for i, e := range s {
		rv[i] = fn(e)
	}
	return rv
}
