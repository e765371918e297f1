package slices

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlatten(t *testing.T) {
	assert.Equal(t, []int{1, 2, 3, 4}, Flatten([][]int{{1}, nil, {2, 3}, {4}}))
	assert.Equal(t, []int{}, Flatten([][]int{{}, nil}))
	assert.Nil(t, Flatten[[]int](nil))
	assert.Nil(t, Flatten([][]int{nil, nil}))
}

func TestUnique(t *testing.T) {
	assert.Equal(t, []string{"b", "a", "c"}, Unique([]string{"b", "a", "b", "c", "a"}))
	assert.Nil(t, Unique[[]string](nil))
}

func TestRemoveAt(t *testing.T) {
	s := []string{"a", "b", "c"}
	assert.Equal(t, []string{"a", "c"}, RemoveAt(s, 1))
	assert.Equal(t, []string{"b", "c"}, RemoveAt(s, 0))
	assert.Equal(t, []string{"a", "b"}, RemoveAt(s, 2))
	assert.Equal(t, []string{"a", "b", "c"}, s)
}

func TestDuplicates(t *testing.T) {
	assert.Equal(t, []string{"b", "a"}, Duplicates([]string{"a", "b", "b", "a", "b"}))
	assert.Nil(t, Duplicates([]string{"a", "b"}))
}
