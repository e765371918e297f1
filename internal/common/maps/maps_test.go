package maps

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapValues(t *testing.T) {
	m := map[string][]int{
		"foo":    {1, 2, 3},
		"foobar": {10, 20, 30},
	}
	actual := MapValues(
		m,
		func(v []int) int {
			rv := 0
			for _, vi := range v {
				rv += vi
			}
			return rv
		},
	)
	expected := map[string]int{
		"foo":    6,
		"foobar": 60,
	}
	assert.Equal(t, expected, actual)
}

func TestSortedKeys(t *testing.T) {
	m := map[string]int{
		"source.fileNames":              1,
		"outputs.out.fileName":          2,
		"physics.filters.mix.fileNames": 3,
	}
	assert.Equal(t, []string{"outputs.out.fileName", "physics.filters.mix.fileNames", "source.fileNames"}, SortedKeys(m))
	assert.Empty(t, SortedKeys(map[string]int{}))
}

func TestClone(t *testing.T) {
	m := map[string]int{"a": 1}
	c := Clone(m)
	c["b"] = 2
	assert.Equal(t, map[string]int{"a": 1}, m)
	assert.Nil(t, Clone[map[string]int](nil))
}
