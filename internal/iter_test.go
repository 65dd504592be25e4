package internal

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIterSeqConcat(t *testing.T) {
	assert := assert.New(t)

	seq := IterSeqConcat(slices.Values([]int{1, 2}), slices.Values([]int{}), slices.Values([]int{3}))
	assert.Equal([]int{1, 2, 3}, slices.Collect(seq))

	var first []int
	for val := range seq {
		first = append(first, val)
		if val == 2 {
			break
		}
	}
	assert.Equal([]int{1, 2}, first)

	assert.Empty(slices.Collect(IterSeqConcat[int]()))
}
