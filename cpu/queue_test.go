package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueue(t *testing.T) {
	assert := assert.New(t)

	q := &Queue{}
	assert.True(q.Empty())

	_, ok := q.Pop()
	assert.False(ok)

	q.Push(1, 2)
	q.Push(3)
	assert.Equal(3, q.Len())

	value, ok := q.Peek()
	assert.True(ok)
	assert.Equal(int64(1), value)

	for _, expected := range []int64{1, 2} {
		value, ok = q.Pop()
		assert.True(ok)
		assert.Equal(expected, value)
	}

	q.Push(4)
	assert.Equal([]int64{3, 4}, q.Drain())
	assert.True(q.Empty())

	q.Push(5)
	q.Reset()
	assert.True(q.Empty())
}
