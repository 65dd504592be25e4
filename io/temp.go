package io

import (
	"iter"
)

// Temporary implements a circular buffer for temporary word storage.
// It operates as a FIFO queue with a fixed capacity and separate read/write positions.
type Temporary struct {
	Capacity int  // Capacity in words.
	Grow     bool // If set, a full buffer doubles its capacity instead of failing.

	ReadIndex  int
	WriteIndex int
	Size       int
	Data       []int64
}

var _ Channel = (*Temporary)(nil)

// Rewind resets the temporary storage to empty, resetting indices and
// reinitializing the data buffer.
func (temp *Temporary) Rewind() {
	temp.ReadIndex = 0
	temp.WriteIndex = 0
	temp.Size = 0
	temp.Data = make([]int64, temp.Capacity)
}

// Receive returns an iterator that yields words from the buffer until empty.
// The buffer wraps around at the capacity boundary.
func (temp *Temporary) Receive() iter.Seq[int64] {
	return func(yield func(value int64) bool) {
		for temp.Size > 0 {
			value := temp.Data[temp.ReadIndex]
			temp.ReadIndex++
			if temp.ReadIndex == temp.Capacity {
				temp.ReadIndex = 0
			}
			temp.Size--
			if !yield(value) {
				return
			}
		}
	}
}

// grow doubles the capacity, keeping the buffered words in order.
func (temp *Temporary) grow() {
	capacity := max(2*temp.Capacity, 1)
	data := make([]int64, 0, capacity)
	for n := range temp.Size {
		data = append(data, temp.Data[(temp.ReadIndex+n)%temp.Capacity])
	}

	temp.Capacity = capacity
	temp.Data = data[:capacity]
	temp.ReadIndex = 0
	temp.WriteIndex = temp.Size
}

// Send writes a word to the buffer at the current write position.
// Returns ErrChannelFull if the buffer has reached capacity and Grow is
// not set.
func (temp *Temporary) Send(value int64) (err error) {
	if len(temp.Data) != temp.Capacity {
		temp.Rewind()
	}

	if temp.Size >= temp.Capacity {
		if !temp.Grow {
			err = ErrChannelFull
			return
		}
		temp.grow()
	}

	temp.Data[temp.WriteIndex] = value

	temp.WriteIndex++
	if temp.WriteIndex == temp.Capacity {
		temp.WriteIndex = 0
	}
	temp.Size++

	return
}
