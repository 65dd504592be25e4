package io

import (
	"iter"
)

// Rom is a read-only list of words, such as the phase setting of an
// amplifier.
type Rom struct {
	Data []int64

	index int
}

var _ Channel = (*Rom)(nil)

// Rewind restarts reading from the first word.
func (rc *Rom) Rewind() {
	rc.index = 0
}

// Receive yields the words not yet received since the last Rewind.
func (rc *Rom) Receive() iter.Seq[int64] {
	return func(yield func(value int64) bool) {
		for rc.index < len(rc.Data) {
			value := rc.Data[rc.index]
			rc.index++
			if !yield(value) {
				return
			}
		}
	}
}

func (rc *Rom) Send(value int64) error {
	return ErrChannelFull
}
