package io

import (
	"iter"
	"slices"
)

// SendAll sends each value to the channel, stopping at the first error.
func SendAll(ch Channel, values ...int64) (err error) {
	for _, value := range values {
		err = ch.Send(value)
		if err != nil {
			return
		}
	}
	return
}

// ReceiveOne takes a single word from the channel.
func ReceiveOne(ch Channel) (value int64, ok bool) {
	ch.Receive()(func(v int64) bool {
		value, ok = v, true
		return false
	})
	return
}

// ReceiveAll drains the channel into a slice.
func ReceiveAll(ch Channel) []int64 {
	return slices.Collect(ch.Receive())
}

// ReceiveAsString returns an iterator that yields the values of the
// channel as runes.
func ReceiveAsString(ch Channel) iter.Seq[rune] {
	return func(yield func(value rune) bool) {
		for value := range ch.Receive() {
			if !yield(rune(value)) {
				return
			}
		}
	}
}
