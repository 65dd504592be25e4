// Package io provides word channels that feed and drain an Intcode
// program: decimal text (Tape), ASCII text (Ascii), a bounded buffer
// (Temporary), fixed values (Rom), and concatenations of these (Chain).
package io

import (
	"iter"
)

// Channel defines the interface for all word channels.
type Channel interface {
	// Rewind resets the channel to its initial state.
	Rewind()
	// Receive returns an iterator that yields words from the channel.
	Receive() iter.Seq[int64]
	// Send writes a single word to the channel.
	Send(value int64) error
}

// ErrorChannel is a Channel whose input can stop on an error rather than
// at its end.
type ErrorChannel interface {
	Channel
	// Err returns why the last Receive stopped early, or nil.
	Err() error
}

// ReceiveErr returns why the last Receive of ch stopped early, or nil if
// ch does not report errors.
func ReceiveErr(ch Channel) error {
	ec, ok := ch.(ErrorChannel)
	if !ok {
		return nil
	}
	return ec.Err()
}
