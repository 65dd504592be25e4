package io

import (
	"errors"

	"github.com/ezrec/intcode/translate"
)

var f = translate.From

var (
	// Channel errors
	ErrChannelFull = errors.New(f("channel full"))
)

// ErrTapeWord indicates text on a tape that is not a decimal word.
type ErrTapeWord struct {
	Token string
	Err   error
}

func (err *ErrTapeWord) Error() string {
	return f("tape word '%v' is not an integer", err.Token)
}

func (err *ErrTapeWord) Unwrap() error {
	return err.Err
}
