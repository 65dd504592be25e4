package io

import (
	"bufio"
	"fmt"
	"io"
	"iter"
)

const (
	ASCII_MAX = 127 // Largest value sent as a character.
)

// Ascii provides character I/O for programs that speak ASCII.
// Each byte of Input is a word; sent words up to ASCII_MAX are written
// to Output as bytes, and any other word as a decimal line.
type Ascii struct {
	Input  io.Reader
	Output io.Writer

	err    error
	reader *bufio.Reader
	source io.Reader
}

var _ Channel = (*Ascii)(nil)

// Rewind is not possible on a character stream.
func (ac *Ascii) Rewind() {
}

// Err returns why the last Receive stopped early, or nil at end of input.
func (ac *Ascii) Err() error {
	return ac.err
}

// Receive returns an iterator that yields the bytes of the input stream.
func (ac *Ascii) Receive() iter.Seq[int64] {
	return func(yield func(value int64) bool) {
		ac.err = nil
		if ac.Input == nil {
			return
		}
		if ac.reader == nil || ac.source != ac.Input {
			ac.reader = bufio.NewReader(ac.Input)
			ac.source = ac.Input
		}

		for {
			ch, err := ac.reader.ReadByte()
			if err != nil {
				if err != io.EOF {
					ac.err = err
				}
				return
			}
			if !yield(int64(ch)) {
				return
			}
		}
	}
}

// Send writes a word to the output stream.
func (ac *Ascii) Send(value int64) (err error) {
	if ac.Output == nil {
		err = ErrChannelFull
		return
	}

	if value >= 0 && value <= ASCII_MAX {
		_, err = ac.Output.Write([]byte{byte(value)})
		return
	}

	_, err = fmt.Fprintf(ac.Output, "%d\n", value)
	return
}
