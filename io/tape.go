package io

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"strconv"
	"unicode"
	"unicode/utf8"
)

// Tape provides sequential decimal word I/O.
// It reads whitespace or comma separated integers from Input, and writes
// each sent word on its own line to Output.
type Tape struct {
	Input  io.Reader
	Output io.Writer

	err     error
	scanner *bufio.Scanner
	source  io.Reader
}

var _ Channel = (*Tape)(nil)

func isSeparator(r rune) bool {
	return r == ',' || unicode.IsSpace(r)
}

// scanWords is a bufio.SplitFunc for separator delimited words.
func scanWords(data []byte, atEOF bool) (advance int, token []byte, err error) {
	start := 0
	for start < len(data) {
		r, width := utf8.DecodeRune(data[start:])
		if !isSeparator(r) {
			break
		}
		start += width
	}

	for n := start; n < len(data); {
		r, width := utf8.DecodeRune(data[n:])
		if isSeparator(r) {
			return n + width, data[start:n], nil
		}
		n += width
	}

	if atEOF && len(data) > start {
		return len(data), data[start:], nil
	}

	return start, nil, nil
}

// Rewind is not possible on a tape.
func (tc *Tape) Rewind() {
}

// Err returns why the last Receive stopped early, or nil at end of input.
func (tc *Tape) Err() error {
	return tc.err
}

// Receive returns an iterator that yields words from the input stream.
// Iteration stops at the end of input, or at the first malformed word.
func (tc *Tape) Receive() iter.Seq[int64] {
	return func(yield func(value int64) bool) {
		tc.err = nil
		if tc.Input == nil {
			return
		}
		if tc.scanner == nil || tc.source != tc.Input {
			tc.scanner = bufio.NewScanner(tc.Input)
			tc.scanner.Split(scanWords)
			tc.source = tc.Input
		}

		for tc.scanner.Scan() {
			token := tc.scanner.Text()
			value, err := strconv.ParseInt(token, 10, 64)
			if err != nil {
				tc.err = &ErrTapeWord{Token: token, Err: err}
				return
			}
			if !yield(value) {
				return
			}
		}

		if err := tc.scanner.Err(); err != nil {
			tc.err = err
		}
	}
}

// Send writes a word to the output stream.
func (tc *Tape) Send(value int64) (err error) {
	if tc.Output == nil {
		err = ErrChannelFull
		return
	}

	_, err = fmt.Fprintf(tc.Output, "%d\n", value)
	return
}
