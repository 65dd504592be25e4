package io

import (
	"errors"
	"iter"

	"github.com/ezrec/intcode/internal"
)

// Chain joins channels end to end.
// Receive drains each channel in turn; Send delivers to the first
// channel that accepts the word.
type Chain struct {
	Channels []Channel
}

var _ Channel = (*Chain)(nil)

// NewChain creates a chain of channels.
func NewChain(channels ...Channel) *Chain {
	return &Chain{Channels: channels}
}

// Rewind rewinds every channel of the chain.
func (cc *Chain) Rewind() {
	for _, ch := range cc.Channels {
		ch.Rewind()
	}
}

func (cc *Chain) Receive() iter.Seq[int64] {
	seqs := make([]iter.Seq[int64], len(cc.Channels))
	for n, ch := range cc.Channels {
		seqs[n] = ch.Receive()
	}
	return internal.IterSeqConcat(seqs...)
}

// Err returns the first error reported by a channel of the chain.
func (cc *Chain) Err() error {
	for _, ch := range cc.Channels {
		err := ReceiveErr(ch)
		if err != nil {
			return err
		}
	}
	return nil
}

func (cc *Chain) Send(value int64) (err error) {
	for _, ch := range cc.Channels {
		err = ch.Send(value)
		if !errors.Is(err, ErrChannelFull) {
			return
		}
	}

	err = ErrChannelFull
	return
}
