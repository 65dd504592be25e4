package emulator

import (
	"errors"

	"github.com/ezrec/intcode/translate"
)

var f = translate.From

var (
	ErrTickLimit = errors.New(f("tick limit exceeded"))
	ErrDeadlock  = errors.New(f("all stages starved for input"))
	ErrNoSignal  = errors.New(f("final stage produced no output"))
	ErrNoStages  = errors.New(f("pipeline has no stages"))
)

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	Ip  uint64
	Err error
}

func (err *ErrRuntime) Error() string {
	return f("ip %d %v", err.Ip, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}

// ErrStage indicates which pipeline stage failed.
type ErrStage struct {
	Stage int
	Err   error
}

func (err *ErrStage) Error() string {
	return f("stage %d: %v", err.Stage, err.Err)
}

func (err *ErrStage) Unwrap() error {
	return err.Err
}
