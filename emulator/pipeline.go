package emulator

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ezrec/intcode/cpu"
	"github.com/ezrec/intcode/io"
)

const (
	PIPELINE_BUFFER = 1024 // Initial words buffered between adjacent stages.
)

// tap records the last word sent through it.
type tap struct {
	io.Channel
	last int64
	sent bool
}

func (tc *tap) Rewind() {
	tc.sent = false
	if tc.Channel != nil {
		tc.Channel.Rewind()
	}
}

func (tc *tap) Send(value int64) (err error) {
	tc.last = value
	tc.sent = true
	if tc.Channel == nil {
		return
	}
	return tc.Channel.Send(value)
}

// Pipeline is a chain of Intcode machines running the same program,
// each fed its phase setting before any signal. The outputs of each
// stage are the inputs of the next; with Feedback set, the outputs of the
// last stage are also fed back to the first.
type Pipeline struct {
	Verbose  bool        // If set, enables verbose logging.
	Logger   *zap.Logger // Destination of verbose logs.
	Feedback bool        // Route the last stage's outputs to the first stage.
	MaxTicks int         // Per stage instruction budget; zero is unlimited.

	Program cpu.Program
	Phases  []int64
}

// NewPipeline creates a pipeline with one stage per phase setting.
func NewPipeline(prog cpu.Program, phases ...int64) (pl *Pipeline) {
	pl = &Pipeline{
		Program: prog,
		Phases:  phases,
	}

	return
}

func (pl *Pipeline) log() *zap.Logger {
	if pl.Logger == nil {
		return nopLogger
	}
	return pl.Logger
}

// Run feeds signal to the first stage, and runs every stage in turn,
// each until it halts or starves for input, until all have halted.
// Buffers between stages grow as needed.
// The last word emitted by the final stage is returned.
func (pl *Pipeline) Run(signal int64) (result int64, err error) {
	stages := len(pl.Phases)
	if stages == 0 {
		err = ErrNoStages
		return
	}

	links := make([]*io.Temporary, stages)
	for n := range links {
		links[n] = &io.Temporary{Capacity: PIPELINE_BUFFER, Grow: true}
	}

	final := &tap{}
	emus := make([]*Emulator, stages)
	for n, phase := range pl.Phases {
		emu := NewEmulator()
		emu.Verbose = pl.Verbose
		emu.Logger = pl.Logger
		emu.Program = pl.Program
		emu.Input = io.NewChain(&io.Rom{Data: []int64{phase}}, links[n])

		switch {
		case n+1 < stages:
			emu.Output = links[n+1]
		case pl.Feedback:
			final.Channel = links[0]
			emu.Output = final
		default:
			emu.Output = final
		}

		err = emu.Reset()
		if err != nil {
			return
		}
		defer emu.Close()

		emus[n] = emu
	}

	err = links[0].Send(signal)
	if err != nil {
		return
	}

	for round := 0; ; round++ {
		progress := false
		halted := 0

		for n, emu := range emus {
			for {
				var done bool
				done, err = emu.Tick()
				if errors.Is(err, cpu.ErrInputStarved) {
					err = nil
					break
				}
				if err != nil {
					err = &ErrStage{Stage: n, Err: err}
					return
				}
				if done {
					halted++
					break
				}
				progress = true
				if pl.MaxTicks > 0 && emu.Cpu.Ticks() >= pl.MaxTicks {
					err = &ErrStage{Stage: n, Err: &ErrRuntime{Ip: emu.Cpu.Ip(), Err: ErrTickLimit}}
					return
				}
			}
		}

		if pl.Verbose {
			pl.log().Debug("pipeline: round",
				zap.Int("round", round),
				zap.Int("halted", halted),
				zap.Bool("progress", progress),
			)
		}

		if halted == stages {
			break
		}

		if !progress {
			err = ErrDeadlock
			return
		}
	}

	if !final.sent {
		err = ErrNoSignal
		return
	}

	result = final.last
	return
}

// RunConcurrent is Run with one goroutine per stage, connected by
// channels of PIPELINE_BUFFER words; a stage blocks while its downstream
// channel is full. Words sent to a stage that has halted are dropped.
// A stage starved by a halted upstream stage fails with
// cpu.ErrInputStarved. Stages that wait on each other forever are only
// stopped by cancelling ctx.
func (pl *Pipeline) RunConcurrent(ctx context.Context, signal int64) (result int64, err error) {
	stages := len(pl.Phases)
	if stages == 0 {
		err = ErrNoStages
		return
	}

	links := make([]chan int64, stages)
	done := make([]chan struct{}, stages)
	for n := range stages {
		links[n] = make(chan int64, PIPELINE_BUFFER)
		done[n] = make(chan struct{})
	}

	links[0] <- signal
	if !pl.Feedback {
		close(links[0])
	}

	var last int64
	var sent bool

	g, ctx := errgroup.WithContext(ctx)
	for n, phase := range pl.Phases {
		input := links[n]

		var output chan int64
		var outputDone chan struct{}
		switch {
		case n+1 < stages:
			output, outputDone = links[n+1], done[n+1]
		case pl.Feedback:
			output, outputDone = links[0], done[0]
		}

		isFinal := n+1 == stages

		g.Go(func() (err error) {
			defer close(done[n])
			if output != nil {
				defer close(output)
			}
			defer func() {
				if err != nil {
					err = &ErrStage{Stage: n, Err: err}
				}
			}()

			stage := cpu.NewCpu()
			stage.Verbose = pl.Verbose
			stage.Logger = pl.Logger
			stage.Load(pl.Program)
			stage.AddInput(phase)

			for {
				var event cpu.Event
				event, err = stage.Tick()
				if err != nil {
					return
				}

				switch event {
				case cpu.EVENT_HALT:
					return
				case cpu.EVENT_OUTPUT:
					for _, value := range stage.Outputs() {
						if isFinal {
							last, sent = value, true
						}
						if output == nil {
							continue
						}
						select {
						case output <- value:
						case <-outputDone:
						case <-ctx.Done():
							return ctx.Err()
						}
					}
				case cpu.EVENT_INPUT:
					select {
					case value, ok := <-input:
						if !ok {
							err = &ErrRuntime{Ip: stage.Ip(), Err: cpu.ErrInputStarved}
							return
						}
						stage.AddInput(value)
					case <-ctx.Done():
						return ctx.Err()
					}
				}

				if pl.MaxTicks > 0 && stage.Ticks() >= pl.MaxTicks {
					err = &ErrRuntime{Ip: stage.Ip(), Err: ErrTickLimit}
					return
				}
			}
		})
	}

	err = g.Wait()
	if err != nil {
		return
	}

	if !sent {
		err = ErrNoSignal
		return
	}

	result = last
	return
}
