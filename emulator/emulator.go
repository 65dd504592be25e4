// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"go.uber.org/zap"

	"github.com/ezrec/intcode/cpu"
	"github.com/ezrec/intcode/io"
)

var nopLogger = zap.NewNop()

// Emulator state. CPU + IO channels.
type Emulator struct {
	Verbose  bool        // If set, enables verbose logging.
	Logger   *zap.Logger // Destination of verbose logs.
	*cpu.Cpu             // Reference to the CPU simulation.
	Program  cpu.Program // The program loaded on Reset.

	Input  io.Channel // Source of words when the program starves.
	Output io.Channel // Destination of every output word.
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu: cpu.NewCpu(),
	}

	return
}

func (emu *Emulator) log() *zap.Logger {
	if emu.Logger == nil {
		return nopLogger
	}
	return emu.Logger
}

// Close the emulator, releasing the loaded program.
func (emu *Emulator) Close() (err error) {
	if emu.Verbose {
		emu.log().Debug("emu: close", zap.Int("ticks", emu.Cpu.Ticks()))
	}

	emu.Cpu.Reset()

	return
}

// Reset the emulator, loading the program and rewinding the channels.
func (emu *Emulator) Reset() (err error) {
	emu.Cpu.Reset()

	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Logger = emu.Logger
	emu.Cpu.Load(emu.Program)

	if emu.Input != nil {
		emu.Input.Rewind()
	}
	if emu.Output != nil {
		emu.Output.Rewind()
	}

	return
}

// receive takes the next word from the input channel.
// An exhausted channel is cpu.ErrInputStarved, unless the channel
// reports why it stopped.
func (emu *Emulator) receive() (value int64, err error) {
	if emu.Input == nil {
		err = cpu.ErrInputStarved
		return
	}

	value, ok := io.ReceiveOne(emu.Input)
	if ok {
		return
	}

	err = io.ReceiveErr(emu.Input)
	if err == nil {
		err = cpu.ErrInputStarved
	}

	return
}

// Tick performs a single tick of the emulator.
// Outputs are forwarded to the Output channel; when the program needs
// input, the next word of the Input channel is queued instead.
func (emu *Emulator) Tick() (done bool, err error) {
	emu.Cpu.Verbose = emu.Verbose

	ip := emu.Cpu.Ip()
	defer func() {
		if err != nil {
			err = &ErrRuntime{Ip: ip, Err: err}
		}
	}()

	event, err := emu.Cpu.Tick()
	if err != nil {
		return
	}

	switch event {
	case cpu.EVENT_HALT:
		done = true
	case cpu.EVENT_OUTPUT:
		if emu.Output == nil {
			break
		}
		for _, value := range emu.Cpu.Outputs() {
			if emu.Verbose {
				emu.log().Debug("emu: output", zap.Int64("value", value))
			}
			err = emu.Output.Send(value)
			if err != nil {
				return
			}
		}
	case cpu.EVENT_INPUT:
		var value int64
		value, err = emu.receive()
		if err != nil {
			return
		}
		if emu.Verbose {
			emu.log().Debug("emu: input", zap.Int64("value", value))
		}
		emu.Cpu.AddInput(value)
	}

	return
}

// Run ticks the emulator until the program halts.
// If maxTicks is positive, more than maxTicks executed instructions
// is ErrTickLimit.
func (emu *Emulator) Run(maxTicks int) (err error) {
	for {
		var done bool
		done, err = emu.Tick()
		if err != nil || done {
			return
		}
		if maxTicks > 0 && emu.Cpu.Ticks() >= maxTicks {
			err = &ErrRuntime{Ip: emu.Cpu.Ip(), Err: ErrTickLimit}
			return
		}
	}
}
