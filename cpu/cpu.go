package cpu

import (
	"fmt"
	"math"

	"github.com/hashicorp/golang-lru/v2/simplelru"
	"go.uber.org/zap"
)

// State is the execution state of the Cpu.
type State int

//go:generate go tool stringer -linecomment -type=State
const (
	STATE_IDLE    = State(0) // idle
	STATE_READY   = State(1) // ready
	STATE_RUNNING = State(2) // running
	STATE_HALTED  = State(3) // halted
)

// Event is the reason execution returned to the caller.
type Event int

//go:generate go tool stringer -linecomment -type=Event
const (
	EVENT_NONE   = Event(0) // none
	EVENT_OUTPUT = Event(1) // output
	EVENT_INPUT  = Event(2) // input
	EVENT_HALT   = Event(3) // halt
)

// DirectiveKind is how the instruction pointer moves after an instruction.
type DirectiveKind int

//go:generate go tool stringer -linecomment -type=DirectiveKind
const (
	DIRECTIVE_ADVANCE = DirectiveKind(0) // advance
	DIRECTIVE_JUMP    = DirectiveKind(1) // jump
	DIRECTIVE_HALT    = DirectiveKind(2) // halt
	DIRECTIVE_STALL   = DirectiveKind(3) // stall
)

// Directive is the result of executing an instruction.
type Directive struct {
	Kind    DirectiveKind
	Value   uint64 // Word count for DIRECTIVE_ADVANCE, address for DIRECTIVE_JUMP.
	Suspend bool   // Return to the caller after this instruction.
}

const (
	LAYOUT_CACHE_SIZE = 256 // Instruction word splits kept by the decoder.
)

var nopLogger = zap.NewNop()

// Cpu is an Intcode interpreter.
type Cpu struct {
	Verbose bool        // Set to enable per-instruction tracing.
	Logger  *zap.Logger // Destination of trace and lifecycle logs.

	memory       Memory
	ip           uint64
	relativeBase int64
	input        Queue
	output       Queue
	state        State
	ticks        int

	layouts *simplelru.LRU[Code, Layout]
}

// NewCpu creates a new, idle, Cpu.
func NewCpu() (cpu *Cpu) {
	layouts, err := simplelru.NewLRU[Code, Layout](LAYOUT_CACHE_SIZE, nil)
	if err != nil {
		panic(err)
	}

	cpu = &Cpu{
		layouts: layouts,
	}

	return
}

func (cpu *Cpu) log() *zap.Logger {
	if cpu.Logger == nil {
		return nopLogger
	}
	return cpu.Logger
}

// Load a program, and make the Cpu ready to run it.
// Memory, instruction pointer and relative base are reset;
// queued input and output are preserved.
func (cpu *Cpu) Load(prog Program) {
	cpu.memory.Load(prog)
	cpu.ip = 0
	cpu.relativeBase = 0
	cpu.ticks = 0
	cpu.state = STATE_READY

	if cpu.Verbose {
		cpu.log().Debug("cpu: load",
			zap.Int("words", len(prog)),
			zap.String("fingerprint", prog.Fingerprint()),
		)
	}
}

// Reset the Cpu to idle.
// - Clears memory.
// - Clears the input and output queues.
// - Zeros statistics counters.
func (cpu *Cpu) Reset() {
	cpu.memory.Reset()
	cpu.input.Reset()
	cpu.output.Reset()
	cpu.ip = 0
	cpu.relativeBase = 0
	cpu.ticks = 0
	cpu.state = STATE_IDLE
}

// AddInput appends values to the input queue.
func (cpu *Cpu) AddInput(values ...int64) {
	cpu.input.Push(values...)
}

// TakeOutput removes and returns the oldest queued output.
func (cpu *Cpu) TakeOutput() (value int64, ok bool) {
	return cpu.output.Pop()
}

// Outputs removes and returns all queued outputs.
func (cpu *Cpu) Outputs() []int64 {
	return cpu.output.Drain()
}

// InputLen is the number of queued input values.
func (cpu *Cpu) InputLen() int {
	return cpu.input.Len()
}

// OutputLen is the number of queued output values.
func (cpu *Cpu) OutputLen() int {
	return cpu.output.Len()
}

// State returns the execution state.
func (cpu *Cpu) State() State {
	return cpu.state
}

// ReadMemory returns the value at addr.
func (cpu *Cpu) ReadMemory(addr uint64) int64 {
	return cpu.memory.Read(addr)
}

// Memory returns the memory for inspection.
func (cpu *Cpu) Memory() *Memory {
	return &cpu.memory
}

// Ip returns the instruction pointer.
func (cpu *Cpu) Ip() uint64 {
	return cpu.ip
}

// RelativeBase returns the relative base.
func (cpu *Cpu) RelativeBase() int64 {
	return cpu.relativeBase
}

// Ticks returns the number of instructions executed since the last load.
func (cpu *Cpu) Ticks() int {
	return cpu.ticks
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	text += fmt.Sprintf("% 6s: %v\n", "state", cpu.state)
	text += fmt.Sprintf("% 6s: %d\n", "ip", cpu.ip)
	text += fmt.Sprintf("% 6s: %d\n", "rb", cpu.relativeBase)
	text += fmt.Sprintf("% 6s: %v\n", "code", Code(cpu.memory.Read(cpu.ip)))
	text += fmt.Sprintf("% 6s: %v\n", "input", cpu.input.Data)
	text += fmt.Sprintf("% 6s: %v\n", "output", cpu.output.Data)
	text += fmt.Sprintf("% 6s: %d\n", "ticks", cpu.ticks)
	return
}

// layout splits an instruction word, consulting the layout cache.
func (cpu *Cpu) layout(code Code) (layout Layout, err error) {
	layout, ok := cpu.layouts.Get(code)
	if ok {
		return
	}

	layout, err = code.Layout()
	if err != nil {
		return
	}

	cpu.layouts.Add(code, layout)
	return
}

// Peek decodes the next instruction without executing it.
func (cpu *Cpu) Peek() (inst Instruction, err error) {
	code := Code(cpu.memory.Read(cpu.ip))
	defer func() {
		if err != nil {
			err = &ErrInstruction{Ip: cpu.ip, Code: code, Err: err}
		}
	}()

	layout, err := cpu.layout(code)
	if err != nil {
		return
	}

	return DecodeLayout(&cpu.memory, cpu.ip, cpu.relativeBase, layout)
}

// Run executes instructions until the program halts, produces an output,
// or requires an input that has not been queued.
func (cpu *Cpu) Run() (event Event, err error) {
	for {
		event, err = cpu.Tick()
		if err != nil || event != EVENT_NONE {
			return
		}
	}
}

// Tick executes a single instruction cycle.
func (cpu *Cpu) Tick() (event Event, err error) {
	switch cpu.state {
	case STATE_IDLE:
		err = ErrNotLoaded
		return
	case STATE_HALTED:
		event = EVENT_HALT
		return
	}

	cpu.state = STATE_RUNNING

	inst, err := cpu.Peek()
	if err != nil {
		return
	}

	if cpu.Verbose {
		cpu.log().Debug("cpu: exec",
			zap.Uint64("ip", cpu.ip),
			zap.Int64("rb", cpu.relativeBase),
			zap.Stringer("inst", inst),
		)
	}

	dir, err := cpu.Execute(inst)
	if err != nil {
		err = &ErrInstruction{Ip: cpu.ip, Code: Code(cpu.memory.Read(cpu.ip)), Err: err}
		return
	}

	switch dir.Kind {
	case DIRECTIVE_ADVANCE:
		cpu.ip += dir.Value
	case DIRECTIVE_JUMP:
		cpu.ip = dir.Value
	case DIRECTIVE_HALT:
		cpu.state = STATE_HALTED
		event = EVENT_HALT
	case DIRECTIVE_STALL:
		// Don't advance; the same instruction retries once input arrives.
		event = EVENT_INPUT
		return
	}

	cpu.ticks++

	if dir.Suspend {
		event = EVENT_OUTPUT
	}

	return
}

// Execute applies a single decoded instruction.
func (cpu *Cpu) Execute(inst Instruction) (dir Directive, err error) {
	mem := &cpu.memory

	flag := func(cond bool) int64 {
		if cond {
			return 1
		}
		return 0
	}

	jump := func(cond bool, target Parameter) {
		if !cond {
			dir = Directive{Kind: DIRECTIVE_ADVANCE, Value: 3}
			return
		}
		addr := target.Get(mem)
		if addr < 0 {
			err = ErrAddressNegative
			return
		}
		dir = Directive{Kind: DIRECTIVE_JUMP, Value: uint64(addr)}
	}

	switch inst := inst.(type) {
	case Halt:
		dir = Directive{Kind: DIRECTIVE_HALT}
	case Add:
		mem.Write(inst.Out.Address, inst.A.Get(mem)+inst.B.Get(mem))
		dir = Directive{Kind: DIRECTIVE_ADVANCE, Value: 4}
	case Multiply:
		mem.Write(inst.Out.Address, inst.A.Get(mem)*inst.B.Get(mem))
		dir = Directive{Kind: DIRECTIVE_ADVANCE, Value: 4}
	case StoreInput:
		value, ok := cpu.input.Pop()
		if !ok {
			dir = Directive{Kind: DIRECTIVE_STALL}
			return
		}
		mem.Write(inst.Out.Address, value)
		dir = Directive{Kind: DIRECTIVE_ADVANCE, Value: 2}
	case GiveOutput:
		cpu.output.Push(inst.A.Get(mem))
		dir = Directive{Kind: DIRECTIVE_ADVANCE, Value: 2, Suspend: true}
	case JumpIfTrue:
		jump(inst.A.Get(mem) != 0, inst.Target)
	case JumpIfFalse:
		jump(inst.A.Get(mem) == 0, inst.Target)
	case LessThan:
		mem.Write(inst.Out.Address, flag(inst.A.Get(mem) < inst.B.Get(mem)))
		dir = Directive{Kind: DIRECTIVE_ADVANCE, Value: 4}
	case Equals:
		mem.Write(inst.Out.Address, flag(inst.A.Get(mem) == inst.B.Get(mem)))
		dir = Directive{Kind: DIRECTIVE_ADVANCE, Value: 4}
	case AdjustRelativeBase:
		delta := inst.A.Get(mem)
		if (delta > 0 && cpu.relativeBase > math.MaxInt64-delta) ||
			(delta < 0 && cpu.relativeBase < math.MinInt64-delta) {
			err = ErrRelativeBaseRange
			return
		}
		cpu.relativeBase += delta
		dir = Directive{Kind: DIRECTIVE_ADVANCE, Value: 2}
	default:
		err = ErrOpcodeInvalid
	}

	return
}
