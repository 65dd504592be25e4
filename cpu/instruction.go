package cpu

import (
	"strings"
)

// Instruction is a decoded instruction with resolved parameters.
//
// The set of instructions is closed; the implementations are Halt, Add,
// Multiply, StoreInput, GiveOutput, JumpIfTrue, JumpIfFalse, LessThan,
// Equals and AdjustRelativeBase.
type Instruction interface {
	// Opcode returns the operation of the instruction.
	Opcode() Opcode
	// Params returns the resolved parameters, in encoding order.
	Params() []Parameter
	// String returns the assembler syntax of the instruction.
	String() string

	instruction()
}

// Halt is opcode 99.
type Halt struct{}

// Add stores A+B at Out.
type Add struct{ A, B, Out Parameter }

// Multiply stores A*B at Out.
type Multiply struct{ A, B, Out Parameter }

// StoreInput stores the next input value at Out.
type StoreInput struct{ Out Parameter }

// GiveOutput emits A and suspends the cpu.
type GiveOutput struct{ A Parameter }

// JumpIfTrue jumps to Target when A is non-zero.
type JumpIfTrue struct{ A, Target Parameter }

// JumpIfFalse jumps to Target when A is zero.
type JumpIfFalse struct{ A, Target Parameter }

// LessThan stores 1 at Out if A < B, else 0.
type LessThan struct{ A, B, Out Parameter }

// Equals stores 1 at Out if A == B, else 0.
type Equals struct{ A, B, Out Parameter }

// AdjustRelativeBase adds A to the relative base.
type AdjustRelativeBase struct{ A Parameter }

func (Halt) Opcode() Opcode               { return OP_HALT }
func (Add) Opcode() Opcode                { return OP_ADD }
func (Multiply) Opcode() Opcode           { return OP_MUL }
func (StoreInput) Opcode() Opcode         { return OP_IN }
func (GiveOutput) Opcode() Opcode         { return OP_OUT }
func (JumpIfTrue) Opcode() Opcode         { return OP_JT }
func (JumpIfFalse) Opcode() Opcode        { return OP_JF }
func (LessThan) Opcode() Opcode           { return OP_LT }
func (Equals) Opcode() Opcode             { return OP_EQ }
func (AdjustRelativeBase) Opcode() Opcode { return OP_ARB }

func (Halt) Params() []Parameter                    { return nil }
func (inst Add) Params() []Parameter                { return []Parameter{inst.A, inst.B, inst.Out} }
func (inst Multiply) Params() []Parameter           { return []Parameter{inst.A, inst.B, inst.Out} }
func (inst StoreInput) Params() []Parameter         { return []Parameter{inst.Out} }
func (inst GiveOutput) Params() []Parameter         { return []Parameter{inst.A} }
func (inst JumpIfTrue) Params() []Parameter         { return []Parameter{inst.A, inst.Target} }
func (inst JumpIfFalse) Params() []Parameter        { return []Parameter{inst.A, inst.Target} }
func (inst LessThan) Params() []Parameter           { return []Parameter{inst.A, inst.B, inst.Out} }
func (inst Equals) Params() []Parameter             { return []Parameter{inst.A, inst.B, inst.Out} }
func (inst AdjustRelativeBase) Params() []Parameter { return []Parameter{inst.A} }

func (inst Halt) String() string               { return formatInstruction(inst) }
func (inst Add) String() string                { return formatInstruction(inst) }
func (inst Multiply) String() string           { return formatInstruction(inst) }
func (inst StoreInput) String() string         { return formatInstruction(inst) }
func (inst GiveOutput) String() string         { return formatInstruction(inst) }
func (inst JumpIfTrue) String() string         { return formatInstruction(inst) }
func (inst JumpIfFalse) String() string        { return formatInstruction(inst) }
func (inst LessThan) String() string           { return formatInstruction(inst) }
func (inst Equals) String() string             { return formatInstruction(inst) }
func (inst AdjustRelativeBase) String() string { return formatInstruction(inst) }

func (Halt) instruction()               {}
func (Add) instruction()                {}
func (Multiply) instruction()           {}
func (StoreInput) instruction()         {}
func (GiveOutput) instruction()         {}
func (JumpIfTrue) instruction()         {}
func (JumpIfFalse) instruction()        {}
func (LessThan) instruction()           {}
func (Equals) instruction()             {}
func (AdjustRelativeBase) instruction() {}

func formatInstruction(inst Instruction) string {
	words := []string{inst.Opcode().String()}
	for _, param := range inst.Params() {
		words = append(words, param.String())
	}
	return strings.Join(words, " ")
}

// Decode reads and decodes the instruction at ip.
func Decode(mem *Memory, ip uint64, relativeBase int64) (inst Instruction, err error) {
	layout, err := Code(mem.Read(ip)).Layout()
	if err != nil {
		return
	}

	return DecodeLayout(mem, ip, relativeBase, layout)
}

// DecodeLayout resolves the parameters of an already split instruction word.
func DecodeLayout(mem *Memory, ip uint64, relativeBase int64, layout Layout) (inst Instruction, err error) {
	var params [MAX_PARAMS]Parameter
	for n, role := range layout.Roles {
		raw := mem.Read(ip + 1 + uint64(n))
		params[n], err = Resolve(raw, layout.Modes[n], relativeBase, role)
		if err != nil {
			err = argError(n, err)
			return
		}
	}

	a, b, c := params[0], params[1], params[2]

	switch layout.Opcode {
	case OP_HALT:
		inst = Halt{}
	case OP_ADD:
		inst = Add{A: a, B: b, Out: c}
	case OP_MUL:
		inst = Multiply{A: a, B: b, Out: c}
	case OP_IN:
		inst = StoreInput{Out: a}
	case OP_OUT:
		inst = GiveOutput{A: a}
	case OP_JT:
		inst = JumpIfTrue{A: a, Target: b}
	case OP_JF:
		inst = JumpIfFalse{A: a, Target: b}
	case OP_LT:
		inst = LessThan{A: a, B: b, Out: c}
	case OP_EQ:
		inst = Equals{A: a, B: b, Out: c}
	case OP_ARB:
		inst = AdjustRelativeBase{A: a}
	default:
		err = ErrOpcodeInvalid
	}

	return
}
