package cpu

import (
	"fmt"
)

// Opcode is an Intcode operation, the two low decimal digits of a Code.
type Opcode int

//go:generate go tool stringer -linecomment -type=Opcode
const (
	OP_ADD  = Opcode(1)  // add
	OP_MUL  = Opcode(2)  // mul
	OP_IN   = Opcode(3)  // in
	OP_OUT  = Opcode(4)  // out
	OP_JT   = Opcode(5)  // jt
	OP_JF   = Opcode(6)  // jf
	OP_LT   = Opcode(7)  // lt
	OP_EQ   = Opcode(8)  // eq
	OP_ARB  = Opcode(9)  // arb
	OP_HALT = Opcode(99) // halt
)

// Mode is a parameter addressing mode.
type Mode int

//go:generate go tool stringer -linecomment -type=Mode
const (
	MODE_POSITION  = Mode(0) // pos
	MODE_IMMEDIATE = Mode(1) // imm
	MODE_RELATIVE  = Mode(2) // rel
)

// Valid returns true if the mode is one of the known addressing modes.
func (mode Mode) Valid() bool {
	return mode >= MODE_POSITION && mode <= MODE_RELATIVE
}

// Role is the use an instruction makes of a parameter.
type Role int

const (
	ROLE_READ  = Role(0) // Parameter is read.
	ROLE_WRITE = Role(1) // Parameter is the destination of a write.
)

const (
	MAX_PARAMS = 3 // Largest arity of any opcode.
)

var (
	rolesRRW = []Role{ROLE_READ, ROLE_READ, ROLE_WRITE}
	rolesRR  = []Role{ROLE_READ, ROLE_READ}
	rolesR   = []Role{ROLE_READ}
	rolesW   = []Role{ROLE_WRITE}
)

// opcodeRoles maps every known opcode to its parameter roles.
var opcodeRoles = map[Opcode][]Role{
	OP_ADD:  rolesRRW,
	OP_MUL:  rolesRRW,
	OP_IN:   rolesW,
	OP_OUT:  rolesR,
	OP_JT:   rolesRR,
	OP_JF:   rolesRR,
	OP_LT:   rolesRRW,
	OP_EQ:   rolesRRW,
	OP_ARB:  rolesR,
	OP_HALT: nil,
}

// Roles returns the parameter roles of the opcode, in parameter order.
// ok is false if the opcode is unknown.
func (op Opcode) Roles() (roles []Role, ok bool) {
	roles, ok = opcodeRoles[op]
	return
}

// Size returns the number of words used by the opcode and its parameters.
func (op Opcode) Size() int {
	roles, _ := op.Roles()
	return 1 + len(roles)
}

// Code is a single instruction word: an opcode in the two low decimal
// digits, and one parameter mode per higher decimal digit.
type Code int64

// MakeCode creates an instruction word from an opcode and parameter modes.
func MakeCode(op Opcode, modes ...Mode) Code {
	word := int64(op)
	scale := int64(100)
	for _, mode := range modes {
		word += int64(mode) * scale
		scale *= 10
	}
	return Code(word)
}

// Opcode returns the operation of the instruction word.
func (code Code) Opcode() Opcode {
	return Opcode(int64(code) % 100)
}

// Mode returns the mode of the n'th parameter, starting at zero.
// Digits not present in the word are MODE_POSITION.
func (code Code) Mode(n int) Mode {
	word := int64(code) / 100
	for range n {
		word /= 10
	}
	return Mode(word % 10)
}

// Layout is the split form of an instruction word.
type Layout struct {
	Opcode Opcode
	Modes  [MAX_PARAMS]Mode
	Roles  []Role
}

// Layout splits and validates the instruction word.
func (code Code) Layout() (layout Layout, err error) {
	if code < 0 {
		err = ErrOpcodeInvalid
		return
	}

	layout.Opcode = code.Opcode()
	roles, ok := layout.Opcode.Roles()
	if !ok {
		err = ErrOpcodeInvalid
		return
	}
	layout.Roles = roles

	for n, role := range roles {
		mode := code.Mode(n)
		if !mode.Valid() {
			err = argError(n, ErrModeInvalid)
			return
		}
		if role == ROLE_WRITE && mode == MODE_IMMEDIATE {
			err = argError(n, ErrModeInvalid)
			return
		}
		layout.Modes[n] = mode
	}

	return
}

// String returns the opcode and modes of the instruction word.
func (code Code) String() (out string) {
	op := code.Opcode()
	roles, ok := op.Roles()
	if code < 0 || !ok {
		return fmt.Sprintf("%d", int64(code))
	}

	out = op.String()
	for n := range roles {
		out += "." + code.Mode(n).String()
	}

	return
}
