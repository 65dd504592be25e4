package cpu

import (
	"errors"

	"github.com/ezrec/intcode/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrNotLoaded       = errors.New(f("no program loaded"))
	ErrAddressNegative = errors.New(f("negative address"))
	ErrInputStarved    = errors.New(f("input starved"))

	ErrRelativeBaseRange = errors.New(f("relative base out of range"))
	ErrPatchRange        = errors.New(f("patch address past end of program"))

	// Instruction decode errors
	ErrOpcodeInvalid = errors.New(f("opcode invalid"))
	ErrModeInvalid   = errors.New(f("parameter mode invalid"))
	ErrOpcodeArg1    = errors.New(f("arg1"))
	ErrOpcodeArg2    = errors.New(f("arg2"))
	ErrOpcodeArg3    = errors.New(f("arg3"))

	// Assembler errors
	ErrEquateSyntax       = errors.New(f(".equ syntax"))
	ErrEquateDuplicate    = errors.New(f(".equ duplicated"))
	ErrLabelDuplicate     = errors.New(f("label duplicated"))
	ErrLabelInvalid       = errors.New(f("label invalid"))
	ErrDataMissing        = errors.New(f(".data without values"))
	ErrOperandCount       = errors.New(f("wrong number of operands"))
	ErrOperandImmediate   = errors.New(f("immediate operand cannot be written"))
	ErrInstructionInvalid = errors.New(f("instruction invalid"))
)

var argErrors = [MAX_PARAMS]error{ErrOpcodeArg1, ErrOpcodeArg2, ErrOpcodeArg3}

// argError attaches the parameter position to a decode error.
func argError(n int, err error) error {
	return errors.Join(err, argErrors[n])
}

// ErrInstruction indicates the location of a faulting instruction.
type ErrInstruction struct {
	Ip   uint64
	Code Code
	Err  error
}

func (err *ErrInstruction) Error() string {
	return f("ip %d: bad instruction %d (%v): %v", err.Ip, int64(err.Code), err.Code, err.Err)
}

func (err *ErrInstruction) Unwrap() error {
	return err.Err
}

// ErrProgramParse indicates a malformed token in program text.
type ErrProgramParse struct {
	Index int
	Token string
	Err   error
}

func (err *ErrProgramParse) Error() string {
	return f("program word %d '%v' is not an integer", err.Index, err.Token)
}

func (err *ErrProgramParse) Unwrap() error {
	return err.Err
}

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}
