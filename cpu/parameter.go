package cpu

import (
	"fmt"
)

// ParamKind is the resolved form of a Parameter.
type ParamKind int

const (
	PARAM_VALUE = ParamKind(0) // Immediate value.
	PARAM_READ  = ParamKind(1) // Value read from Address.
	PARAM_WRITE = ParamKind(2) // Address is a write target.
)

// Parameter is a resolved instruction operand.
type Parameter struct {
	Kind    ParamKind
	Mode    Mode   // Addressing mode the operand was encoded with.
	Raw     int64  // Operand word as stored in memory.
	Address uint64 // Effective address for PARAM_READ and PARAM_WRITE.
}

// relativeAddress returns raw + relativeBase as an address.
// Sums past the largest int64 are still valid addresses; sums below
// zero, wrapped or not, are ErrAddressNegative.
func relativeAddress(raw int64, relativeBase int64) (addr uint64, err error) {
	sum := raw + relativeBase
	switch {
	case raw < 0 && relativeBase < 0 && sum >= 0:
		err = ErrAddressNegative
	case raw > 0 && relativeBase > 0 && sum < 0:
		addr = uint64(raw) + uint64(relativeBase)
	case sum < 0:
		err = ErrAddressNegative
	default:
		addr = uint64(sum)
	}
	return
}

// Resolve computes the Parameter for a raw operand word.
func Resolve(raw int64, mode Mode, relativeBase int64, role Role) (param Parameter, err error) {
	param = Parameter{Mode: mode, Raw: raw}

	switch mode {
	case MODE_IMMEDIATE:
		if role == ROLE_WRITE {
			err = ErrModeInvalid
			return
		}
		param.Kind = PARAM_VALUE
		return
	case MODE_POSITION:
		if raw < 0 {
			err = ErrAddressNegative
			return
		}
		param.Address = uint64(raw)
	case MODE_RELATIVE:
		param.Address, err = relativeAddress(raw, relativeBase)
		if err != nil {
			return
		}
	default:
		err = ErrModeInvalid
		return
	}

	if role == ROLE_WRITE {
		param.Kind = PARAM_WRITE
	} else {
		param.Kind = PARAM_READ
	}

	return
}

// Get returns the value of a read parameter.
// For a write parameter, the target address is returned.
func (param Parameter) Get(mem *Memory) (value int64) {
	switch param.Kind {
	case PARAM_VALUE:
		value = param.Raw
	case PARAM_READ:
		value = mem.Read(param.Address)
	case PARAM_WRITE:
		value = int64(param.Address)
	}
	return
}

// String returns the assembler syntax of the parameter.
func (param Parameter) String() string {
	switch param.Mode {
	case MODE_IMMEDIATE:
		return fmt.Sprintf("#%d", param.Raw)
	case MODE_RELATIVE:
		return fmt.Sprintf("@%d", param.Raw)
	default:
		return fmt.Sprintf("%d", param.Raw)
	}
}
