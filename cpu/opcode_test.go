package cpu

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCode(t *testing.T) {
	assert := assert.New(t)

	code := MakeCode(OP_MUL, MODE_POSITION, MODE_IMMEDIATE)
	assert.Equal(Code(1002), code)
	assert.Equal(OP_MUL, code.Opcode())
	assert.Equal(MODE_POSITION, code.Mode(0))
	assert.Equal(MODE_IMMEDIATE, code.Mode(1))
	assert.Equal(MODE_POSITION, code.Mode(2))
	assert.Equal("mul.pos.imm.pos", code.String())

	assert.Equal(Code(21101), MakeCode(OP_ADD, MODE_IMMEDIATE, MODE_IMMEDIATE, MODE_RELATIVE))
	assert.Equal(Code(99), MakeCode(OP_HALT))
	assert.Equal("halt", Code(99).String())
	assert.Equal("42", Code(42).String())
	assert.Equal("-1", Code(-1).String())

	assert.Equal(4, OP_ADD.Size())
	assert.Equal(2, OP_IN.Size())
	assert.Equal(3, OP_JT.Size())
	assert.Equal(1, OP_HALT.Size())

	_, ok := Opcode(10).Roles()
	assert.False(ok)
}

func TestCodeLayout(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		code   Code
		opcode Opcode
		modes  [MAX_PARAMS]Mode
		errs   []error
	}){
		{1002, OP_MUL, [MAX_PARAMS]Mode{MODE_POSITION, MODE_IMMEDIATE, MODE_POSITION}, nil},
		{21101, OP_ADD, [MAX_PARAMS]Mode{MODE_IMMEDIATE, MODE_IMMEDIATE, MODE_RELATIVE}, nil},
		{204, OP_OUT, [MAX_PARAMS]Mode{MODE_RELATIVE}, nil},
		{99, OP_HALT, [MAX_PARAMS]Mode{}, nil},
		// Mode digits past the arity are ignored.
		{11199, OP_HALT, [MAX_PARAMS]Mode{}, nil},
		{0, 0, [MAX_PARAMS]Mode{}, []error{ErrOpcodeInvalid}},
		{98, 0, [MAX_PARAMS]Mode{}, []error{ErrOpcodeInvalid}},
		{-2, 0, [MAX_PARAMS]Mode{}, []error{ErrOpcodeInvalid}},
		{301, 0, [MAX_PARAMS]Mode{}, []error{ErrModeInvalid, ErrOpcodeArg1}},
		{3001, 0, [MAX_PARAMS]Mode{}, []error{ErrModeInvalid, ErrOpcodeArg2}},
		{10001, 0, [MAX_PARAMS]Mode{}, []error{ErrModeInvalid, ErrOpcodeArg3}},
		{103, 0, [MAX_PARAMS]Mode{}, []error{ErrModeInvalid, ErrOpcodeArg1}},
	}

	for _, entry := range table {
		layout, err := entry.code.Layout()
		if len(entry.errs) == 0 {
			assert.NoError(err, entry.code)
			assert.Equal(entry.opcode, layout.Opcode, entry.code)
			assert.Equal(entry.modes, layout.Modes, entry.code)
			continue
		}
		for _, target := range entry.errs {
			assert.ErrorIs(err, target, entry.code)
		}
	}
}

func TestResolve(t *testing.T) {
	assert := assert.New(t)

	mem := &Memory{}
	mem.Load(Program{10, 20, 30, 40})

	table := [](struct {
		raw   int64
		mode  Mode
		rb    int64
		role  Role
		kind  ParamKind
		value int64
		err   error
	}){
		{2, MODE_POSITION, 0, ROLE_READ, PARAM_READ, 30, nil},
		{2, MODE_IMMEDIATE, 0, ROLE_READ, PARAM_VALUE, 2, nil},
		{-5, MODE_IMMEDIATE, 0, ROLE_READ, PARAM_VALUE, -5, nil},
		{-1, MODE_RELATIVE, 4, ROLE_READ, PARAM_READ, 40, nil},
		{1, MODE_RELATIVE, 1000, ROLE_WRITE, PARAM_WRITE, 1001, nil},
		{3, MODE_POSITION, 0, ROLE_WRITE, PARAM_WRITE, 3, nil},
		{-1, MODE_POSITION, 0, ROLE_READ, 0, 0, ErrAddressNegative},
		{0, MODE_RELATIVE, -1, ROLE_WRITE, 0, 0, ErrAddressNegative},
		{0, MODE_IMMEDIATE, 0, ROLE_WRITE, 0, 0, ErrModeInvalid},
		{-1, MODE_RELATIVE, math.MinInt64, ROLE_READ, 0, 0, ErrAddressNegative},
		{math.MinInt64, MODE_RELATIVE, -1, ROLE_WRITE, 0, 0, ErrAddressNegative},
		{math.MinInt64, MODE_RELATIVE, math.MaxInt64, ROLE_WRITE, 0, 0, ErrAddressNegative},
		{0, Mode(5), 0, ROLE_READ, 0, 0, ErrModeInvalid},
	}

	for n, entry := range table {
		param, err := Resolve(entry.raw, entry.mode, entry.rb, entry.role)
		if entry.err != nil {
			assert.ErrorIs(err, entry.err, n)
			continue
		}
		assert.NoError(err, n)
		assert.Equal(entry.kind, param.Kind, n)
		assert.Equal(entry.value, param.Get(mem), n)
	}
}

func TestResolveLargeAddress(t *testing.T) {
	assert := assert.New(t)

	param, err := Resolve(math.MaxInt64, MODE_RELATIVE, math.MaxInt64, ROLE_READ)
	assert.NoError(err)
	assert.Equal(uint64(math.MaxUint64)-1, param.Address)

	param, err = Resolve(1, MODE_RELATIVE, math.MaxInt64, ROLE_WRITE)
	assert.NoError(err)
	assert.Equal(uint64(math.MaxInt64)+1, param.Address)
}

func TestParameterString(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("12", Parameter{Mode: MODE_POSITION, Raw: 12}.String())
	assert.Equal("#-3", Parameter{Mode: MODE_IMMEDIATE, Raw: -3}.String())
	assert.Equal("@7", Parameter{Mode: MODE_RELATIVE, Raw: 7}.String())
}

func TestDecode(t *testing.T) {
	assert := assert.New(t)

	mem := &Memory{}
	mem.Load(Program{109, 1, 204, -1, 1001, 100, 1, 100, 1008, 100, 16, 101, 1006, 101, 0, 99})

	table := [](struct {
		ip   uint64
		text string
	}){
		{0, "arb #1"},
		{2, "out @-1"},
		{4, "add 100 #1 100"},
		{8, "eq 100 #16 101"},
		{12, "jf 101 #0"},
		{15, "halt"},
	}

	for _, entry := range table {
		inst, err := Decode(mem, entry.ip, 1)
		if assert.NoError(err, entry.text) {
			assert.Equal(entry.text, inst.String())
		}
	}

	inst, err := Decode(mem, 2, 1)
	assert.NoError(err)
	out, ok := inst.(GiveOutput)
	if assert.True(ok) {
		assert.Equal(PARAM_READ, out.A.Kind)
		assert.Equal(uint64(0), out.A.Address)
	}

	_, err = Decode(mem, 2, 0)
	assert.ErrorIs(err, ErrAddressNegative)
	assert.ErrorIs(err, ErrOpcodeArg1)
}
