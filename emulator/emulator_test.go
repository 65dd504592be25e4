package emulator

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/ezrec/intcode/cpu"
	"github.com/ezrec/intcode/io"
)

func TestEmulator(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()

	assert.False(emu.Verbose)
	assert.NotNil(emu.Cpu)
	assert.Equal(cpu.STATE_IDLE, emu.State())

	_, err := emu.Tick()
	assert.ErrorIs(err, cpu.ErrNotLoaded)
}

func doRun(t *testing.T, program string, input string) (output string, err error) {
	prog, err := cpu.ParseProgramString(program)
	require.NoError(t, err)

	tape_output := &bytes.Buffer{}

	emu := NewEmulator()
	emu.Verbose = true
	emu.Logger = zaptest.NewLogger(t)
	emu.Program = prog
	emu.Input = &io.Tape{Input: strings.NewReader(input)}
	emu.Output = &io.Tape{Output: tape_output}
	defer emu.Close()

	err = emu.Reset()
	require.NoError(t, err)

	err = emu.Run(10000)
	output = tape_output.String()
	return
}

func TestEmulatorRun(t *testing.T) {
	assert := assert.New(t)

	compare8 := "3,21,1008,21,8,20,1005,20,22,107,8,21,20,1006,20,31," +
		"1106,0,36,98,0,0,1002,21,125,20,4,20,1105,1,46,104," +
		"999,1105,1,46,1101,1000,1,20,4,20,1105,1,46,98,99"

	table := [](struct {
		name    string
		program string
		input   string
		output  string
	}){
		{"halt", "99", "", ""},
		{"echo", "3,0,4,0,99", "42", "42\n"},
		{"below", compare8, "7", "999\n"},
		{"equal", compare8, "8", "1000\n"},
		{"above", compare8, "9", "1001\n"},
		{"quine", "109,1,204,-1,1001,100,1,100,1008,100,16,101,1006,101,0,99", "",
			"109\n1\n204\n-1\n1001\n100\n1\n100\n1008\n100\n16\n101\n1006\n101\n0\n99\n"},
	}

	for _, entry := range table {
		output, err := doRun(t, entry.program, entry.input)
		assert.NoError(err, entry.name)
		assert.Equal(entry.output, output, entry.name)
	}
}

func TestEmulatorErrors(t *testing.T) {
	assert := assert.New(t)

	_, err := doRun(t, "3,0,3,0,99", "1")
	assert.ErrorIs(err, cpu.ErrInputStarved)
	var runtime *ErrRuntime
	if assert.ErrorAs(err, &runtime) {
		assert.Equal(uint64(2), runtime.Ip)
	}

	// Malformed input is reported, not mistaken for starvation.
	_, err = doRun(t, "3,0,4,0,99", "12x\n")
	var word *io.ErrTapeWord
	if assert.ErrorAs(err, &word) {
		assert.Equal("12x", word.Token)
	}
	assert.NotErrorIs(err, cpu.ErrInputStarved)
	if assert.ErrorAs(err, &runtime) {
		assert.Equal(uint64(0), runtime.Ip)
	}

	output, err := doRun(t, "3,0,4,0,3,0,99", "7 x")
	assert.ErrorAs(err, &word)
	assert.Equal("7\n", output)

	_, err = doRun(t, "1105,1,0", "")
	assert.ErrorIs(err, ErrTickLimit)

	_, err = doRun(t, "1,0,0,0,98", "")
	assert.ErrorIs(err, cpu.ErrOpcodeInvalid)
	if assert.ErrorAs(err, &runtime) {
		assert.Equal(uint64(4), runtime.Ip)
	}

	// Outputs to a full channel are reported.
	prog, _ := cpu.ParseProgramString("104,1,104,2,99")
	emu := NewEmulator()
	emu.Program = prog
	emu.Output = &io.Temporary{Capacity: 1}
	assert.NoError(emu.Reset())
	assert.ErrorIs(emu.Run(0), io.ErrChannelFull)
}

func TestEmulatorTick(t *testing.T) {
	assert := assert.New(t)

	prog, _ := cpu.ParseProgramString("3,0,4,0,99")
	temp := &io.Temporary{Capacity: 4}

	emu := NewEmulator()
	emu.Program = prog
	emu.Input = &io.Rom{Data: []int64{5}}
	emu.Output = temp
	assert.NoError(emu.Reset())

	// Starved: the input word is queued, nothing executes.
	done, err := emu.Tick()
	assert.NoError(err)
	assert.False(done)
	assert.Equal(0, emu.Ticks())
	assert.Equal(1, emu.InputLen())

	for range 2 {
		done, err = emu.Tick()
		assert.NoError(err)
		assert.False(done)
	}
	assert.Equal([]int64{5}, io.ReceiveAll(temp))

	done, err = emu.Tick()
	assert.NoError(err)
	assert.True(done)

	// Reset rewinds the input.
	assert.NoError(emu.Reset())
	assert.NoError(emu.Run(0))
	assert.Equal([]int64{5}, io.ReceiveAll(temp))
}
