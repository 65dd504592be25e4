package cpu

import (
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseProgram(t *testing.T) {
	assert := assert.New(t)

	prog, err := ParseProgram(strings.NewReader("1,9,10,3,\n 2,3,11,0,99,30,40,50\n"))
	assert.NoError(err)
	assert.Equal(Program{1, 9, 10, 3, 2, 3, 11, 0, 99, 30, 40, 50}, prog)
	assert.Equal("1,9,10,3,2,3,11,0,99,30,40,50", prog.String())

	prog, err = ParseProgramString("-1,1125899906842624")
	assert.NoError(err)
	assert.Equal(Program{-1, 1125899906842624}, prog)

	prog, err = ParseProgramString("  \n")
	assert.NoError(err)
	assert.Equal(Program{}, prog)
	assert.Equal("", prog.String())
}

func TestParseProgramErrors(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		text  string
		index int
		token string
	}){
		{"1,x,3", 1, "x"},
		{"1,,3", 1, ""},
		{"1,2,", 2, ""},
		{"0x10", 0, "0x10"},
		{"1.5", 0, "1.5"},
	}

	for _, entry := range table {
		_, err := ParseProgramString(entry.text)
		var parse *ErrProgramParse
		if assert.ErrorAs(err, &parse, entry.text) {
			assert.Equal(entry.index, parse.Index, entry.text)
			assert.Equal(entry.token, parse.Token, entry.text)
		}
		assert.ErrorIs(err, strconv.ErrSyntax, entry.text)
	}

	_, err := ParseProgramString("1,99999999999999999999")
	assert.ErrorIs(err, strconv.ErrRange)
}

func TestProgramPatch(t *testing.T) {
	assert := assert.New(t)

	prog := Program{1, 0, 0, 0, 99}

	patched, err := prog.Patch(1, 12)
	assert.NoError(err)
	assert.Equal(Program{1, 12, 0, 0, 99}, patched)
	assert.Equal(Program{1, 0, 0, 0, 99}, prog)

	patched, err = prog.Patch(4, 5)
	assert.NoError(err)
	assert.Equal(Program{1, 0, 0, 0, 5}, patched)

	_, err = prog.Patch(-1, 5)
	assert.ErrorIs(err, ErrAddressNegative)

	_, err = prog.Patch(5, 5)
	assert.ErrorIs(err, ErrPatchRange)

	_, err = prog.Patch(math.MaxInt, 5)
	assert.ErrorIs(err, ErrPatchRange)

	_, err = Program{}.Patch(0, 1)
	assert.ErrorIs(err, ErrPatchRange)
}

func TestProgramFingerprint(t *testing.T) {
	assert := assert.New(t)

	a := Program{1, 0, 0, 0, 99}
	b := Program{1, 0, 0, 0, 99}
	c := Program{2, 0, 0, 0, 99}

	assert.Len(a.Fingerprint(), 16)
	assert.Equal(a.Fingerprint(), b.Fingerprint())
	assert.NotEqual(a.Fingerprint(), c.Fingerprint())
	assert.NotEqual(Program{}.Fingerprint(), Program{0}.Fingerprint())
}
