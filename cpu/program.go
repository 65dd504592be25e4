package cpu

import (
	"encoding/binary"
	"encoding/hex"
	"io"
	"slices"
	"strconv"
	"strings"

	"lukechampine.com/blake3"
)

// Program is an Intcode memory image. Address n holds Program[n].
type Program []int64

// ParseProgram parses comma separated decimal words.
// Leading and trailing whitespace is ignored; empty text is an empty program.
func ParseProgram(input io.Reader) (prog Program, err error) {
	text, err := io.ReadAll(input)
	if err != nil {
		return
	}

	return ParseProgramString(string(text))
}

// ParseProgramString parses comma separated decimal words from a string.
func ParseProgramString(text string) (prog Program, err error) {
	text = strings.TrimSpace(text)
	if len(text) == 0 {
		prog = Program{}
		return
	}

	tokens := strings.Split(text, ",")
	words := make(Program, 0, len(tokens))
	for n, token := range tokens {
		token = strings.TrimSpace(token)
		var value int64
		value, err = strconv.ParseInt(token, 10, 64)
		if err != nil {
			err = &ErrProgramParse{Index: n, Token: token, Err: err}
			return
		}
		words = append(words, value)
	}

	prog = words
	return
}

// String returns the program in comma separated form.
func (prog Program) String() string {
	words := make([]string, len(prog))
	for n, value := range prog {
		words[n] = strconv.FormatInt(value, 10)
	}
	return strings.Join(words, ",")
}

// Patch returns a copy of the program with the word at addr replaced.
// addr must be within the program image.
func (prog Program) Patch(addr int, value int64) (patched Program, err error) {
	switch {
	case addr < 0:
		err = ErrAddressNegative
		return
	case addr >= len(prog):
		err = ErrPatchRange
		return
	}

	patched = slices.Clone(prog)
	patched[addr] = value
	return
}

// Fingerprint returns a short hex digest identifying the program image.
func (prog Program) Fingerprint() string {
	buf := make([]byte, 0, len(prog)*8)
	for _, value := range prog {
		buf = binary.LittleEndian.AppendUint64(buf, uint64(value))
	}
	sum := blake3.Sum256(buf)
	return hex.EncodeToString(sum[:8])
}
