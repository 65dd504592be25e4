// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"fmt"
	"io"
	"maps"
	"regexp"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
	"go.uber.org/zap"
)

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO":         "0",
	"OP_ADD":         fmt.Sprintf("%d", OP_ADD),
	"OP_MUL":         fmt.Sprintf("%d", OP_MUL),
	"OP_IN":          fmt.Sprintf("%d", OP_IN),
	"OP_OUT":         fmt.Sprintf("%d", OP_OUT),
	"OP_JT":          fmt.Sprintf("%d", OP_JT),
	"OP_JF":          fmt.Sprintf("%d", OP_JF),
	"OP_LT":          fmt.Sprintf("%d", OP_LT),
	"OP_EQ":          fmt.Sprintf("%d", OP_EQ),
	"OP_ARB":         fmt.Sprintf("%d", OP_ARB),
	"OP_HALT":        fmt.Sprintf("%d", OP_HALT),
	"MODE_POSITION":  fmt.Sprintf("%d", MODE_POSITION),
	"MODE_IMMEDIATE": fmt.Sprintf("%d", MODE_IMMEDIATE),
	"MODE_RELATIVE":  fmt.Sprintf("%d", MODE_RELATIVE),
}

// opcodeMap maps mnemonics to opcodes.
var opcodeMap = map[string]Opcode{}

func init() {
	for op := range maps.Keys(opcodeRoles) {
		opcodeMap[op.String()] = op
	}
}

const (
	MAX_EQUATE_DEPTH = 8 // Deepest chain of equates referring to equates.
)

var reLabel = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// statement is a line of source that generates words.
type statement struct {
	LineNo int
	Line   string
	Addr   int64
	Words  []string
}

// Assembler is a two pass assembler for the Intcode instruction set.
//
// Each line holds an optional 'label:', then either an instruction
// mnemonic with its operands, '.data' with a list of values, or
// '.equ NAME VALUE'. Operands are position mode by default, '#' prefixed
// for immediate mode and '@' prefixed for relative mode. Values are
// numbers, 'c' characters, labels, equates, or $(...) expressions.
type Assembler struct {
	Verbose bool        // If set, logs the assembler actions.
	Logger  *zap.Logger // Destination of verbose logs.

	predefine map[string]string // Predefines
	Label     map[string]int64  // Map of labels to addresses.
	Equate    map[string]string // Map of equates.
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// splitWords splits a line at blanks and commas, keeping $(...) intact.
func splitWords(line string) (words []string) {
	var word strings.Builder
	depth := 0
	flush := func() {
		if word.Len() > 0 {
			words = append(words, word.String())
			word.Reset()
		}
	}

	for n := 0; n < len(line); n++ {
		ch := line[n]
		if ch == '\'' && n+2 < len(line) && line[n+2] == '\'' {
			word.WriteString(line[n : n+3])
			n += 2
			continue
		}
		switch {
		case ch == '(' && depth > 0:
			depth++
		case ch == '(' && n > 0 && line[n-1] == '$':
			depth++
		case ch == ')' && depth > 0:
			depth--
		case depth == 0 && (ch == ' ' || ch == '\t' || ch == ','):
			flush()
			continue
		}
		word.WriteByte(ch)
	}
	flush()

	return
}

// valueOf returns the value of a simple word.
func (asm *Assembler) valueOf(word string) (value int64, err error) {
	return asm.valueOfDepth(word, 0)
}

func (asm *Assembler) valueOfDepth(word string, depth int) (value int64, err error) {
	if len(word) == 0 || depth > MAX_EQUATE_DEPTH {
		err = ErrParseNumber(word)
		return
	}

	if strings.HasPrefix(word, "$(") && strings.HasSuffix(word, ")") {
		return asm.parenEval(word[2:len(word)-1], depth+1)
	}

	if len(word) == 3 && word[0] == '\'' && word[2] == '\'' {
		value = int64(word[1])
		return
	}

	addr, ok := asm.Label[word]
	if ok {
		value = addr
		return
	}

	equate, ok := asm.Equate[word]
	if ok {
		return asm.valueOfDepth(equate, depth+1)
	}

	value, err = strconv.ParseInt(word, 0, 64)
	if err != nil {
		if reLabel.MatchString(word) {
			err = ErrLabelMissing(word)
		} else {
			err = ErrParseNumber(word)
		}
		return
	}

	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string, depth int) (value int64, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		var v64 int64
		v64, err = asm.valueOfDepth(str, depth+1)
		if err != nil {
			// Ignore non-integer equates.
			err = nil
			continue
		}
		pred[key] = starlark.MakeInt64(v64)
	}
	for key, addr := range asm.Label {
		pred[key] = starlark.MakeInt64(addr)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value, ok = st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	return
}

// operand encodes a single instruction operand as mode and raw value.
func (asm *Assembler) operand(word string, role Role) (mode Mode, raw int64, err error) {
	mode = MODE_POSITION
	switch word[0] {
	case '#':
		if role == ROLE_WRITE {
			err = ErrOperandImmediate
			return
		}
		mode = MODE_IMMEDIATE
		word = word[1:]
	case '@':
		mode = MODE_RELATIVE
		word = word[1:]
	}

	raw, err = asm.valueOf(word)
	return
}

// size returns the number of words a statement generates.
func (asm *Assembler) size(words []string) (size int64, err error) {
	if words[0] == ".data" {
		if len(words) < 2 {
			err = ErrDataMissing
			return
		}
		size = int64(len(words) - 1)
		return
	}

	op, ok := opcodeMap[words[0]]
	if !ok {
		err = ErrInstructionInvalid
		return
	}

	size = int64(op.Size())
	return
}

// encode generates the words of a statement.
func (asm *Assembler) encode(words []string) (codes []int64, err error) {
	if words[0] == ".data" {
		for _, word := range words[1:] {
			var value int64
			value, err = asm.valueOf(word)
			if err != nil {
				return
			}
			codes = append(codes, value)
		}
		return
	}

	op, ok := opcodeMap[words[0]]
	if !ok {
		err = ErrInstructionInvalid
		return
	}

	roles, _ := op.Roles()
	args := words[1:]
	if len(args) != len(roles) {
		err = ErrOperandCount
		return
	}

	modes := make([]Mode, len(roles))
	raws := make([]int64, len(roles))
	for n, role := range roles {
		modes[n], raws[n], err = asm.operand(args[n], role)
		if err != nil {
			err = argError(n, err)
			return
		}
	}

	codes = append(codes, int64(MakeCode(op, modes...)))
	codes = append(codes, raws...)

	return
}

// parseLine handles labels and equates, and records statements.
func (asm *Assembler) parseLine(line string, lineno int, addr int64) (stmt *statement, err error) {
	words := splitWords(line)

	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if words[0] == ".equ" {
		if len(words) != 3 || !reLabel.MatchString(words[1]) {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		return
	}

	for strings.HasSuffix(words[0], ":") {
		label := words[0][:len(words[0])-1]
		if !reLabel.MatchString(label) {
			err = ErrLabelInvalid
			return
		}
		_, ok := asm.Label[label]
		if ok {
			err = ErrLabelDuplicate
			return
		}

		asm.Label[label] = addr
		words = words[1:]
		if len(words) == 0 {
			return
		}
	}

	stmt = &statement{LineNo: lineno, Line: line, Addr: addr, Words: words}
	return
}

// Parse parses an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	asm.Label = make(map[string]int64, 16)
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	log := asm.Logger
	if log == nil {
		log = nopLogger
	}

	// First pass: assign addresses to labels.
	var stmts []*statement
	var addr int64
	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Debug("asm: line", zap.Int("lineno", lineno), zap.String("text", text))
		}

		line = strings.TrimSpace(strings.SplitN(text, ";", 2)[0])

		var stmt *statement
		stmt, err = asm.parseLine(line, lineno, addr)
		if err != nil {
			return
		}
		if stmt == nil {
			continue
		}

		var size int64
		size, err = asm.size(stmt.Words)
		if err != nil {
			return
		}
		addr += size
		stmts = append(stmts, stmt)
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	// Second pass: generate words.
	prog = make(Program, 0, addr)
	for _, stmt := range stmts {
		lineno = stmt.LineNo
		line = stmt.Line
		asm.Equate["LINENO"] = fmt.Sprintf("%d", lineno)

		var codes []int64
		codes, err = asm.encode(stmt.Words)
		if err != nil {
			prog = nil
			return
		}
		prog = append(prog, codes...)
	}

	return
}
