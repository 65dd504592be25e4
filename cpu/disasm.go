package cpu

import (
	"fmt"
	"iter"
	"strings"
)

// Disassemble returns an iterator of the assembler text of a program,
// keyed by address. Words that do not decode as a complete instruction
// are rendered as '.data'.
//
// Intcode does not separate code and data, so the listing is only a
// guess: it follows instructions in address order.
func Disassemble(prog Program) iter.Seq2[uint64, string] {
	return func(yield func(addr uint64, text string) bool) {
		for addr := 0; addr < len(prog); {
			code := Code(prog[addr])
			layout, err := code.Layout()
			size := 1 + len(layout.Roles)
			if err != nil || addr+size > len(prog) {
				if !yield(uint64(addr), fmt.Sprintf(".data %d", prog[addr])) {
					return
				}
				addr++
				continue
			}

			words := []string{layout.Opcode.String()}
			for n := range layout.Roles {
				param := Parameter{Mode: layout.Modes[n], Raw: prog[addr+1+n]}
				words = append(words, param.String())
			}

			if !yield(uint64(addr), strings.Join(words, " ")) {
				return
			}
			addr += size
		}
	}
}
