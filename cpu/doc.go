// Package cpu implements the Intcode interpreter and assembler.
//
// The interpreter has no registers: it consists of an instruction pointer,
// a relative base, a sparse memory of signed 64-bit cells, and FIFO input
// and output queues. Execution suspends whenever an output is produced, or
// when an input is required but none is queued, so that callers may
// interleave several interpreters.
//
// The assembler provides a small assembly language for the Intcode
// instruction set, supporting labels, equates, and compile-time
// expression evaluation.
package cpu
