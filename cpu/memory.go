package cpu

import (
	"iter"
	"maps"
	"slices"
)

// Memory is a sparse, unbounded store of signed 64-bit cells.
// Reading a cell that was never written returns zero.
type Memory struct {
	cells map[uint64]int64
}

// Read returns the value at an address.
func (mem *Memory) Read(addr uint64) (value int64) {
	value = mem.cells[addr]
	return
}

// Write sets the value at an address.
func (mem *Memory) Write(addr uint64, value int64) {
	if mem.cells == nil {
		mem.cells = make(map[uint64]int64)
	}
	mem.cells[addr] = value
}

// Reset discards all cells.
func (mem *Memory) Reset() {
	clear(mem.cells)
}

// Load replaces the memory contents with a program image.
func (mem *Memory) Load(prog Program) {
	mem.cells = make(map[uint64]int64, len(prog))
	for addr, value := range prog {
		mem.cells[uint64(addr)] = value
	}
}

// Len returns the number of cells that have been written.
func (mem *Memory) Len() int {
	return len(mem.cells)
}

// All returns an iterator over the written cells, in address order.
func (mem *Memory) All() iter.Seq2[uint64, int64] {
	return func(yield func(addr uint64, value int64) bool) {
		for _, addr := range slices.Sorted(maps.Keys(mem.cells)) {
			if !yield(addr, mem.cells[addr]) {
				return
			}
		}
	}
}
