package mips

import (
	"iter"
)

// Result is the outcome of assembling one instruction line.
type Result struct {
	Line        Line
	Address     uint32
	Instruction Instruction // nil if the line failed.
	Err         error
}

// Program is an assembled source.
type Program struct {
	StartingAddress uint32
	Labels          Labels
	Results         []Result
}

// Instructions returns the instruction of every result, in order, with nil
// for lines that failed.
func (prog *Program) Instructions() (insts []Instruction) {
	insts = make([]Instruction, len(prog.Results))
	for n, result := range prog.Results {
		insts[n] = result.Instruction
	}
	return
}

// Errors iterates over the failed lines.
func (prog *Program) Errors() iter.Seq2[Line, error] {
	return func(yield func(line Line, err error) bool) {
		for _, result := range prog.Results {
			if result.Err == nil {
				continue
			}
			if !yield(result.Line, result.Err) {
				return
			}
		}
	}
}

// Failed is true if any line failed to assemble.
func (prog *Program) Failed() bool {
	for range prog.Errors() {
		return true
	}
	return false
}

// Words iterates over the address and word of every assembled instruction.
func (prog *Program) Words() iter.Seq2[uint32, uint32] {
	return func(yield func(address uint32, word uint32) bool) {
		for _, result := range prog.Results {
			if result.Instruction == nil {
				continue
			}
			if !yield(result.Address, result.Instruction.Base().Word) {
				return
			}
		}
	}
}

// Binary returns the word of every line, in address order. Failed lines
// are zero, which is a no-op.
func (prog *Program) Binary() (bins []uint32) {
	bins = make([]uint32, len(prog.Results))
	for n, result := range prog.Results {
		if result.Instruction != nil {
			bins[n] = result.Instruction.Base().Word
		}
	}
	return
}

type Debug struct {
	*Result
	Index int
}

// Debug finds the result at the given address.
func (prog *Program) Debug(address uint32) (dbg Debug) {
	if address < prog.StartingAddress || (address-prog.StartingAddress)%4 != 0 {
		return
	}

	index := int((address - prog.StartingAddress) / 4)
	if index >= len(prog.Results) {
		return
	}

	dbg = Debug{
		Result: &prog.Results[index],
		Index:  index,
	}

	return
}
