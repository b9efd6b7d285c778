// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package mips

import (
	"io"
	"log"
	"maps"
	"slices"
	"strings"
)

const (
	COMMENT          = "#"          // Starts a comment that runs to end of line.
	DEFAULT_STARTING = "0x00400000" // Conventional start of the text segment.
)

// Line is a normalized source line.
type Line struct {
	LineNo int    // 1-based line number in the original source.
	Text   string // Trimmed, comment stripped text.
}

// Normalize splits source into lines, strips comments and surrounding
// space, and drops lines left blank.
func Normalize(source string) (lines []Line) {
	for n, text := range strings.Split(source, "\n") {
		text, _, _ = strings.Cut(text, COMMENT)
		text = strings.TrimSpace(text)
		if len(text) == 0 {
			continue
		}
		lines = append(lines, Line{LineNo: n + 1, Text: text})
	}

	return
}

// Assembler is a two pass assembler for the R/I/J instruction subset.
type Assembler struct {
	Verbose      bool // If set, verbosely logs the assembler actions.
	StrictLabels bool // If set, a repeated label definition fails the run.

	predefine map[string]uint32 // Labels defined outside of the source.
}

// Predefine defines a label visible to every program, or redefines an
// existing one. A label defined in the source replaces it.
func (asm *Assembler) Predefine(label string, address uint32) {
	if asm.predefine == nil {
		asm.predefine = map[string]uint32{label: address}
	} else {
		asm.predefine[label] = address
	}
}

// Parse reads the whole input and assembles it.
func (asm *Assembler) Parse(input io.Reader, start string) (prog *Program, err error) {
	source, err := io.ReadAll(input)
	if err != nil {
		return
	}

	return asm.Assemble(string(source), start)
}

// Assemble assembles source with the first instruction at the starting
// address. A malformed starting address fails the whole run; any other
// failure is recorded in the Result of its line.
func (asm *Assembler) Assemble(source string, start string) (prog *Program, err error) {
	address, err := ParseAddress(start)
	if err != nil {
		return
	}

	lines := Normalize(source)

	lb := newLabelBuilder(asm.StrictLabels)
	for _, label := range slices.Sorted(maps.Keys(asm.predefine)) {
		lb.predefine(label, asm.predefine[label])
	}
	err = lb.scan(lines, address)
	if err != nil {
		return
	}

	prog = &Program{
		StartingAddress: address,
		Labels:          lb.Labels,
	}

	for _, line := range lines {
		if _, ok := LabelOf(line.Text); ok {
			continue
		}

		ctx := Context{
			StartingAddress: prog.StartingAddress,
			Address:         address,
			Labels:          prog.Labels,
		}

		result := Result{Line: line, Address: address}
		result.Instruction, err = ParseLine(line.Text, ctx)
		if err != nil {
			result.Instruction = nil
			result.Err = &ErrSyntax{LineNo: line.LineNo, Line: line.Text, Err: err}
			err = nil
		}

		if asm.Verbose {
			if result.Err != nil {
				log.Printf("%v: %v: %v\n", line.LineNo, Hex(address), result.Err)
			} else {
				log.Printf("%v: %v: %v %v\n", line.LineNo, Hex(address), result.Instruction.Base().Hex(), line.Text)
			}
		}

		prog.Results = append(prog.Results, result)
		address += 4
	}

	return
}

// Assemble assembles source with default settings, returning one entry per
// instruction line in source order. A line that failed to assemble has a
// nil entry.
func Assemble(source string, start string) (insts []Instruction, err error) {
	asm := &Assembler{}
	prog, err := asm.Assemble(source, start)
	if err != nil {
		return
	}

	insts = prog.Instructions()
	return
}
