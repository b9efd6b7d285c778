// Package listing renders an assembled program as a text listing.
package listing

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/ezrec/mipsasm/mips"
	"github.com/ezrec/mipsasm/translate"
)

var f = translate.From

// Options control the listing layout.
type Options struct {
	Fields bool // Show the decoded fields of every instruction.
	Width  int  // Truncate source text to this many columns, if positive.
}

// labelsAt groups label names by address, in definition order.
func labelsAt(prog *mips.Program) map[uint32][]string {
	at := make(map[uint32][]string, prog.Labels.Len())
	for label, address := range prog.Labels.All() {
		at[address] = append(at[address], label)
	}
	return at
}

// truncate shortens text to width runes.
func truncate(text string, width int) string {
	runes := []rune(text)
	if width <= 0 || len(runes) <= width {
		return text
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}

// Fields describes the per-format fields of an instruction.
func Fields(inst mips.Instruction) string {
	switch inst := inst.(type) {
	case *mips.RType:
		return fmt.Sprintf("R op=%d rs=%d rt=%d rd=%d shamt=%d funct=%d",
			inst.Opcode, inst.Rs, inst.Rt, inst.Rd, inst.Shamt, inst.Funct)
	case *mips.IType:
		return fmt.Sprintf("I op=%d rs=%d rt=%d imm=0x%04x",
			inst.Opcode, inst.Rs, inst.Rt, inst.Immediate)
	case *mips.JType:
		return fmt.Sprintf("J op=%d target=%v", inst.Opcode, mips.Hex(inst.Target))
	}
	return ""
}

// Write renders every label and result of prog to w.
func Write(w io.Writer, prog *mips.Program, opts Options) (err error) {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)

	at := labelsAt(prog)

	for _, result := range prog.Results {
		for _, label := range at[result.Address] {
			_, err = fmt.Fprintf(tw, "%v\t\t%v:\n", mips.Hex(result.Address), label)
			if err != nil {
				return
			}
		}
		delete(at, result.Address)

		text := truncate(result.Line.Text, opts.Width)
		if result.Err != nil {
			_, err = fmt.Fprintf(tw, "%v\t%v\t    %v\t%v\n", mips.Hex(result.Address), "??????????", text, f("error: %v", result.Err))
		} else if opts.Fields {
			_, err = fmt.Fprintf(tw, "%v\t%v\t    %v\t%v\n", mips.Hex(result.Address), result.Instruction.Base().Hex(), text, Fields(result.Instruction))
		} else {
			_, err = fmt.Fprintf(tw, "%v\t%v\t    %v\n", mips.Hex(result.Address), result.Instruction.Base().Hex(), text)
		}
		if err != nil {
			return
		}
	}

	// Labels past the last instruction.
	end := prog.StartingAddress + 4*uint32(len(prog.Results))
	for _, label := range at[end] {
		_, err = fmt.Fprintf(tw, "%v\t\t%v:\n", mips.Hex(end), label)
		if err != nil {
			return
		}
	}

	err = tw.Flush()
	return
}
