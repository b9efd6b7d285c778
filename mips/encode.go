package mips

import (
	"fmt"
	"strings"
)

const (
	OPCODE_SHIFT = 26
	RS_SHIFT     = 21
	RT_SHIFT     = 16
	RD_SHIFT     = 11
	SHAMT_SHIFT  = 6

	OPCODE_MASK     = 0x3f
	REGISTER_MASK   = 0x1f
	SHAMT_MASK      = 0x1f
	FUNCT_MASK      = 0x3f
	IMMEDIATE_MASK  = 0xffff
	JUMP_INDEX_MASK = 0x3ffffff

	SHAMT_WIDTH     = 5
	IMMEDIATE_WIDTH = 16
)

// Fields are the bit fields of an instruction word. Which fields are
// meaningful depends on the format selected by Opcode.
type Fields struct {
	Opcode    uint8
	Rs        uint8
	Rt        uint8
	Rd        uint8
	Shamt     uint8
	Funct     uint8
	Immediate uint16
	Index     uint32 // 26-bit word index of a jump target.
}

// TwosComplement truncates value to its two's complement representation
// in width bits. Values that do not fit are masked, never rejected.
func TwosComplement(value int64, width uint) uint32 {
	return uint32(uint64(value) & ((uint64(1) << width) - 1))
}

// EncodeR packs a register format word. The opcode is always 0.
func EncodeR(rs, rt, rd, shamt, funct uint8) uint32 {
	return (uint32(rs&REGISTER_MASK) << RS_SHIFT) |
		(uint32(rt&REGISTER_MASK) << RT_SHIFT) |
		(uint32(rd&REGISTER_MASK) << RD_SHIFT) |
		(uint32(shamt&SHAMT_MASK) << SHAMT_SHIFT) |
		uint32(funct&FUNCT_MASK)
}

// EncodeI packs an immediate format word.
func EncodeI(opcode, rs, rt uint8, immediate uint16) uint32 {
	return (uint32(opcode&OPCODE_MASK) << OPCODE_SHIFT) |
		(uint32(rs&REGISTER_MASK) << RS_SHIFT) |
		(uint32(rt&REGISTER_MASK) << RT_SHIFT) |
		uint32(immediate)
}

// EncodeJ packs a jump format word from an absolute byte address.
func EncodeJ(opcode uint8, target uint32) uint32 {
	return (uint32(opcode&OPCODE_MASK) << OPCODE_SHIFT) |
		((target >> 2) & JUMP_INDEX_MASK)
}

// Encode packs the fields of the given format.
func (fields Fields) Encode(format Format) uint32 {
	switch format {
	case FORMAT_R:
		return EncodeR(fields.Rs, fields.Rt, fields.Rd, fields.Shamt, fields.Funct)
	case FORMAT_I:
		return EncodeI(fields.Opcode, fields.Rs, fields.Rt, fields.Immediate)
	default:
		return EncodeJ(fields.Opcode, fields.Index<<2)
	}
}

// Decode extracts every bit field from an instruction word.
func Decode(word uint32) (fields Fields) {
	fields.Opcode = uint8((word >> OPCODE_SHIFT) & OPCODE_MASK)
	fields.Rs = uint8((word >> RS_SHIFT) & REGISTER_MASK)
	fields.Rt = uint8((word >> RT_SHIFT) & REGISTER_MASK)
	fields.Rd = uint8((word >> RD_SHIFT) & REGISTER_MASK)
	fields.Shamt = uint8((word >> SHAMT_SHIFT) & SHAMT_MASK)
	fields.Funct = uint8(word & FUNCT_MASK)
	fields.Immediate = uint16(word & IMMEDIATE_MASK)
	fields.Index = word & JUMP_INDEX_MASK
	return
}

// Hex renders a word as `0x` and eight lowercase hex digits.
func Hex(word uint32) string {
	return fmt.Sprintf("0x%08x", word)
}

// Disassemble renders word, located at address, as source text that
// assembles back to the same word at the same address.
func Disassemble(word uint32, address uint32) (text string, err error) {
	fields := Decode(word)

	var mnemonic Mnemonic
	var ok bool
	if fields.Opcode == 0 {
		mnemonic, ok = decodeFunct[fields.Funct]
	} else {
		mnemonic, ok = decodeOpcode[fields.Opcode]
	}
	if !ok {
		err = ErrOpcode(word)
		return
	}

	reg := func(index uint8) string { return RegisterName(int(index)) }

	var args []string
	switch mnemonic.Class() {
	case CLASS_REGISTER:
		switch {
		case mnemonic == MNEMONIC_JR && fields.Rt == 0 && fields.Rd == 0 && fields.Shamt == 0:
			args = []string{reg(fields.Rs)}
		case (mnemonic == MNEMONIC_SLL || mnemonic == MNEMONIC_SRL) && fields.Rs == 0:
			args = []string{reg(fields.Rd), reg(fields.Rt), fmt.Sprintf("%d", fields.Shamt)}
		case fields.Shamt != 0:
			args = []string{reg(fields.Rd), reg(fields.Rs), reg(fields.Rt), fmt.Sprintf("%d", fields.Shamt)}
		default:
			args = []string{reg(fields.Rd), reg(fields.Rs), reg(fields.Rt)}
		}
	case CLASS_BRANCH:
		target := address + 4 + uint32(int32(int16(fields.Immediate))*4)
		args = []string{reg(fields.Rs), reg(fields.Rt), Hex(target)}
	case CLASS_ARITH:
		args = []string{reg(fields.Rt), reg(fields.Rs), fmt.Sprintf("%d", int16(fields.Immediate))}
	case CLASS_MEMORY:
		args = []string{reg(fields.Rt), fmt.Sprintf("%d(%v)", int16(fields.Immediate), reg(fields.Rs))}
	case CLASS_JUMP:
		target := ((address + 4) & 0xf0000000) | (fields.Index << 2)
		args = []string{Hex(target)}
	}

	text = mnemonic.String() + " " + strings.Join(args, ", ")
	return
}
