package mips

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func testLabels(labels map[string]uint32) Labels {
	lb := newLabelBuilder(false)
	for label, address := range labels {
		lb.predefine(label, address)
	}
	return lb.Labels
}

func TestParseLine_Add(t *testing.T) {
	assert := assert.New(t)

	line := "add $t0, $t1, $t2"
	ctx := Context{StartingAddress: 0x00400000, Address: 0x00400000}

	inst, err := ParseLine(line, ctx)
	assert.NoError(err)

	expected := &RType{
		Record: Record{Original: line, Mnemonic: MNEMONIC_ADD, Opcode: 0, Address: 0x00400000, Word: 0x012a4020},
		Rs:     9, Rt: 10, Rd: 8, Shamt: 0, Funct: 32,
	}
	assert.Equal(expected, inst)
	assert.Equal(FORMAT_R, inst.Format())
	assert.Equal("0x012a4020", inst.Base().Hex())
}

func TestParseLine_Sub(t *testing.T) {
	assert := assert.New(t)

	line := "sub $t0, $t1, $t2"
	inst, err := ParseLine(line, Context{StartingAddress: 0x00400000, Address: 0x00400004})
	assert.NoError(err)

	expected := &RType{
		Record: Record{Original: line, Mnemonic: MNEMONIC_SUB, Address: 0x00400004, Word: 0x012a4022},
		Rs:     9, Rt: 10, Rd: 8, Funct: 34,
	}
	assert.Equal(expected, inst)
}

func TestParseLine_J(t *testing.T) {
	assert := assert.New(t)

	line := "j L1"
	ctx := Context{
		StartingAddress: 0x00400000,
		Address:         0x00400008,
		Labels:          testLabels(map[string]uint32{"L1": 0x00400000}),
	}

	inst, err := ParseLine(line, ctx)
	assert.NoError(err)

	expected := &JType{
		Record: Record{Original: line, Mnemonic: MNEMONIC_J, Opcode: 2, Address: 0x00400008, Word: 0x08100000},
		Target: 0x00400000,
	}
	assert.Equal(expected, inst)
	assert.Equal(FORMAT_J, inst.Format())
	assert.Equal("0x08100000", inst.Base().Hex())
}

func TestParseLine_BeqBackward(t *testing.T) {
	assert := assert.New(t)

	line := "beq $t0, $t1, L1"
	ctx := Context{
		StartingAddress: 0x00400000,
		Address:         0x00400010,
		Labels:          testLabels(map[string]uint32{"L1": 0x00400000}),
	}

	inst, err := ParseLine(line, ctx)
	assert.NoError(err)

	expected := &IType{
		Record:    Record{Original: line, Mnemonic: MNEMONIC_BEQ, Opcode: 4, Address: 0x00400010, Word: 0x1109fffb},
		Rs:        8,
		Rt:        9,
		Immediate: 0xfffb,
	}
	assert.Equal(expected, inst)
	assert.Equal(int16(-5), inst.(*IType).Offset())
	assert.Equal("0x1109fffb", inst.Base().Hex())
}

func TestParseLine_BeqzForward(t *testing.T) {
	assert := assert.New(t)

	line := "beqz $a1, L1"
	ctx := Context{
		StartingAddress: 0x00400000,
		Address:         0x0040000c,
		Labels:          testLabels(map[string]uint32{"L1": 0x0040000c + 8}),
	}

	inst, err := ParseLine(line, ctx)
	assert.NoError(err)

	expected := &IType{
		Record:    Record{Original: line, Mnemonic: MNEMONIC_BEQZ, Opcode: 4, Address: 0x0040000c, Word: 0x10a00001},
		Rs:        5,
		Rt:        0,
		Immediate: 1,
	}
	assert.Equal(expected, inst)
	assert.Equal(int16(1), inst.(*IType).Offset())
}

func TestParseLine_Memory(t *testing.T) {
	assert := assert.New(t)

	ctx := Context{StartingAddress: 0x00400000, Address: 0x00400014}

	inst, err := ParseLine("lw $s0, 10($s1)", ctx)
	assert.NoError(err)
	assert.Equal(&IType{
		Record: Record{Original: "lw $s0, 10($s1)", Mnemonic: MNEMONIC_LW, Opcode: 35, Address: 0x00400014, Word: 0x8e30000a},
		Rs:     17, Rt: 16, Immediate: 10,
	}, inst)

	inst, err = ParseLine("sw $s0, 10($s1)", ctx)
	assert.NoError(err)
	assert.Equal(uint32(0xae30000a), inst.Base().Word)

	inst, err = ParseLine("lw $s0, ($s1)", ctx)
	assert.NoError(err)
	assert.Equal(uint32(0x8e300000), inst.Base().Word)
	assert.Equal(uint16(0), inst.(*IType).Immediate)
}

func TestParseLine_Words(t *testing.T) {
	assert := assert.New(t)

	ctx := Context{
		StartingAddress: 0x00400000,
		Address:         0x00400000,
		Labels:          testLabels(map[string]uint32{"next": 0x00400004, "far": 0x00400010}),
	}

	table := []struct {
		line string
		word uint32
	}{
		{"jr $ra", 0x03e00008},
		{"sll $t0, $t1, 4", 0x00094100},
		{"srl $t0, $t1, -1", 0x000947c1},
		{"add $t0, $t1", 0x00094020},
		{"add $t0, $t1, $t2, 3", 0x012a40e0},
		{"add $8, $9, $10", 0x012a4020},
		{"ADD $t0, $t1, $t2", 0x012a4020},
		{"add\t$t0,$t1,$t2", 0x012a4020},
		{"and $t0, $t1, $t2", 0x012a4024},
		{"or $t0, $t1, $t2", 0x012a4025},
		{"slt $t0, $t1, $t2", 0x012a402a},
		{"addi $t0, $t1, -1", 0x2128ffff},
		{"addi $t0, $t1, 0x12345", 0x21282345},
		{"lui $t0, 0x1234", 0x3c081234},
		{"ori $t0, $t0, 0xff", 0x350800ff},
		{"andi $t0, $t0, 255", 0x310800ff},
		{"slti $t0, $t1, 1", 0x29280001},
		{"beq $t0, $t1, next", 0x11090000},
		{"bne $t0, $zero, far", 0x15000003},
		{"blez $t0, far", 0x19000003},
		{"bgtz $t0, 0x00400000", 0x1d00ffff},
		{"sw $t0, -4($sp)", 0xafa8fffc},
		{"lb $t0, 8", 0x80080008},
		{"lbu $t0, 0x10 ( $a0 )", 0x90880010},
		{"swr $t0, 0($t1)", 0xb9280000},
		{"j far", 0x08100004},
		{"jal 0x00400010", 0x0c100004},
		{"jal 4194320", 0x0c100004},
	}

	for _, entry := range table {
		inst, err := ParseLine(entry.line, ctx)
		assert.NoError(err, entry.line)
		if err != nil {
			continue
		}
		assert.Equal(Hex(entry.word), inst.Base().Hex(), entry.line)
		assert.Equal(entry.line, inst.Base().Original)

		// Field round trip through the encoded word.
		assert.Equal(inst.Base().Word, inst.Fields().Encode(inst.Format()), entry.line)
		decoded := Decode(inst.Base().Word)
		fields := inst.Fields()
		assert.Equal(fields.Opcode, decoded.Opcode, entry.line)
		switch inst.Format() {
		case FORMAT_R:
			assert.Equal(fields, Fields{Rs: decoded.Rs, Rt: decoded.Rt, Rd: decoded.Rd, Shamt: decoded.Shamt, Funct: decoded.Funct}, entry.line)
		case FORMAT_I:
			assert.Equal(fields, Fields{Opcode: decoded.Opcode, Rs: decoded.Rs, Rt: decoded.Rt, Immediate: decoded.Immediate}, entry.line)
		case FORMAT_J:
			assert.Equal(fields, Fields{Opcode: decoded.Opcode, Index: decoded.Index}, entry.line)
		}
	}
}

func TestParseLine_BranchDirection(t *testing.T) {
	assert := assert.New(t)

	labels := testLabels(map[string]uint32{"back": 0x00400000, "fwd": 0x00400040})
	ctx := Context{StartingAddress: 0x00400000, Address: 0x00400020, Labels: labels}

	inst, err := ParseLine("bne $t0, $t1, back", ctx)
	assert.NoError(err)
	assert.True(inst.(*IType).Offset() < 0)
	assert.Equal(uint16(0x8000), inst.(*IType).Immediate&0x8000)

	inst, err = ParseLine("bne $t0, $t1, fwd", ctx)
	assert.NoError(err)
	assert.True(inst.(*IType).Offset() > 0)
	assert.Equal(int16(7), inst.(*IType).Offset())
}

func TestParseLine_Errors(t *testing.T) {
	assert := assert.New(t)

	ctx := Context{
		StartingAddress: 0x00400000,
		Address:         0x00400000,
		Labels:          testLabels(map[string]uint32{"L1": 0x00400000}),
	}

	table := []struct {
		line string
		err  error
	}{
		{"foo $t0, $t1, $t2", ErrInstructionUnrecognized},
		{"nop", ErrInstructionUnrecognized},
		{"L1:", ErrInstructionUnrecognized},
		{"add $t0, $t1, $t99", ErrRegisterInvalid},
		{"add $t0, $t1, $zed", ErrRegisterInvalid},
		{"lw $t0, 4($t10)", ErrRegisterInvalid},
		{"add", ErrOperandMalformed},
		{"add $t0", ErrOperandMalformed},
		{"add $t0, $t1, 5", ErrOperandMalformed},
		{"add t0, t1, t2", ErrOperandMalformed},
		{"add $t0, , $t1", ErrOperandMalformed},
		{"add $t0, $t1, $t2, $t3", ErrOperandMalformed},
		{"add $t0, $t1, $t2, 1, 2", ErrOperandMalformed},
		{"jr", ErrOperandMalformed},
		{"j", ErrOperandMalformed},
		{"j nowhere", ErrOperandMalformed},
		{"j L1, L1", ErrOperandMalformed},
		{"j $t0", ErrOperandMalformed},
		{"beq $t0, $t1, nowhere", ErrOperandMalformed},
		{"beq $t0", ErrOperandMalformed},
		{"beq $t0, $t1, $t2, L1", ErrOperandMalformed},
		{"addi $t0, $t1, L1", ErrOperandMalformed},
		{"addi $t0, $t1, 0xzz", ErrOperandMalformed},
		{"addi $t0, $t1, 99999999999999999999", ErrOperandMalformed},
		{"lw $t0, 10($t1", ErrOperandMalformed},
		{"lw $t0, x($t1)", ErrOperandMalformed},
		{"lw $t0", ErrOperandMalformed},
		{"lw $t0, 4($t1), 5", ErrOperandMalformed},
		{"lw 4($t1), $t0", ErrOperandMalformed},
	}

	for _, entry := range table {
		inst, err := ParseLine(entry.line, ctx)
		assert.Nil(inst, entry.line)
		assert.ErrorIs(err, entry.err, entry.line)
	}

	_, err := ParseLine("j nowhere", ctx)
	var el ErrLabelMissing
	if assert.True(errors.As(err, &el)) {
		assert.Equal("nowhere", string(el))
	}

	_, err = ParseLine("foo $t0", ctx)
	var em ErrMnemonic
	if assert.True(errors.As(err, &em)) {
		assert.Equal("foo", string(em))
	}
}

func TestParseNumber(t *testing.T) {
	assert := assert.New(t)

	table := map[string]int64{
		"0":          0,
		"10":         10,
		"-10":        -10,
		"0x10":       16,
		"-0x10":      -16,
		"0xffffffff": 0xffffffff,
		"010":        10,
	}

	for text, expected := range table {
		value, err := ParseNumber(text)
		assert.NoError(err, text)
		assert.Equal(expected, value, text)
	}

	for _, text := range []string{"", "-", "0x", "+1", "0b101", "1_000", "abc", "0X10", "9223372036854775808"} {
		_, err := ParseNumber(text)
		assert.ErrorIs(err, ErrOperandMalformed, text)
	}
}

func TestParseAddress(t *testing.T) {
	assert := assert.New(t)

	address, err := ParseAddress("0x00400000")
	assert.NoError(err)
	assert.Equal(uint32(0x00400000), address)

	address, err = ParseAddress(" 4096 ")
	assert.NoError(err)
	assert.Equal(uint32(4096), address)

	address, err = ParseAddress("0xffffffff")
	assert.NoError(err)
	assert.Equal(uint32(0xffffffff), address)

	for _, text := range []string{"", "start", "-4", "0x100000000", "0x", "12ab"} {
		_, err = ParseAddress(text)
		assert.ErrorIs(err, ErrAddressInvalid, text)
	}
}
