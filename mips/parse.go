package mips

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// Context is the assembly state visible to a single line.
type Context struct {
	StartingAddress uint32 // Address of the first instruction.
	Address         uint32 // Address of this instruction.
	Labels          Labels // Label table of the whole program.
}

var (
	reRegister = regexp.MustCompile(`^\$\w+$`)
	reTarget   = regexp.MustCompile(`^[^\s:(),$]+$`)
	reMemory   = regexp.MustCompile(`^(-?\w+)?\s*(?:\(\s*(\$\w+)\s*\))?$`)
)

// ParseNumber parses a decimal or `0x` prefixed hexadecimal integer with an
// optional leading minus sign.
func ParseNumber(text string) (value int64, err error) {
	digits, negative := strings.CutPrefix(text, "-")

	var u64 uint64
	if hex, ok := strings.CutPrefix(digits, "0x"); ok {
		u64, err = strconv.ParseUint(hex, 16, 64)
	} else {
		u64, err = strconv.ParseUint(digits, 10, 64)
	}
	if err != nil || u64 > math.MaxInt64 {
		err = ErrParseNumber(text)
		return
	}

	value = int64(u64)
	if negative {
		value = -value
	}

	return
}

// ParseAddress parses a starting address in decimal or `0x` hexadecimal.
func ParseAddress(text string) (address uint32, err error) {
	text = strings.TrimSpace(text)
	value, err := ParseNumber(text)
	if err != nil || value < 0 || value > math.MaxUint32 {
		err = ErrAddress(text)
		return
	}
	address = uint32(value)
	return
}

// resolve returns the address of a label, or the value of a literal.
func (ctx Context) resolve(token string) (value int64, err error) {
	address, ok := ctx.Labels.Lookup(token)
	if ok {
		value = int64(address)
		return
	}

	value, err = ParseNumber(token)
	if err != nil {
		err = ErrLabelMissing(token)
		return
	}

	return
}

// operands holds the comma separated operands of a line.
type operands struct {
	mnemonic Mnemonic
	args     []string
}

// register resolves the register operand at index n.
func (ops *operands) register(n int) (reg uint8, err error) {
	arg := ops.args[n]
	if !reRegister.MatchString(arg) {
		err = ErrOperand{Mnemonic: ops.mnemonic, Operand: arg}
		return
	}
	index, err := ResolveRegister(arg)
	if err != nil {
		return
	}
	reg = uint8(index)
	return
}

// registers resolves the register operands at the given indexes, in order.
func (ops *operands) registers(regs ...*uint8) (err error) {
	for n, reg := range regs {
		*reg, err = ops.register(n)
		if err != nil {
			return
		}
	}
	return
}

// isRegister is true if the operand at index n is written as a register.
func (ops *operands) isRegister(n int) bool {
	return reRegister.MatchString(ops.args[n])
}

// number parses the literal operand at index n.
func (ops *operands) number(n int) (value int64, err error) {
	arg := ops.args[n]
	if !reTarget.MatchString(arg) {
		err = ErrOperand{Mnemonic: ops.mnemonic, Operand: arg}
		return
	}
	return ParseNumber(arg)
}

// target resolves the label or literal operand at index n.
func (ops *operands) target(n int, ctx Context) (value int64, err error) {
	arg := ops.args[n]
	if !reTarget.MatchString(arg) {
		err = ErrOperand{Mnemonic: ops.mnemonic, Operand: arg}
		return
	}
	return ctx.resolve(arg)
}

// malformed reports the whole operand list as not fitting the grammar.
func (ops *operands) malformed() error {
	return ErrOperand{Mnemonic: ops.mnemonic, Operand: strings.Join(ops.args, ", ")}
}

// matcher parses the operands of the mnemonics it claims.
type matcher struct {
	claims func(mnemonic Mnemonic) bool
	parse  func(rec Record, ops *operands, ctx Context) (Instruction, error)
}

func claimsClass(classes ...Class) func(Mnemonic) bool {
	return func(mnemonic Mnemonic) bool {
		for _, class := range classes {
			if mnemonic.Class() == class {
				return true
			}
		}
		return false
	}
}

// matchers in priority order. The first matcher to claim a mnemonic parses
// the line; there is no fallback to later matchers.
var matchers = []matcher{
	{claimsClass(CLASS_REGISTER), parseRType},
	{claimsClass(CLASS_BRANCH, CLASS_ARITH), parseIType},
	{claimsClass(CLASS_MEMORY), parseITypeMemory},
	{claimsClass(CLASS_JUMP), parseJType},
}

// splitLine splits a line into its mnemonic and comma separated operands.
func splitLine(line string) (name string, args []string) {
	name, rest := line, ""
	if n := strings.IndexFunc(line, unicode.IsSpace); n >= 0 {
		name, rest = line[:n], strings.TrimSpace(line[n:])
	}

	if len(rest) == 0 {
		return
	}

	args = strings.Split(rest, ",")
	for n, arg := range args {
		args[n] = strings.TrimSpace(arg)
	}

	return
}

// ParseLine assembles a single normalized, non-label line.
func ParseLine(line string, ctx Context) (inst Instruction, err error) {
	name, args := splitLine(line)

	mnemonic, ok := LookupMnemonic(strings.ToLower(name))
	if !ok {
		err = ErrMnemonic(name)
		return
	}

	ops := &operands{mnemonic: mnemonic, args: args}
	for _, arg := range args {
		if len(arg) == 0 {
			err = ops.malformed()
			return
		}
	}

	rec := Record{
		Original: line,
		Mnemonic: mnemonic,
		Opcode:   mnemonic.Opcode(),
		Address:  ctx.Address,
	}

	for _, m := range matchers {
		if m.claims(mnemonic) {
			return m.parse(rec, ops, ctx)
		}
	}

	err = ErrMnemonic(name)
	return
}

// parseRType parses
//
//	op rd, rs, rt[, shamt]
//	op rd, rt
//	sll|srl rd, rt, shamt
//	jr rs
func parseRType(rec Record, ops *operands, ctx Context) (inst Instruction, err error) {
	r := &RType{Record: rec, Funct: rec.Mnemonic.Funct()}

	var shamt int64
	isShift := rec.Mnemonic == MNEMONIC_SLL || rec.Mnemonic == MNEMONIC_SRL

	switch {
	case len(ops.args) == 1 && rec.Mnemonic == MNEMONIC_JR:
		err = ops.registers(&r.Rs)
	case len(ops.args) == 2:
		err = ops.registers(&r.Rd, &r.Rt)
	case len(ops.args) == 3 && isShift && !ops.isRegister(2):
		err = ops.registers(&r.Rd, &r.Rt)
		if err == nil {
			shamt, err = ops.number(2)
		}
	case len(ops.args) == 3:
		err = ops.registers(&r.Rd, &r.Rs, &r.Rt)
	case len(ops.args) == 4:
		err = ops.registers(&r.Rd, &r.Rs, &r.Rt)
		if err == nil {
			shamt, err = ops.number(3)
		}
	default:
		err = ops.malformed()
	}
	if err != nil {
		return
	}

	r.Shamt = uint8(TwosComplement(shamt, SHAMT_WIDTH))
	r.Word = EncodeR(r.Rs, r.Rt, r.Rd, r.Shamt, r.Funct)

	inst = r
	return
}

// parseIType parses
//
//	branch rs, rt, target
//	branch rs, target
//	arith rt, rs, imm
//	arith rt, imm
//
// A branch target is a label or absolute address, encoded as the signed
// word distance from the instruction after the branch.
func parseIType(rec Record, ops *operands, ctx Context) (inst Instruction, err error) {
	i := &IType{Record: rec}

	branch := rec.Mnemonic.Class() == CLASS_BRANCH

	var value int64
	last := len(ops.args) - 1
	switch {
	case branch && len(ops.args) == 3:
		err = ops.registers(&i.Rs, &i.Rt)
	case branch && len(ops.args) == 2:
		err = ops.registers(&i.Rs)
	case len(ops.args) == 3:
		err = ops.registers(&i.Rt, &i.Rs)
	case len(ops.args) == 2:
		err = ops.registers(&i.Rt)
	default:
		err = ops.malformed()
	}
	if err != nil {
		return
	}

	if branch {
		value, err = ops.target(last, ctx)
		if err != nil {
			return
		}
		value = (value - (int64(ctx.Address) + 4)) / 4
	} else {
		value, err = ops.number(last)
		if err != nil {
			return
		}
	}

	i.Immediate = uint16(TwosComplement(value, IMMEDIATE_WIDTH))
	i.Word = EncodeI(i.Opcode, i.Rs, i.Rt, i.Immediate)

	inst = i
	return
}

// parseITypeMemory parses
//
//	op rt, offset(rs)
//	op rt, (rs)
//	op rt, offset
func parseITypeMemory(rec Record, ops *operands, ctx Context) (inst Instruction, err error) {
	i := &IType{Record: rec}

	if len(ops.args) != 2 {
		err = ops.malformed()
		return
	}

	err = ops.registers(&i.Rt)
	if err != nil {
		return
	}

	match := reMemory.FindStringSubmatch(ops.args[1])
	if match == nil {
		err = ErrOperand{Mnemonic: rec.Mnemonic, Operand: ops.args[1]}
		return
	}

	var offset int64
	if len(match[1]) != 0 {
		offset, err = ParseNumber(match[1])
		if err != nil {
			return
		}
	}

	// An omitted base is register 0.
	base, err := ResolveRegister(match[2])
	if err != nil {
		return
	}
	i.Rs = uint8(base)

	i.Immediate = uint16(TwosComplement(offset, IMMEDIATE_WIDTH))
	i.Word = EncodeI(i.Opcode, i.Rs, i.Rt, i.Immediate)

	inst = i
	return
}

// parseJType parses
//
//	op target
//
// where target is a label or absolute address.
func parseJType(rec Record, ops *operands, ctx Context) (inst Instruction, err error) {
	j := &JType{Record: rec}

	if len(ops.args) != 1 {
		err = ops.malformed()
		return
	}

	target, err := ops.target(0, ctx)
	if err != nil {
		return
	}

	j.Target = uint32(target)
	j.Word = EncodeJ(j.Opcode, j.Target)

	inst = j
	return
}
