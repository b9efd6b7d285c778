package mips

import (
	"errors"

	"github.com/ezrec/mipsasm/translate"
)

var f = translate.From

var (
	// Operand errors
	ErrRegisterInvalid  = errors.New(f("register invalid"))
	ErrOperandMalformed = errors.New(f("operand malformed"))

	// Instruction errors
	ErrInstructionUnrecognized = errors.New(f("instruction unrecognized"))

	// Program errors
	ErrAddressInvalid = errors.New(f("address invalid"))
	ErrLabelDuplicate = errors.New(f("label duplicated"))
)

// ErrRegister names a register token that could not be resolved.
type ErrRegister string

func (err ErrRegister) Error() string {
	return f("register '%v' invalid", string(err))
}

func (err ErrRegister) Unwrap() error {
	return ErrRegisterInvalid
}

// ErrMnemonic names a mnemonic with no entry in the instruction tables.
type ErrMnemonic string

func (err ErrMnemonic) Error() string {
	return f("'%v' is not a recognized instruction", string(err))
}

func (err ErrMnemonic) Unwrap() error {
	return ErrInstructionUnrecognized
}

// ErrOperand is an operand list that does not fit the grammar of its mnemonic.
type ErrOperand struct {
	Mnemonic Mnemonic
	Operand  string
}

func (err ErrOperand) Error() string {
	return f("%v: operand '%v' malformed", err.Mnemonic.String(), err.Operand)
}

func (err ErrOperand) Unwrap() error {
	return ErrOperandMalformed
}

// ErrLabelMissing is a target that is neither a known label nor a literal.
type ErrLabelMissing string

func (err ErrLabelMissing) Error() string {
	return f("label %v missing", string(err))
}

func (err ErrLabelMissing) Unwrap() error {
	return ErrOperandMalformed
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

func (err ErrParseNumber) Unwrap() error {
	return ErrOperandMalformed
}

type ErrAddress string

func (err ErrAddress) Error() string {
	return f("'%v' is not a valid address", string(err))
}

func (err ErrAddress) Unwrap() error {
	return ErrAddressInvalid
}

// ErrOpcode is an instruction word that does not decode to a known mnemonic.
type ErrOpcode uint32

func (err ErrOpcode) Error() string {
	return f("word %v does not decode", Hex(uint32(err)))
}

func (err ErrOpcode) Unwrap() error {
	return ErrInstructionUnrecognized
}

// ErrSyntax locates an error on a source line.
type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}
