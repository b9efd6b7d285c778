package mips

// Format is an instruction encoding format.
type Format int

//go:generate go tool stringer -linecomment -type=Format
const (
	FORMAT_R = Format(0) // R
	FORMAT_I = Format(1) // I
	FORMAT_J = Format(2) // J
)

// Class groups mnemonics that share an operand grammar.
type Class int

//go:generate go tool stringer -linecomment -type=Class
const (
	CLASS_REGISTER = Class(0) // register
	CLASS_BRANCH   = Class(1) // branch
	CLASS_ARITH    = Class(2) // arith
	CLASS_MEMORY   = Class(3) // memory
	CLASS_JUMP     = Class(4) // jump
)

// Format returns the encoding format used by the class.
func (class Class) Format() Format {
	switch class {
	case CLASS_REGISTER:
		return FORMAT_R
	case CLASS_JUMP:
		return FORMAT_J
	default:
		return FORMAT_I
	}
}

// Mnemonic is an instruction mnemonic.
type Mnemonic int

const (
	// R format
	MNEMONIC_SLL = Mnemonic(iota)
	MNEMONIC_SRL
	MNEMONIC_JR
	MNEMONIC_ADD
	MNEMONIC_SUB
	MNEMONIC_AND
	MNEMONIC_OR
	MNEMONIC_SLT

	// I format, branches
	MNEMONIC_BEQ
	MNEMONIC_BEQZ
	MNEMONIC_BNE
	MNEMONIC_BLEZ
	MNEMONIC_BGTZ

	// I format, arithmetic
	MNEMONIC_ADDI
	MNEMONIC_SLTI
	MNEMONIC_SUBI
	MNEMONIC_ANDI
	MNEMONIC_ORI
	MNEMONIC_LUI

	// I format, memory
	MNEMONIC_LB
	MNEMONIC_LH
	MNEMONIC_LWL
	MNEMONIC_LW
	MNEMONIC_LBU
	MNEMONIC_LHU
	MNEMONIC_LWR
	MNEMONIC_SB
	MNEMONIC_SH
	MNEMONIC_SWL
	MNEMONIC_SW
	MNEMONIC_SWR

	// J format
	MNEMONIC_J
	MNEMONIC_JAL

	MNEMONIC_COUNT
)

type mnemonicInfo struct {
	name   string
	class  Class
	opcode uint8
	funct  uint8
}

// mnemonicTable is indexed by Mnemonic.
var mnemonicTable = [MNEMONIC_COUNT]mnemonicInfo{
	MNEMONIC_SLL: {"sll", CLASS_REGISTER, 0, 0},
	MNEMONIC_SRL: {"srl", CLASS_REGISTER, 0, 1},
	MNEMONIC_JR:  {"jr", CLASS_REGISTER, 0, 8},
	MNEMONIC_ADD: {"add", CLASS_REGISTER, 0, 32},
	MNEMONIC_SUB: {"sub", CLASS_REGISTER, 0, 34},
	MNEMONIC_AND: {"and", CLASS_REGISTER, 0, 36},
	MNEMONIC_OR:  {"or", CLASS_REGISTER, 0, 37},
	MNEMONIC_SLT: {"slt", CLASS_REGISTER, 0, 42},

	MNEMONIC_BEQ:  {"beq", CLASS_BRANCH, 4, 0},
	MNEMONIC_BEQZ: {"beqz", CLASS_BRANCH, 4, 0},
	MNEMONIC_BNE:  {"bne", CLASS_BRANCH, 5, 0},
	MNEMONIC_BLEZ: {"blez", CLASS_BRANCH, 6, 0},
	MNEMONIC_BGTZ: {"bgtz", CLASS_BRANCH, 7, 0},

	MNEMONIC_ADDI: {"addi", CLASS_ARITH, 8, 0},
	MNEMONIC_SLTI: {"slti", CLASS_ARITH, 10, 0},
	MNEMONIC_SUBI: {"subi", CLASS_ARITH, 10, 0},
	MNEMONIC_ANDI: {"andi", CLASS_ARITH, 12, 0},
	MNEMONIC_ORI:  {"ori", CLASS_ARITH, 13, 0},
	MNEMONIC_LUI:  {"lui", CLASS_ARITH, 15, 0},

	MNEMONIC_LB:  {"lb", CLASS_MEMORY, 32, 0},
	MNEMONIC_LH:  {"lh", CLASS_MEMORY, 33, 0},
	MNEMONIC_LWL: {"lwl", CLASS_MEMORY, 34, 0},
	MNEMONIC_LW:  {"lw", CLASS_MEMORY, 35, 0},
	MNEMONIC_LBU: {"lbu", CLASS_MEMORY, 36, 0},
	MNEMONIC_LHU: {"lhu", CLASS_MEMORY, 37, 0},
	MNEMONIC_LWR: {"lwr", CLASS_MEMORY, 38, 0},
	MNEMONIC_SB:  {"sb", CLASS_MEMORY, 40, 0},
	MNEMONIC_SH:  {"sh", CLASS_MEMORY, 41, 0},
	MNEMONIC_SWL: {"swl", CLASS_MEMORY, 42, 0},
	MNEMONIC_SW:  {"sw", CLASS_MEMORY, 43, 0},
	MNEMONIC_SWR: {"swr", CLASS_MEMORY, 46, 0},

	MNEMONIC_J:   {"j", CLASS_JUMP, 2, 0},
	MNEMONIC_JAL: {"jal", CLASS_JUMP, 3, 0},
}

// mnemonicMap maps mnemonic names to mnemonics.
var mnemonicMap = func() map[string]Mnemonic {
	names := make(map[string]Mnemonic, MNEMONIC_COUNT)
	for n, info := range mnemonicTable {
		names[info.name] = Mnemonic(n)
	}
	return names
}()

// LookupMnemonic finds the mnemonic with the given name.
func LookupMnemonic(name string) (mnemonic Mnemonic, ok bool) {
	mnemonic, ok = mnemonicMap[name]
	return
}

// Valid is true for mnemonics in the instruction table.
func (mnemonic Mnemonic) Valid() bool {
	return mnemonic >= 0 && mnemonic < MNEMONIC_COUNT
}

func (mnemonic Mnemonic) String() string {
	if !mnemonic.Valid() {
		return "?"
	}
	return mnemonicTable[mnemonic].name
}

// Class returns the operand grammar class of the mnemonic.
func (mnemonic Mnemonic) Class() Class {
	return mnemonicTable[mnemonic].class
}

// Format returns the encoding format of the mnemonic.
func (mnemonic Mnemonic) Format() Format {
	return mnemonic.Class().Format()
}

// Opcode returns the 6-bit primary opcode. R format mnemonics have opcode 0.
func (mnemonic Mnemonic) Opcode() uint8 {
	return mnemonicTable[mnemonic].opcode
}

// Funct returns the 6-bit function code of an R format mnemonic.
func (mnemonic Mnemonic) Funct() uint8 {
	return mnemonicTable[mnemonic].funct
}

// decodeOpcode and decodeFunct select the mnemonic used when disassembling
// an I or J format opcode, or an R format funct. The first table entry wins.
var decodeOpcode, decodeFunct = func() (opcodes map[uint8]Mnemonic, functs map[uint8]Mnemonic) {
	opcodes = make(map[uint8]Mnemonic)
	functs = make(map[uint8]Mnemonic)
	for n, info := range mnemonicTable {
		table := opcodes
		key := info.opcode
		if info.class == CLASS_REGISTER {
			table = functs
			key = info.funct
		}
		if _, ok := table[key]; !ok {
			table[key] = Mnemonic(n)
		}
	}
	return
}()
