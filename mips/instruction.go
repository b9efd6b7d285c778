package mips

// Record holds the fields common to every assembled instruction.
type Record struct {
	Original string   // Normalized source text.
	Mnemonic Mnemonic // Instruction mnemonic.
	Opcode   uint8    // 6-bit primary opcode.
	Address  uint32   // Absolute address of the instruction.
	Word     uint32   // Encoded instruction word.
}

// Hex returns the encoded word as `0x` and eight lowercase hex digits.
func (rec Record) Hex() string {
	return Hex(rec.Word)
}

// Instruction is one of *RType, *IType or *JType.
type Instruction interface {
	Format() Format
	Base() *Record
	Fields() Fields
}

// RType is a register format instruction.
type RType struct {
	Record
	Rs    uint8
	Rt    uint8
	Rd    uint8
	Shamt uint8 // 5-bit shift amount, two's complement.
	Funct uint8
}

func (inst *RType) Format() Format { return FORMAT_R }
func (inst *RType) Base() *Record  { return &inst.Record }

func (inst *RType) Fields() Fields {
	return Fields{Opcode: inst.Opcode, Rs: inst.Rs, Rt: inst.Rt, Rd: inst.Rd, Shamt: inst.Shamt, Funct: inst.Funct}
}

// IType is an immediate format instruction.
type IType struct {
	Record
	Rs        uint8
	Rt        uint8
	Immediate uint16 // 16-bit immediate, offset or branch distance.
}

func (inst *IType) Format() Format { return FORMAT_I }
func (inst *IType) Base() *Record  { return &inst.Record }

func (inst *IType) Fields() Fields {
	return Fields{Opcode: inst.Opcode, Rs: inst.Rs, Rt: inst.Rt, Immediate: inst.Immediate}
}

// Offset returns the immediate as a signed value.
func (inst *IType) Offset() int16 {
	return int16(inst.Immediate)
}

// JType is a jump format instruction.
type JType struct {
	Record
	Target uint32 // Absolute target address.
}

func (inst *JType) Format() Format { return FORMAT_J }
func (inst *JType) Base() *Record  { return &inst.Record }

func (inst *JType) Fields() Fields {
	return Fields{Opcode: inst.Opcode, Index: (inst.Target >> 2) & JUMP_INDEX_MASK}
}
