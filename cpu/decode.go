package cpu

// Op identifies a decoded CHIP-8 instruction.
type Op int

// opcodes, in the order of the instruction word's top nibble
const (
	OpUnknown Op = iota
	OpSYS        // 0nnn
	OpCLS        // 00E0
	OpRET        // 00EE
	OpJP         // 1nnn
	OpCALL       // 2nnn
	OpSEByte     // 3xkk
	OpSNEByte    // 4xkk
	OpSEReg      // 5xy0
	OpLDByte     // 6xkk
	OpADDByte    // 7xkk
	OpLDReg      // 8xy0
	OpOR         // 8xy1
	OpAND        // 8xy2
	OpXOR        // 8xy3
	OpADDReg     // 8xy4
	OpSUB        // 8xy5
	OpSHR        // 8xy6
	OpSUBN       // 8xy7
	OpSHL        // 8xyE
	OpSNEReg     // 9xy0
	OpLDI        // Annn
	OpJPV0       // Bnnn
	OpRND        // Cxkk
	OpDRW        // Dxyn
	OpSKP        // Ex9E
	OpSKNP       // ExA1
	OpLDVxDT     // Fx07
	OpLDVxK      // Fx0A
	OpLDDTVx     // Fx15
	OpLDSTVx     // Fx18
	OpADDI       // Fx1E
	OpLDF        // Fx29
	OpLDB        // Fx33
	OpLDStore    // Fx55
	OpLDLoad     // Fx65

	opCount
)

// Instruction is a decoded instruction word with all operand fields
// extracted. Fields an opcode does not use are still filled in.
type Instruction struct {
	Op   Op
	Word uint16
	X    byte   // (word & 0x0F00) >> 8
	Y    byte   // (word & 0x00F0) >> 4
	N    byte   // word & 0x000F
	KK   byte   // word & 0x00FF
	NNN  uint16 // word & 0x0FFF
}

// secondary dispatch tables
var (
	aluOps = map[byte]Op{
		0x0: OpLDReg,
		0x1: OpOR,
		0x2: OpAND,
		0x3: OpXOR,
		0x4: OpADDReg,
		0x5: OpSUB,
		0x6: OpSHR,
		0x7: OpSUBN,
		0xE: OpSHL,
	}

	keyOps = map[byte]Op{
		0x9E: OpSKP,
		0xA1: OpSKNP,
	}

	miscOps = map[byte]Op{
		0x07: OpLDVxDT,
		0x0A: OpLDVxK,
		0x15: OpLDDTVx,
		0x18: OpLDSTVx,
		0x1E: OpADDI,
		0x29: OpLDF,
		0x33: OpLDB,
		0x55: OpLDStore,
		0x65: OpLDLoad,
	}
)

// Decode splits word into its fields and resolves the opcode. Words that
// match no instruction decode to OpUnknown; decoding itself never fails.
func Decode(word uint16) Instruction {
	instr := Instruction{
		Word: word,
		X:    byte((word & 0x0F00) >> 8),
		Y:    byte((word & 0x00F0) >> 4),
		N:    byte(word & 0x000F),
		KK:   byte(word & 0x00FF),
		NNN:  word & 0x0FFF,
	}
	instr.Op = decodeOp(instr)
	return instr
}

func decodeOp(instr Instruction) Op {
	switch instr.Word >> 12 {
	case 0x0:
		switch instr.Word {
		case 0x00E0:
			return OpCLS
		case 0x00EE:
			return OpRET
		}
		return OpSYS
	case 0x1:
		return OpJP
	case 0x2:
		return OpCALL
	case 0x3:
		return OpSEByte
	case 0x4:
		return OpSNEByte
	case 0x5:
		if instr.N == 0 {
			return OpSEReg
		}
	case 0x6:
		return OpLDByte
	case 0x7:
		return OpADDByte
	case 0x8:
		if op, ok := aluOps[instr.N]; ok {
			return op
		}
	case 0x9:
		if instr.N == 0 {
			return OpSNEReg
		}
	case 0xA:
		return OpLDI
	case 0xB:
		return OpJPV0
	case 0xC:
		return OpRND
	case 0xD:
		return OpDRW
	case 0xE:
		if op, ok := keyOps[instr.KK]; ok {
			return op
		}
	case 0xF:
		if op, ok := miscOps[instr.KK]; ok {
			return op
		}
	}
	return OpUnknown
}
