package cpu

import "fmt"

var mnemonics = [opCount]string{
	OpUnknown: "???",
	OpSYS:     "SYS",
	OpCLS:     "CLS",
	OpRET:     "RET",
	OpJP:      "JP",
	OpCALL:    "CALL",
	OpSEByte:  "SE",
	OpSNEByte: "SNE",
	OpSEReg:   "SE",
	OpLDByte:  "LD",
	OpADDByte: "ADD",
	OpLDReg:   "LD",
	OpOR:      "OR",
	OpAND:     "AND",
	OpXOR:     "XOR",
	OpADDReg:  "ADD",
	OpSUB:     "SUB",
	OpSHR:     "SHR",
	OpSUBN:    "SUBN",
	OpSHL:     "SHL",
	OpSNEReg:  "SNE",
	OpLDI:     "LD",
	OpJPV0:    "JP",
	OpRND:     "RND",
	OpDRW:     "DRW",
	OpSKP:     "SKP",
	OpSKNP:    "SKNP",
	OpLDVxDT:  "LD",
	OpLDVxK:   "LD",
	OpLDDTVx:  "LD",
	OpLDSTVx:  "LD",
	OpADDI:    "ADD",
	OpLDF:     "LD",
	OpLDB:     "LD",
	OpLDStore: "LD",
	OpLDLoad:  "LD",
}

// String returns the mnemonic of the opcode.
func (op Op) String() string {
	if op < 0 || op >= opCount {
		return fmt.Sprintf("op(%d)", int(op))
	}
	return mnemonics[op]
}

// String disassembles the instruction, e.g. "LD V0, $05" or "JP $300".
func (i Instruction) String() string {
	name := i.Op.String()
	if params := i.params(); params != "" {
		return name + " " + params
	}
	return name
}

func (i Instruction) params() string {
	switch i.Op {
	case OpCLS, OpRET:
		return ""
	case OpUnknown:
		return fmt.Sprintf("$%04X", i.Word)
	case OpSYS, OpJP, OpCALL:
		return fmt.Sprintf("$%03X", i.NNN)
	case OpSEByte, OpSNEByte, OpLDByte, OpADDByte, OpRND:
		return fmt.Sprintf("V%X, $%02X", i.X, i.KK)
	case OpSEReg, OpSNEReg, OpLDReg, OpOR, OpAND, OpXOR, OpADDReg, OpSUB, OpSUBN:
		return fmt.Sprintf("V%X, V%X", i.X, i.Y)
	case OpSHR, OpSHL, OpSKP, OpSKNP:
		return fmt.Sprintf("V%X", i.X)
	case OpLDI:
		return fmt.Sprintf("I, $%03X", i.NNN)
	case OpJPV0:
		return fmt.Sprintf("V0, $%03X", i.NNN)
	case OpDRW:
		return fmt.Sprintf("V%X, V%X, %d", i.X, i.Y, i.N)
	case OpLDVxDT:
		return fmt.Sprintf("V%X, DT", i.X)
	case OpLDVxK:
		return fmt.Sprintf("V%X, K", i.X)
	case OpLDDTVx:
		return fmt.Sprintf("DT, V%X", i.X)
	case OpLDSTVx:
		return fmt.Sprintf("ST, V%X", i.X)
	case OpADDI:
		return fmt.Sprintf("I, V%X", i.X)
	case OpLDF:
		return fmt.Sprintf("F, V%X", i.X)
	case OpLDB:
		return fmt.Sprintf("B, V%X", i.X)
	case OpLDStore:
		return fmt.Sprintf("[I], V%X", i.X)
	case OpLDLoad:
		return fmt.Sprintf("V%X, [I]", i.X)
	}
	return ""
}

// Disasm decodes and disassembles a single word.
func Disasm(word uint16) string {
	return Decode(word).String()
}
