package cpu

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestDecode_fields(t *testing.T) {
	instr := Decode(0xD3A7)

	assert.Equal(t, OpDRW, instr.Op)
	assert.Equal(t, uint16(0xD3A7), instr.Word)
	assert.Equal(t, byte(0x3), instr.X)
	assert.Equal(t, byte(0xA), instr.Y)
	assert.Equal(t, byte(0x7), instr.N)
	assert.Equal(t, byte(0xA7), instr.KK)
	assert.Equal(t, uint16(0x3A7), instr.NNN)
}

func TestDecode(t *testing.T) {
	tests := []struct {
		word uint16
		want Op
	}{
		{0x00E0, OpCLS},
		{0x00EE, OpRET},
		{0x0000, OpSYS},
		{0x0123, OpSYS},
		{0x00E1, OpSYS},
		{0x1234, OpJP},
		{0x2345, OpCALL},
		{0x3456, OpSEByte},
		{0x4567, OpSNEByte},
		{0x5670, OpSEReg},
		{0x5671, OpUnknown},
		{0x6789, OpLDByte},
		{0x789A, OpADDByte},
		{0x8120, OpLDReg},
		{0x8121, OpOR},
		{0x8122, OpAND},
		{0x8123, OpXOR},
		{0x8124, OpADDReg},
		{0x8125, OpSUB},
		{0x8126, OpSHR},
		{0x8127, OpSUBN},
		{0x812E, OpSHL},
		{0x8128, OpUnknown},
		{0x812F, OpUnknown},
		{0x9AB0, OpSNEReg},
		{0x9AB1, OpUnknown},
		{0xABCD, OpLDI},
		{0xBCDE, OpJPV0},
		{0xCDEF, OpRND},
		{0xDEF1, OpDRW},
		{0xE19E, OpSKP},
		{0xE1A1, OpSKNP},
		{0xE19F, OpUnknown},
		{0xF107, OpLDVxDT},
		{0xF10A, OpLDVxK},
		{0xF115, OpLDDTVx},
		{0xF118, OpLDSTVx},
		{0xF11E, OpADDI},
		{0xF129, OpLDF},
		{0xF133, OpLDB},
		{0xF155, OpLDStore},
		{0xF165, OpLDLoad},
		{0xF100, OpUnknown},
		{0xF175, OpUnknown},
	}
	for _, tt := range tests {
		t.Run(Disasm(tt.word), func(t *testing.T) {
			assert.Equal(t, tt.want, Decode(tt.word).Op)
		})
	}
}

// every opcode has a handler and a mnemonic
func TestDecode_tablesComplete(t *testing.T) {
	c := New(nil, nil, nil)
	for op := OpUnknown; op < opCount; op++ {
		assert.NotNil(t, c.handlers[op])
		assert.NotEmpty(t, mnemonics[op])
	}
}
