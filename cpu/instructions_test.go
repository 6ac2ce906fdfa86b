package cpu

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/retroenv/retrogolib/assert"
)

func TestCPU_addByteOp(t *testing.T) {
	f := newFixture()
	for a := 0; a < 256; a++ {
		for b := 0; b < 256; b += 7 {
			f.c.V[VF] = 0x5A
			assert.NoError(t, f.exec(0x6300|uint16(a)))
			assert.NoError(t, f.exec(0x7300|uint16(b)))
			assert.Equal(t, byte((a+b)%256), f.c.V[3])
			assert.Equal(t, byte(0x5A), f.c.V[VF])
		}
	}
}

func TestCPU_addRegOp(t *testing.T) {
	f := newFixture()
	for x := 0; x < 256; x++ {
		for y := 0; y < 256; y++ {
			f.c.V[1], f.c.V[2] = byte(x), byte(y)
			assert.NoError(t, f.exec(0x8124))
			assert.Equal(t, byte((x+y)%256), f.c.V[1])
			assert.Equal(t, flag(x+y > 255), f.c.V[VF])
		}
	}
}

func TestCPU_aluOps(t *testing.T) {
	tests := []struct {
		name   string
		word   uint16
		vx, vy byte
		wantX  byte
		wantF  byte
		keepsF bool
	}{
		{"LD Vx, Vy", 0x8120, 0x11, 0x22, 0x22, 0, true},
		{"OR", 0x8121, 0xF0, 0x0F, 0xFF, 0, true},
		{"AND", 0x8122, 0xF3, 0x3F, 0x33, 0, true},
		{"XOR", 0x8123, 0xFF, 0x0F, 0xF0, 0, true},
		{"ADD no carry", 0x8124, 100, 100, 200, 0, false},
		{"ADD carry", 0x8124, 200, 100, 44, 1, false},
		{"SUB no borrow", 0x8125, 10, 5, 5, 1, false},
		{"SUB equal", 0x8125, 7, 7, 0, 1, false},
		{"SUB borrow", 0x8125, 5, 10, 251, 0, false},
		{"SHR odd", 0x8126, 0b00000011, 0, 0b00000001, 1, false},
		{"SHR even", 0x8126, 0b00000010, 0, 0b00000001, 0, false},
		{"SUBN no borrow", 0x8127, 5, 10, 5, 1, false},
		{"SUBN borrow", 0x8127, 10, 5, 251, 0, false},
		{"SHL high bit", 0x812E, 0x81, 0, 0x02, 1, false},
		{"SHL clear", 0x812E, 0x41, 0, 0x82, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.c.V[1], f.c.V[2] = tt.vx, tt.vy
			f.c.V[VF] = 0x77

			assert.NoError(t, f.exec(tt.word))
			assert.Equal(t, tt.wantX, f.c.V[1])
			assert.Equal(t, tt.vy, f.c.V[2])
			if tt.keepsF {
				assert.Equal(t, byte(0x77), f.c.V[VF])
			} else {
				assert.Equal(t, tt.wantF, f.c.V[VF])
			}
		})
	}
}

func TestCPU_flagRegisterAsTarget(t *testing.T) {
	f := newFixture()
	f.c.V[VF], f.c.V[1] = 200, 100

	// ADD VF, V1: the sum is written after the carry flag
	assert.NoError(t, f.exec(0x8F14))
	assert.Equal(t, byte(44), f.c.V[VF])
}

func TestCPU_skipOps(t *testing.T) {
	tests := []struct {
		name     string
		word     uint16
		vx, vy   byte
		wantSkip bool
	}{
		{"SE byte equal", 0x3142, 0x42, 0, true},
		{"SE byte different", 0x3142, 0x41, 0, false},
		{"SNE byte equal", 0x4142, 0x42, 0, false},
		{"SNE byte different", 0x4142, 0x41, 0, true},
		{"SE reg equal", 0x5120, 9, 9, true},
		{"SE reg different", 0x5120, 9, 8, false},
		{"SNE reg equal", 0x9120, 9, 9, false},
		{"SNE reg different", 0x9120, 9, 8, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.c.V[1], f.c.V[2] = tt.vx, tt.vy

			assert.NoError(t, f.exec(tt.word))
			want := uint16(ProgramStart + 2)
			if tt.wantSkip {
				want += 2
			}
			assert.Equal(t, want, f.c.PC)
		})
	}
}

func TestCPU_keyOps(t *testing.T) {
	tests := []struct {
		name     string
		word     uint16
		key      byte
		pressed  bool
		wantSkip bool
	}{
		{"SKP pressed", 0xE19E, 0xA, true, true},
		{"SKP released", 0xE19E, 0xA, false, false},
		{"SKNP pressed", 0xE1A1, 0xA, true, false},
		{"SKNP released", 0xE1A1, 0xA, false, true},
		{"SKP uses low nibble", 0xE19E, 0x1A, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.c.V[1] = tt.key
			f.keys.pressed[tt.key&0xF] = tt.pressed

			assert.NoError(t, f.exec(tt.word))
			want := uint16(ProgramStart + 2)
			if tt.wantSkip {
				want += 2
			}
			assert.Equal(t, want, f.c.PC)
		})
	}
}

func TestCPU_jumpOps(t *testing.T) {
	f := newFixture()

	assert.NoError(t, f.exec(0x1ABC))
	assert.Equal(t, uint16(0xABC), f.c.PC)
	assert.Equal(t, uint16(0), f.c.SP)

	f.c.V[0] = 0x10
	assert.NoError(t, f.exec(0xB300))
	assert.Equal(t, uint16(0x310), f.c.PC)
}

func TestCPU_sysIsIgnored(t *testing.T) {
	f := newFixture()
	assert.NoError(t, f.exec(0x0123))
	assert.Equal(t, uint16(ProgramStart+2), f.c.PC)
}

func TestCPU_indexOps(t *testing.T) {
	tests := []struct {
		name  string
		i     uint16
		vx    byte
		word  uint16
		wantI uint16
	}{
		{"LD I", 0, 0, 0xA123, 0x123},
		{"ADD I", 0x100, 0x20, 0xF11E, 0x120},
		{"ADD I wraps at 12 bits", 0xFF0, 0x20, 0xF11E, 0x010},
		{"LD F digit 0", 0, 0x0, 0xF129, FontStart},
		{"LD F digit A", 0, 0xA, 0xF129, FontStart + 0xA*glyphSize},
		{"LD F uses low nibble", 0, 0x1F, 0xF129, FontStart + 0xF*glyphSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.c.I = tt.i
			f.c.V[1] = tt.vx
			f.c.V[VF] = 0x33

			assert.NoError(t, f.exec(tt.word))
			assert.Equal(t, tt.wantI, f.c.I)
			assert.Equal(t, byte(0x33), f.c.V[VF])
		})
	}
}

func TestCPU_ldBOp(t *testing.T) {
	tests := []struct {
		v    byte
		want [3]byte
	}{
		{0, [3]byte{0, 0, 0}},
		{7, [3]byte{0, 0, 7}},
		{42, [3]byte{0, 4, 2}},
		{255, [3]byte{2, 5, 5}},
	}
	for _, tt := range tests {
		f := newFixture()
		f.c.I = 0x300
		f.c.V[4] = tt.v

		assert.NoError(t, f.exec(0xF433))
		var got [3]byte
		copy(got[:], f.c.Memory[0x300:0x303])
		assert.Equal(t, tt.want, got)
		assert.Equal(t, uint16(0x300), f.c.I)
	}

	f := newFixture()
	f.c.I = 0xFFE
	err := f.exec(0xF433)
	assert.True(t, errors.Is(err, ErrMemoryOutOfBounds))
}

func TestCPU_blockStoreLoad(t *testing.T) {
	f := newFixture()
	for i := 0; i < RegisterCount; i++ {
		f.c.V[i] = byte(0x10 + i)
	}
	f.c.I = 0x400

	// LD [I], V3
	assert.NoError(t, f.exec(0xF355))
	assert.Equal(t, uint16(0x404), f.c.I)
	var stored [5]byte
	copy(stored[:], f.c.Memory[0x400:0x405])
	assert.Equal(t, [5]byte{0x10, 0x11, 0x12, 0x13, 0}, stored)

	f.c.V = [RegisterCount]byte{}
	f.c.I = 0x400

	// LD V2, [I]
	assert.NoError(t, f.exec(0xF265))
	assert.Equal(t, uint16(0x403), f.c.I)
	assert.Equal(t, byte(0x10), f.c.V[0])
	assert.Equal(t, byte(0x11), f.c.V[1])
	assert.Equal(t, byte(0x12), f.c.V[2])
	assert.Equal(t, byte(0), f.c.V[3])
}

func TestCPU_blockStoreBounds(t *testing.T) {
	tests := []struct {
		name    string
		i       uint16
		word    uint16
		wantErr bool
		wantI   uint16
	}{
		{"store ends at last byte", 0xFFC, 0xF355, false, 0x000},
		{"store past memory", 0xFFD, 0xF355, true, 0xFFD},
		{"load ends at last byte", 0xFFF, 0xF065, false, 0x000},
		{"load past memory", 0xFFF, 0xF165, true, 0xFFF},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.c.I = tt.i

			err := f.exec(tt.word)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrMemoryOutOfBounds))
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantI, f.c.I)
		})
	}
}

func TestCPU_timerOps(t *testing.T) {
	f := newFixture()
	f.c.V[2] = 30

	assert.NoError(t, f.exec(0xF215))
	assert.Equal(t, byte(30), f.timers.delay)

	assert.NoError(t, f.exec(0xF218))
	assert.Equal(t, byte(30), f.timers.sound)

	f.timers.delay = 12
	assert.NoError(t, f.exec(0xF507))
	assert.Equal(t, byte(12), f.c.V[5])
}

func TestCPU_rndOp(t *testing.T) {
	f := newFixture()
	for i := 0; i < 64; i++ {
		assert.NoError(t, f.exec(0xC10F))
		assert.Equal(t, byte(0), f.c.V[1]&0xF0)
	}

	assert.NoError(t, f.exec(0xC100))
	assert.Equal(t, byte(0), f.c.V[1])
}

func TestCPU_drwOp(t *testing.T) {
	f := newFixture()
	f.c.Memory[0x300] = 0xFF
	f.c.I = 0x300
	f.c.V[1], f.c.V[2] = 8, 4

	// DRW V1, V2, 1
	assert.NoError(t, f.exec(0xD121))
	assert.Equal(t, byte(0), f.c.V[VF])
	assert.True(t, f.display.Pixel(8, 4))
	assert.True(t, f.display.Pixel(15, 4))

	assert.NoError(t, f.exec(0xD121))
	assert.Equal(t, byte(1), f.c.V[VF])
	assert.False(t, f.display.Pixel(8, 4))

	// CLS
	assert.NoError(t, f.exec(0xD121))
	assert.NoError(t, f.exec(0x00E0))
	assert.False(t, f.display.Pixel(8, 4))
}

func TestCPU_drwOpOutOfMemory(t *testing.T) {
	f := newFixture()
	f.c.I = 0xFFE

	err := f.exec(0xD123)
	assert.True(t, errors.Is(err, ErrMemoryOutOfBounds))
}
