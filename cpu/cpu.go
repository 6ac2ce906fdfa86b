package cpu

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
)

// memory layout and register file sizes
const (
	// MemorySize is the number of addressable bytes.
	MemorySize = 4096

	// MaxAddress is the highest valid memory address.
	MaxAddress = MemorySize - 1

	// ProgramStart is where ROMs are loaded and execution begins.
	ProgramStart = 0x200

	// FontStart is the address of the built-in hexadecimal glyphs.
	FontStart = 0x050

	// StackSize is the number of return address slots.
	StackSize = 16

	// RegisterCount is the number of V registers.
	RegisterCount = 16

	// VF is the flag register index.
	VF = 0xF
)

// State of the processor
type State int

// CPU states: Running / WaitingForKey
const (
	Running State = iota
	WaitingForKey
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case WaitingForKey:
		return "waiting for key"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Display is the raster collaborator DRW and CLS talk to.
type Display interface {
	Clear()
	// Draw XORs sprite onto the buffer at (x, y) and reports whether any
	// lit pixel was erased.
	Draw(x, y byte, sprite []byte) bool
}

// Keypad reports the current state of the 16 keys.
type Keypad interface {
	IsPressed(key byte) bool
}

// Timers exposes the delay and sound timer registers. Implementations are
// shared with the 60 Hz clock and must be safe for concurrent use.
type Timers interface {
	Delay() byte
	SetDelay(v byte)
	SetSound(v byte)
}

// Registers is a copy of the processor state.
type Registers struct {
	V     [RegisterCount]byte
	I     uint16
	PC    uint16
	SP    uint16
	Stack [StackSize]uint16
	State State
}

// CPU type:
type CPU struct {
	Memory [MemorySize]byte
	V      [RegisterCount]byte
	I      uint16
	PC     uint16
	SP     uint16
	Stack  [StackSize]uint16
	State  State

	// register LD Vx, K stores into once a key arrives
	waitRegister byte

	display Display
	keypad  Keypad
	timers  Timers
	rnd     *rand.Rand

	// recently executed instructions, nil when tracing is off
	trace *TraceBuffer

	// handlers is indexed by Op; every decoded instruction has exactly one entry.
	handlers [opCount]func(Instruction) error
}

// New initializes and returns the CPU with the font installed and PC at
// ProgramStart.
func New(display Display, keypad Keypad, timers Timers) *CPU {
	c := &CPU{
		display: display,
		keypad:  keypad,
		timers:  timers,
		rnd:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	c.handlers[OpUnknown] = c.unknownOp
	c.handlers[OpSYS] = c.sysOp
	c.handlers[OpCLS] = c.clsOp
	c.handlers[OpRET] = c.retOp
	c.handlers[OpJP] = c.jpOp
	c.handlers[OpCALL] = c.callOp
	c.handlers[OpSEByte] = c.seByteOp
	c.handlers[OpSNEByte] = c.sneByteOp
	c.handlers[OpSEReg] = c.seRegOp
	c.handlers[OpLDByte] = c.ldByteOp
	c.handlers[OpADDByte] = c.addByteOp

	// register-register ALU (8xyN)
	c.handlers[OpLDReg] = c.ldRegOp
	c.handlers[OpOR] = c.orOp
	c.handlers[OpAND] = c.andOp
	c.handlers[OpXOR] = c.xorOp
	c.handlers[OpADDReg] = c.addRegOp
	c.handlers[OpSUB] = c.subOp
	c.handlers[OpSHR] = c.shrOp
	c.handlers[OpSUBN] = c.subnOp
	c.handlers[OpSHL] = c.shlOp

	c.handlers[OpSNEReg] = c.sneRegOp
	c.handlers[OpLDI] = c.ldIOp
	c.handlers[OpJPV0] = c.jpV0Op
	c.handlers[OpRND] = c.rndOp
	c.handlers[OpDRW] = c.drwOp
	c.handlers[OpSKP] = c.skpOp
	c.handlers[OpSKNP] = c.sknpOp

	// timers, keys, I and memory blocks (FxNN)
	c.handlers[OpLDVxDT] = c.ldVxDTOp
	c.handlers[OpLDVxK] = c.ldVxKOp
	c.handlers[OpLDDTVx] = c.ldDTVxOp
	c.handlers[OpLDSTVx] = c.ldSTVxOp
	c.handlers[OpADDI] = c.addIOp
	c.handlers[OpLDF] = c.ldFOp
	c.handlers[OpLDB] = c.ldBOp
	c.handlers[OpLDStore] = c.ldStoreOp
	c.handlers[OpLDLoad] = c.ldLoadOp

	c.Reset()
	return c
}

// SetRand replaces the random source used by RND.
func (c *CPU) SetRand(r *rand.Rand) {
	c.rnd = r
}

// SetTrace attaches a trace buffer; nil disables tracing.
func (c *CPU) SetTrace(t *TraceBuffer) {
	c.trace = t
}

// Trace returns the attached trace buffer, if any.
func (c *CPU) Trace() *TraceBuffer {
	return c.trace
}

// Reset zeroes memory and registers, reinstalls the font and points PC at
// ProgramStart.
func (c *CPU) Reset() {
	c.Memory = [MemorySize]byte{}
	c.V = [RegisterCount]byte{}
	c.Stack = [StackSize]uint16{}
	c.I = 0
	c.SP = 0
	c.State = Running
	c.waitRegister = 0
	copy(c.Memory[FontStart:], font[:])
	c.PC = ProgramStart
}

// LoadProgram copies data into memory starting at base.
func (c *CPU) LoadProgram(base uint16, data []byte) error {
	if int(base)+len(data) > MemorySize {
		return ErrMemoryOutOfBounds
	}
	copy(c.Memory[base:], data)
	return nil
}

// Fetch reads the big-endian instruction word at PC.
// PC itself is left untouched; Step advances it.
func (c *CPU) Fetch() (uint16, error) {
	if int(c.PC)+1 > MaxAddress {
		return 0, ErrMemoryOutOfBounds
	}
	return uint16(c.Memory[c.PC])<<8 | uint16(c.Memory[c.PC+1]), nil
}

// Step executes a single instruction: fetch, advance PC by 2, decode,
// dispatch. While the CPU waits for a key, Step does nothing.
func (c *CPU) Step() error {
	if c.State == WaitingForKey {
		return nil
	}

	addr := c.PC
	word, err := c.Fetch()
	if err != nil {
		return &Fault{Address: addr, Err: err}
	}
	c.PC += 2

	instr := Decode(word)
	if c.trace != nil {
		c.trace.Enqueue(fmt.Sprintf("0x%03X  %04X  %s", addr, word, instr))
	}

	if err := c.handlers[instr.Op](instr); err != nil {
		return &Fault{Address: addr, Word: word, Instruction: instr, Err: err, fetched: true}
	}
	return nil
}

// KeyPressed completes a pending LD Vx, K. It reports false when the CPU
// was not waiting for a key.
func (c *CPU) KeyPressed(key byte) bool {
	if c.State != WaitingForKey {
		return false
	}
	c.V[c.waitRegister] = key & 0xF
	c.State = Running
	return true
}

// Registers returns a copy of the processor state.
func (c *CPU) Registers() Registers {
	return Registers{
		V:     c.V,
		I:     c.I,
		PC:    c.PC,
		SP:    c.SP,
		Stack: c.Stack,
		State: c.State,
	}
}

// DumpRegisters displays register values
func (c *CPU) DumpRegisters() string {
	return c.Registers().String()
}

func (r Registers) String() string {
	var res strings.Builder
	for i, v := range r.V {
		fmt.Fprintf(&res, "V%X %02X ", i, v)
	}
	fmt.Fprintf(&res, "I %03X PC %03X SP %X", r.I, r.PC, r.SP)
	return res.String()
}
