package cpu

import (
	"fmt"

	"github.com/pkg/errors"
)

// fault taxonomy. None of these is retried: execution is deterministic.
var (
	ErrUnimplementedOpcode = errors.New("unimplemented opcode")
	ErrStackOverflow       = errors.New("stack overflow")
	ErrStackUnderflow      = errors.New("stack underflow")
	ErrMemoryOutOfBounds   = errors.New("memory out of bounds")
)

// Fault ties an execution failure to the instruction that raised it.
type Fault struct {
	Address     uint16
	Word        uint16
	Instruction Instruction
	Err         error

	// false when the failure happened before the word could be read
	fetched bool
}

func (f *Fault) Error() string {
	if !f.fetched {
		return fmt.Sprintf("0x%03X: fetch: %v", f.Address, f.Err)
	}
	return fmt.Sprintf("0x%03X: %04X (%s): %v", f.Address, f.Word, f.Instruction, f.Err)
}

// Unwrap returns the underlying sentinel.
func (f *Fault) Unwrap() error {
	return f.Err
}

// IsStackFault reports whether err is a stack overflow or underflow.
func IsStackFault(err error) bool {
	return errors.Is(err, ErrStackOverflow) || errors.Is(err, ErrStackUnderflow)
}

// memory access helpers with bounds checks for addresses derived from I

func (c *CPU) checkRange(addr uint16, n int) error {
	if int(addr)+n-1 > MaxAddress {
		return errors.Wrapf(ErrMemoryOutOfBounds, "I=0x%03X len=%d", addr, n)
	}
	return nil
}
