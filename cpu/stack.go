package cpu

// Push stores v in the next free stack slot.
func (c *CPU) Push(v uint16) error {
	if c.SP >= StackSize {
		return ErrStackOverflow
	}
	c.Stack[c.SP] = v
	c.SP++
	return nil
}

// Pop returns the most recently pushed value.
func (c *CPU) Pop() (uint16, error) {
	if c.SP == 0 {
		return 0, ErrStackUnderflow
	}
	c.SP--
	return c.Stack[c.SP], nil
}
