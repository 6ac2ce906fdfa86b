package cpu

// unknownOp is dispatched for words that decode to OpUnknown.
func (c *CPU) unknownOp(Instruction) error {
	return ErrUnimplementedOpcode
}

// 0nnn - SYS addr: machine code routines are not emulated
func (c *CPU) sysOp(Instruction) error {
	return nil
}

// 00E0 - CLS
func (c *CPU) clsOp(Instruction) error {
	c.display.Clear()
	return nil
}

// 00EE - RET
func (c *CPU) retOp(Instruction) error {
	addr, err := c.Pop()
	if err != nil {
		return err
	}
	c.PC = addr
	return nil
}

// 1nnn - JP addr
func (c *CPU) jpOp(instr Instruction) error {
	c.PC = instr.NNN
	return nil
}

// 2nnn - CALL addr. PC already points at the following instruction.
func (c *CPU) callOp(instr Instruction) error {
	if err := c.Push(c.PC); err != nil {
		return err
	}
	c.PC = instr.NNN
	return nil
}

func (c *CPU) skipIf(cond bool) {
	if cond {
		c.PC += 2
	}
}

// 3xkk - SE Vx, byte
func (c *CPU) seByteOp(instr Instruction) error {
	c.skipIf(c.V[instr.X] == instr.KK)
	return nil
}

// 4xkk - SNE Vx, byte
func (c *CPU) sneByteOp(instr Instruction) error {
	c.skipIf(c.V[instr.X] != instr.KK)
	return nil
}

// 5xy0 - SE Vx, Vy
func (c *CPU) seRegOp(instr Instruction) error {
	c.skipIf(c.V[instr.X] == c.V[instr.Y])
	return nil
}

// 9xy0 - SNE Vx, Vy
func (c *CPU) sneRegOp(instr Instruction) error {
	c.skipIf(c.V[instr.X] != c.V[instr.Y])
	return nil
}

// 6xkk - LD Vx, byte
func (c *CPU) ldByteOp(instr Instruction) error {
	c.V[instr.X] = instr.KK
	return nil
}

// 7xkk - ADD Vx, byte. VF is not affected.
func (c *CPU) addByteOp(instr Instruction) error {
	c.V[instr.X] += instr.KK
	return nil
}

// 8xy0 - LD Vx, Vy
func (c *CPU) ldRegOp(instr Instruction) error {
	c.V[instr.X] = c.V[instr.Y]
	return nil
}

// 8xy1 - OR Vx, Vy
func (c *CPU) orOp(instr Instruction) error {
	c.V[instr.X] |= c.V[instr.Y]
	return nil
}

// 8xy2 - AND Vx, Vy
func (c *CPU) andOp(instr Instruction) error {
	c.V[instr.X] &= c.V[instr.Y]
	return nil
}

// 8xy3 - XOR Vx, Vy
func (c *CPU) xorOp(instr Instruction) error {
	c.V[instr.X] ^= c.V[instr.Y]
	return nil
}

func flag(set bool) byte {
	if set {
		return 1
	}
	return 0
}

// The flag is written before the result in the ALU ops below, so with
// x = F the result overwrites the flag.

// 8xy4 - ADD Vx, Vy. VF = carry.
func (c *CPU) addRegOp(instr Instruction) error {
	sum := uint16(c.V[instr.X]) + uint16(c.V[instr.Y])
	c.V[VF] = flag(sum > 0xFF)
	c.V[instr.X] = byte(sum)
	return nil
}

// 8xy5 - SUB Vx, Vy. VF = NOT borrow.
func (c *CPU) subOp(instr Instruction) error {
	x, y := c.V[instr.X], c.V[instr.Y]
	c.V[VF] = flag(x >= y)
	c.V[instr.X] = x - y
	return nil
}

// 8xy6 - SHR Vx. VF = bit shifted out.
func (c *CPU) shrOp(instr Instruction) error {
	x := c.V[instr.X]
	c.V[VF] = x & 1
	c.V[instr.X] = x >> 1
	return nil
}

// 8xy7 - SUBN Vx, Vy. VF = NOT borrow.
func (c *CPU) subnOp(instr Instruction) error {
	x, y := c.V[instr.X], c.V[instr.Y]
	c.V[VF] = flag(y >= x)
	c.V[instr.X] = y - x
	return nil
}

// 8xyE - SHL Vx. VF = bit shifted out.
func (c *CPU) shlOp(instr Instruction) error {
	x := c.V[instr.X]
	c.V[VF] = x >> 7
	c.V[instr.X] = x << 1
	return nil
}

// Annn - LD I, addr
func (c *CPU) ldIOp(instr Instruction) error {
	c.I = instr.NNN
	return nil
}

// Bnnn - JP V0, addr. Not masked: a target past memory faults on fetch.
func (c *CPU) jpV0Op(instr Instruction) error {
	c.PC = instr.NNN + uint16(c.V[0])
	return nil
}

// Cxkk - RND Vx, byte
func (c *CPU) rndOp(instr Instruction) error {
	c.V[instr.X] = byte(c.rnd.Intn(256)) & instr.KK
	return nil
}

// Dxyn - DRW Vx, Vy, nibble
func (c *CPU) drwOp(instr Instruction) error {
	n := int(instr.N)
	if err := c.checkRange(c.I, n); err != nil {
		return err
	}
	sprite := c.Memory[c.I : int(c.I)+n]
	c.V[VF] = flag(c.display.Draw(c.V[instr.X], c.V[instr.Y], sprite))
	return nil
}

// Ex9E - SKP Vx
func (c *CPU) skpOp(instr Instruction) error {
	c.skipIf(c.keypad.IsPressed(c.V[instr.X] & 0xF))
	return nil
}

// ExA1 - SKNP Vx
func (c *CPU) sknpOp(instr Instruction) error {
	c.skipIf(!c.keypad.IsPressed(c.V[instr.X] & 0xF))
	return nil
}

// Fx07 - LD Vx, DT
func (c *CPU) ldVxDTOp(instr Instruction) error {
	c.V[instr.X] = c.timers.Delay()
	return nil
}

// Fx0A - LD Vx, K. The value is stored by KeyPressed.
func (c *CPU) ldVxKOp(instr Instruction) error {
	c.waitRegister = instr.X
	c.State = WaitingForKey
	return nil
}

// Fx15 - LD DT, Vx
func (c *CPU) ldDTVxOp(instr Instruction) error {
	c.timers.SetDelay(c.V[instr.X])
	return nil
}

// Fx18 - LD ST, Vx
func (c *CPU) ldSTVxOp(instr Instruction) error {
	c.timers.SetSound(c.V[instr.X])
	return nil
}

// Fx1E - ADD I, Vx. I wraps at 12 bits, VF untouched.
func (c *CPU) addIOp(instr Instruction) error {
	c.I = (c.I + uint16(c.V[instr.X])) & MaxAddress
	return nil
}

// Fx29 - LD F, Vx
func (c *CPU) ldFOp(instr Instruction) error {
	c.I = FontStart + uint16(c.V[instr.X]&0xF)*glyphSize
	return nil
}

// Fx33 - LD B, Vx
func (c *CPU) ldBOp(instr Instruction) error {
	if err := c.checkRange(c.I, 3); err != nil {
		return err
	}
	v := c.V[instr.X]
	c.Memory[c.I] = v / 100
	c.Memory[c.I+1] = (v / 10) % 10
	c.Memory[c.I+2] = v % 10
	return nil
}

// Fx55 - LD [I], Vx. I is left alone during the copy and set to I+x+1
// afterwards.
func (c *CPU) ldStoreOp(instr Instruction) error {
	n := int(instr.X) + 1
	if err := c.checkRange(c.I, n); err != nil {
		return err
	}
	copy(c.Memory[c.I:int(c.I)+n], c.V[:n])
	c.I = (c.I + uint16(n)) & MaxAddress
	return nil
}

// Fx65 - LD Vx, [I]. Same I convention as LD [I], Vx.
func (c *CPU) ldLoadOp(instr Instruction) error {
	n := int(instr.X) + 1
	if err := c.checkRange(c.I, n); err != nil {
		return err
	}
	copy(c.V[:n], c.Memory[c.I:int(c.I)+n])
	c.I = (c.I + uint16(n)) & MaxAddress
	return nil
}
