package exec

import "github.com/m68kasm/m68kasm/arch/cpu/m68k"

func (c *CPU) execMove(ins m68k.MoveInstr) error {
	val, err := c.readEa(ins.Src, ins.Size)
	if err != nil {
		return err
	}
	if ins.Op == m68k.Moveq {
		val = uint32(int32(int8(val)))
	}
	if ins.Op != m68k.Movea {
		setNZ(&c.CCR, val, ins.Size)
		c.CCR.V = false
		c.CCR.C = false
	}
	return c.writeEa(ins.Dst, ins.Size, val)
}

func (c *CPU) execArithmetic(ins m68k.Arithmetic) error {
	var srcVal uint32
	var err error
	if ins.Variant == m68k.ArithQuick {
		srcVal = uint32(ins.Quick)
	} else {
		srcVal, err = c.readEa(ins.Src, ins.Size)
		if err != nil {
			return err
		}
	}
	dstVal, err := c.readEa(ins.Dst, ins.Size)
	if err != nil {
		return err
	}

	var result uint64
	if ins.Op == m68k.Add {
		result = uint64(dstVal) + uint64(srcVal)
	} else {
		result = uint64(dstVal) - uint64(srcVal)
	}

	if ins.Variant != m68k.ArithAddress {
		setNZ(&c.CCR, uint32(result), ins.Size)
		c.CCR.C = carryOut(result, ins.Size)
		c.CCR.X = c.CCR.C
		c.CCR.V = overflow(ins.Op == m68k.Sub, dstVal, srcVal, uint32(result), ins.Size)
	}

	return c.writeEa(ins.Dst, ins.Size, uint32(result))
}

func carryOut(result uint64, size m68k.Size) bool {
	switch size {
	case m68k.Byte:
		return result > 0xff
	case m68k.Word:
		return result > 0xffff
	default:
		return result > 0xffffffff
	}
}

func overflow(isSub bool, a, b, result uint32, size m68k.Size) bool {
	sa, sb, sr := signBit(a, size), signBit(b, size), signBit(result, size)
	if isSub {
		return sa != sb && sr != sa
	}
	return sa == sb && sr != sa
}

func (c *CPU) execLogic(ins m68k.Logic) error {
	src, err := c.readEa(ins.Src, ins.Size)
	if err != nil {
		return err
	}
	dst, err := c.readEa(ins.Dst, ins.Size)
	if err != nil {
		return err
	}

	var result uint32
	switch ins.Op {
	case m68k.And:
		result = src & dst
	case m68k.Or:
		result = src | dst
	default:
		result = src ^ dst
	}

	setNZ(&c.CCR, result, ins.Size)
	c.CCR.V = false
	c.CCR.C = false
	return c.writeEa(ins.Dst, ins.Size, result)
}

func (c *CPU) execNot(ins m68k.Not) error {
	val, err := c.readEa(ins.Ea, ins.Size)
	if err != nil {
		return err
	}
	result := ^val
	setNZ(&c.CCR, result, ins.Size)
	c.CCR.V = false
	c.CCR.C = false
	return c.writeEa(ins.Ea, ins.Size, result)
}

func (c *CPU) execNeg(ins m68k.Neg) error {
	val, err := c.readEa(ins.Ea, ins.Size)
	if err != nil {
		return err
	}
	result := uint32(0) - val
	setNZ(&c.CCR, result, ins.Size)
	c.CCR.C = val != 0
	c.CCR.X = c.CCR.C
	c.CCR.V = overflow(true, 0, val, result, ins.Size)
	return c.writeEa(ins.Ea, ins.Size, result)
}

func (c *CPU) execTst(ins m68k.Tst) error {
	val, err := c.readEa(ins.Ea, ins.Size)
	if err != nil {
		return err
	}
	setNZ(&c.CCR, val, ins.Size)
	c.CCR.V = false
	c.CCR.C = false
	return nil
}

func (c *CPU) execCompare(ins m68k.Compare) error {
	src, err := c.readEa(ins.Src, ins.Size)
	if err != nil {
		return err
	}
	dst, err := c.readEa(ins.Dst, ins.Size)
	if err != nil {
		return err
	}
	result := uint64(dst) - uint64(src)
	setNZ(&c.CCR, uint32(result), ins.Size)
	c.CCR.C = carryOut(result, ins.Size)
	c.CCR.V = overflow(true, dst, src, uint32(result), ins.Size)
	return nil
}

func (c *CPU) execExt(ins m68k.Ext) error {
	val, err := c.readEa(ins.Reg, ins.From)
	if err != nil {
		return err
	}
	extended := signExtendTo32(val, ins.From)
	setNZ(&c.CCR, extended, ins.To)
	c.CCR.V = false
	c.CCR.C = false
	return c.writeEa(ins.Reg, ins.To, extended)
}

func (c *CPU) execMulDiv(ins m68k.MulDiv) error {
	src, err := c.readEa(ins.Src, m68k.Word)
	if err != nil {
		return err
	}
	dst, err := c.readEa(ins.Dst, m68k.Word)
	if err != nil {
		return err
	}

	if ins.Op == m68k.Mul {
		var result uint32
		if ins.Signed {
			result = uint32(int32(int16(dst)) * int32(int16(src)))
		} else {
			result = (dst & 0xffff) * (src & 0xffff)
		}
		setNZ(&c.CCR, result, m68k.Long)
		c.CCR.V = false
		c.CCR.C = false
		return c.writeEa(ins.Dst, m68k.Long, result)
	}

	divisor := src & 0xffff
	if divisor == 0 {
		c.CCR.V = true
		return nil
	}
	var quotient, remainder int64
	if ins.Signed {
		q := int64(int32(dst)) / int64(int16(divisor))
		r := int64(int32(dst)) % int64(int16(divisor))
		quotient, remainder = q, r
	} else {
		q := int64(dst) / int64(divisor)
		r := int64(dst) % int64(divisor)
		quotient, remainder = q, r
	}
	if quotient > 0x7fff || quotient < -0x8000 {
		c.CCR.V = true
		return nil
	}
	result := uint32(uint16(remainder))<<16 | uint32(uint16(quotient))
	setNZ(&c.CCR, uint32(quotient), m68k.Word)
	c.CCR.V = false
	return c.writeEa(ins.Dst, m68k.Long, result)
}

func (c *CPU) execBit(ins m68k.BitInstr) error {
	bit, err := c.readEa(ins.Bit, m68k.Byte)
	if err != nil {
		return err
	}
	size := operandSize(ins.Ea)
	val, err := c.readEa(ins.Ea, size)
	if err != nil {
		return err
	}
	mask := uint32(1) << (bit % uint32(size.Bytes()*8))
	c.CCR.Z = val&mask == 0

	switch ins.Op {
	case m68k.Btst:
		return nil
	case m68k.Bset:
		return c.writeEa(ins.Ea, size, val|mask)
	case m68k.Bclr:
		return c.writeEa(ins.Ea, size, val&^mask)
	default:
		return c.writeEa(ins.Ea, size, val^mask)
	}
}

// operandSize picks the bit-instruction operand width: long for a data
// register destination, byte for a memory destination.
func operandSize(op m68k.BoundOperand) m68k.Size {
	if _, ok := op.(m68k.BoundRegister); ok {
		return m68k.Long
	}
	return m68k.Byte
}

func (c *CPU) execShift(ins m68k.Shift) error {
	count, err := c.readEa(ins.Count, m68k.Byte)
	if err != nil {
		return err
	}
	count %= 64
	val, err := c.readEa(ins.Ea, ins.Size)
	if err != nil {
		return err
	}

	var result uint32
	var lastOut bool
	for i := uint32(0); i < count; i++ {
		result, lastOut = shiftOnce(ins.Kind, ins.Dir, val, ins.Size)
		val = result
	}
	if count > 0 {
		c.CCR.C = lastOut
		c.CCR.X = lastOut
	} else {
		c.CCR.C = false
	}
	setNZ(&c.CCR, val, ins.Size)
	c.CCR.V = false
	return c.writeEa(ins.Ea, ins.Size, val)
}

func shiftOnce(kind m68k.ShiftKind, dir m68k.ShiftDirection, v uint32, size m68k.Size) (uint32, bool) {
	bits := size.Bytes() * 8
	v = maskToSize(v, size)
	if dir == m68k.Left {
		out := v&(1<<(bits-1)) != 0
		v <<= 1
		if kind == m68k.Rotate68k && out {
			v |= 1
		}
		return maskToSize(v, size), out
	}
	out := v&1 != 0
	v >>= 1
	if kind == m68k.Arithmetic68k && signBit(maskToSize(v<<1, size), size) {
		v |= 1 << (bits - 1)
	}
	if kind == m68k.Rotate68k && out {
		v |= 1 << (bits - 1)
	}
	return maskToSize(v, size), out
}

func (c *CPU) execLea(ins m68k.Lea) error {
	addr, err := c.effectiveAddress(ins.Src, m68k.Long)
	if err != nil {
		return err
	}
	return c.writeEa(ins.Dst, m68k.Long, addr)
}

func (c *CPU) execPea(ins m68k.Pea) error {
	addr, err := c.effectiveAddress(ins.Src, m68k.Long)
	if err != nil {
		return err
	}
	c.pushLong(addr)
	return nil
}

func (c *CPU) execExg(ins m68k.Exg) error {
	a, err := c.readEa(ins.Ra, m68k.Long)
	if err != nil {
		return err
	}
	b, err := c.readEa(ins.Rb, m68k.Long)
	if err != nil {
		return err
	}
	if err := c.writeEa(ins.Ra, m68k.Long, b); err != nil {
		return err
	}
	return c.writeEa(ins.Rb, m68k.Long, a)
}

func (c *CPU) execSwap(ins m68k.Swap) error {
	val, err := c.readEa(ins.Reg, m68k.Long)
	if err != nil {
		return err
	}
	swapped := val<<16 | val>>16
	setNZ(&c.CCR, swapped, m68k.Long)
	c.CCR.V = false
	c.CCR.C = false
	return c.writeEa(ins.Reg, m68k.Long, swapped)
}

func (c *CPU) execLink(ins m68k.Link) error {
	reg, ok := ins.Reg.(m68k.BoundRegister)
	if !ok {
		return nil
	}
	c.pushLong(c.A[reg.Index])
	c.A[reg.Index] = c.A[7]
	c.A[7] = uint32(int32(c.A[7]) + ins.Disp)
	return nil
}

func (c *CPU) execUnlk(ins m68k.Unlk) error {
	reg, ok := ins.Reg.(m68k.BoundRegister)
	if !ok {
		return nil
	}
	c.A[7] = c.A[reg.Index]
	c.A[reg.Index] = c.popLong()
	return nil
}

func (c *CPU) execMovem(ins m68k.Movem) error {
	addr, err := c.effectiveAddress(ins.Ea, m68k.Long)
	if err != nil {
		return err
	}
	size := ins.Size
	unit := uint32(size.Bytes())

	for i := 0; i < 16; i++ {
		if ins.Mask&(1<<uint(i)) == 0 {
			continue
		}
		kind, idx := m68k.Data, i
		if i >= 8 {
			kind, idx = m68k.Address, i-8
		}
		if ins.Direction == m68k.ToMemory {
			var v uint32
			if kind == m68k.Address {
				v = c.A[idx]
			} else {
				v = c.D[idx]
			}
			c.writeMemSized(addr, size, v)
		} else {
			v := signExtendTo32(c.readMemSized(addr, size), size)
			if kind == m68k.Address {
				c.A[idx] = v
			} else {
				c.D[idx] = v
			}
		}
		addr += unit
	}
	return nil
}

func (c *CPU) execDbcc(ins m68k.Dbcc) (bool, error) {
	if c.conditionTrue(ins.Cond) {
		return false, nil
	}
	reg, ok := ins.Reg.(m68k.BoundRegister)
	if !ok {
		return false, nil
	}
	val := int16(c.D[reg.Index]&0xffff) - 1
	c.D[reg.Index] = c.D[reg.Index]&0xffff0000 | uint32(uint16(val))
	if val == -1 {
		return false, nil
	}
	addr, err := c.addrOf(ins.Target)
	if err != nil {
		return false, err
	}
	c.PC = addr
	return true, nil
}
