package exec

import (
	"fmt"

	"github.com/m68kasm/m68kasm/arch/cpu/m68k"
)

func (c *CPU) readMemLong(addr uint32) uint32 {
	a := int(addr)
	if a < 0 || a+4 > len(c.Mem) {
		return 0
	}
	return uint32(c.Mem[a])<<24 | uint32(c.Mem[a+1])<<16 | uint32(c.Mem[a+2])<<8 | uint32(c.Mem[a+3])
}

func (c *CPU) writeMemLong(addr uint32, v uint32) {
	a := int(addr)
	if a < 0 || a+4 > len(c.Mem) {
		return
	}
	c.Mem[a] = byte(v >> 24)
	c.Mem[a+1] = byte(v >> 16)
	c.Mem[a+2] = byte(v >> 8)
	c.Mem[a+3] = byte(v)
}

func (c *CPU) readMemWord(addr uint32) uint32 {
	a := int(addr)
	if a < 0 || a+2 > len(c.Mem) {
		return 0
	}
	return uint32(c.Mem[a])<<8 | uint32(c.Mem[a+1])
}

func (c *CPU) writeMemWord(addr uint32, v uint32) {
	a := int(addr)
	if a < 0 || a+2 > len(c.Mem) {
		return
	}
	c.Mem[a] = byte(v >> 8)
	c.Mem[a+1] = byte(v)
}

func (c *CPU) readMemByte(addr uint32) uint32 {
	a := int(addr)
	if a < 0 || a >= len(c.Mem) {
		return 0
	}
	return uint32(c.Mem[a])
}

func (c *CPU) writeMemByte(addr uint32, v uint32) {
	a := int(addr)
	if a < 0 || a >= len(c.Mem) {
		return
	}
	c.Mem[a] = byte(v)
}

func (c *CPU) readMemSized(addr uint32, size m68k.Size) uint32 {
	switch size {
	case m68k.Byte:
		return c.readMemByte(addr)
	case m68k.Long:
		return c.readMemLong(addr)
	default:
		return c.readMemWord(addr)
	}
}

func (c *CPU) writeMemSized(addr uint32, size m68k.Size, v uint32) {
	switch size {
	case m68k.Byte:
		c.writeMemByte(addr, v)
	case m68k.Long:
		c.writeMemLong(addr, v)
	default:
		c.writeMemWord(addr, v)
	}
}

// effectiveAddress resolves a BoundOperand's memory address, applying
// post-increment/pre-decrement side effects by size where applicable.
func (c *CPU) effectiveAddress(op m68k.BoundOperand, size m68k.Size) (uint32, error) {
	switch o := op.(type) {
	case m68k.BoundIndirect:
		return c.A[o.Base], nil
	case m68k.BoundPostIndirect:
		addr := c.A[o.Base]
		c.A[o.Base] += uint32(incrementSize(o.Base, size))
		return addr, nil
	case m68k.BoundPreIndirect:
		c.A[o.Base] -= uint32(incrementSize(o.Base, size))
		return c.A[o.Base], nil
	case m68k.BoundIndirectDisplacement:
		return uint32(int32(c.A[o.Base]) + o.Offset), nil
	case m68k.BoundIndirectIndex:
		index := c.indexValue(o.Index)
		return uint32(int32(c.A[o.Base]) + o.Offset + index), nil
	case m68k.BoundAbsolute:
		return o.Address, nil
	default:
		return 0, fmt.Errorf("operand %T has no effective address", op)
	}
}

// incrementSize is the stack-pointer special case: byte-sized push/pop on
// A7 still moves the pointer by 2 to keep it word-aligned.
func incrementSize(base int, size m68k.Size) int {
	n := size.Bytes()
	if base == 7 && n == 1 {
		return 2
	}
	return n
}

func (c *CPU) indexValue(idx m68k.IndexRegister) int32 {
	var raw uint32
	if idx.Kind == m68k.Address {
		raw = c.A[idx.Reg]
	} else {
		raw = c.D[idx.Reg]
	}
	if idx.Size == m68k.Word {
		return int32(int16(raw))
	}
	return int32(raw)
}

// readEa reads a bound operand's value at the given size, dispatching to
// registers or memory.
func (c *CPU) readEa(op m68k.BoundOperand, size m68k.Size) (uint32, error) {
	switch o := op.(type) {
	case m68k.BoundImmediate:
		return o.Value, nil
	case m68k.BoundRegister:
		return c.readRegister(o, size), nil
	case m68k.BoundAbsolute:
		return c.readMemSized(o.Address, size), nil
	default:
		addr, err := c.effectiveAddress(op, size)
		if err != nil {
			return 0, err
		}
		return c.readMemSized(addr, size), nil
	}
}

// writeEa writes value (masked to size) into a bound operand.
func (c *CPU) writeEa(op m68k.BoundOperand, size m68k.Size, value uint32) error {
	switch o := op.(type) {
	case m68k.BoundRegister:
		c.writeRegister(o, size, value)
		return nil
	case m68k.BoundAbsolute:
		c.writeMemSized(o.Address, size, value)
		return nil
	default:
		addr, err := c.effectiveAddress(op, size)
		if err != nil {
			return err
		}
		c.writeMemSized(addr, size, value)
		return nil
	}
}

func (c *CPU) readRegister(r m68k.BoundRegister, size m68k.Size) uint32 {
	var raw uint32
	if r.Kind == m68k.Address {
		raw = c.A[r.Index]
	} else {
		raw = c.D[r.Index]
	}
	switch size {
	case m68k.Byte:
		return raw & 0xff
	case m68k.Word:
		return raw & 0xffff
	default:
		return raw
	}
}

// writeRegister writes value into a register, preserving the untouched
// high-order bits for byte/word writes to a data register, but always
// replacing all 32 bits of an address register (address registers have no
// partial-width writes on the 68000).
func (c *CPU) writeRegister(r m68k.BoundRegister, size m68k.Size, value uint32) {
	if r.Kind == m68k.Address {
		c.A[r.Index] = signExtendTo32(value, size)
		return
	}
	switch size {
	case m68k.Byte:
		c.D[r.Index] = c.D[r.Index]&0xffffff00 | value&0xff
	case m68k.Word:
		c.D[r.Index] = c.D[r.Index]&0xffff0000 | value&0xffff
	default:
		c.D[r.Index] = value
	}
}

func signExtendTo32(v uint32, size m68k.Size) uint32 {
	switch size {
	case m68k.Byte:
		return uint32(int32(int8(v)))
	case m68k.Word:
		return uint32(int32(int16(v)))
	default:
		return v
	}
}

// addrOf resolves a branch/jump target to an absolute address.
func (c *CPU) addrOf(op m68k.BoundOperand) (uint32, error) {
	switch o := op.(type) {
	case m68k.BoundAbsolute:
		return o.Address, nil
	default:
		return c.effectiveAddress(op, m68k.Long)
	}
}

func setNZ(flags *CCR, value uint32, size m68k.Size) {
	masked := maskToSize(value, size)
	flags.Z = masked == 0
	flags.N = signBit(masked, size)
}

func maskToSize(v uint32, size m68k.Size) uint32 {
	switch size {
	case m68k.Byte:
		return v & 0xff
	case m68k.Word:
		return v & 0xffff
	default:
		return v
	}
}

func signBit(v uint32, size m68k.Size) bool {
	switch size {
	case m68k.Byte:
		return v&0x80 != 0
	case m68k.Word:
		return v&0x8000 != 0
	default:
		return v&0x80000000 != 0
	}
}
