package asm

import (
	"github.com/m68kasm/m68kasm/arch/cpu/m68k"
)

// bindOperand turns a lexed operand into a bound
// operand by evaluating its expression strings, resolving register
// names, sign-extending displacement offsets, and enforcing that every
// indirect form's base is an address register.
func bindOperand(op m68k.LexedOperand, labels Labels) (m68k.BoundOperand, error) {
	switch o := op.(type) {
	case m68k.LexedRegister:
		return m68k.BoundRegister{Kind: o.Kind, Index: o.Index}, nil

	case m68k.LexedRegisterWithSize:
		return m68k.BoundRegister{Kind: o.Kind, Index: o.Index}, nil

	case m68k.LexedImmediate:
		val, err := evalExpr(o.Expr, labels)
		if err != nil {
			return nil, err
		}
		return m68k.BoundImmediate{Value: val}, nil

	case m68k.LexedIndirect:
		base, err := addressRegisterBase(o.Reg)
		if err != nil {
			return nil, err
		}
		return m68k.BoundIndirect{Base: base}, nil

	case m68k.LexedPostIndirect:
		base, err := addressRegisterBase(o.Reg)
		if err != nil {
			return nil, err
		}
		return m68k.BoundPostIndirect{Base: base}, nil

	case m68k.LexedPreIndirect:
		base, err := addressRegisterBase(o.Reg)
		if err != nil {
			return nil, err
		}
		return m68k.BoundPreIndirect{Base: base}, nil

	case m68k.LexedIndirectDisplacement:
		base, err := addressRegisterBase(o.Reg)
		if err != nil {
			return nil, err
		}
		val, err := evalExpr(o.Offset, labels)
		if err != nil {
			return nil, err
		}
		return m68k.BoundIndirectDisplacement{Offset: signExtend16(val), Base: base}, nil

	case m68k.LexedIndirectIndex:
		base, err := addressRegisterBase(o.Base)
		if err != nil {
			return nil, err
		}
		index, err := bindIndexRegister(o.Index)
		if err != nil {
			return nil, err
		}
		val, err := evalExpr(o.Offset, labels)
		if err != nil {
			return nil, err
		}
		return m68k.BoundIndirectIndex{Offset: signExtend8(val), Base: base, Index: index}, nil

	case m68k.LexedAbsolute:
		val, err := evalExpr(o.Expr, labels)
		if err != nil {
			return nil, err
		}
		return m68k.BoundAbsolute{Address: val}, nil

	case m68k.LexedLabel:
		addr, ok := labels[o.Name]
		if !ok {
			return nil, &m68k.LabelError{Name: o.Name, Msg: "unknown label"}
		}
		return m68k.BoundAbsolute{Address: addr}, nil

	default:
		return nil, &m68k.ParseError{Msg: "unrecognized operand"}
	}
}

// addressRegisterBase requires reg to be an address register and returns
// its index; a data-register base is an addressing-mode error.
func addressRegisterBase(reg m68k.LexedOperand) (int, error) {
	r, ok := reg.(m68k.LexedRegister)
	if !ok || r.Kind != m68k.Address {
		return 0, &m68k.InvalidAddressingModeError{
			Position: "base register",
			Received: m68k.DataReg,
			Expected: m68k.Modes(m68k.AddrReg),
		}
	}
	return r.Index, nil
}

// bindIndexRegister requires an explicit Word or Long size on the index
// register of an indexed indirect operand.
func bindIndexRegister(reg m68k.LexedOperand) (m68k.IndexRegister, error) {
	sized, ok := reg.(m68k.LexedRegisterWithSize)
	if !ok {
		return m68k.IndexRegister{}, &m68k.InvalidAddressingModeError{
			Position: "index register",
			Received: m68k.Other,
			Expected: m68k.Modes(m68k.DataReg, m68k.AddrReg),
		}
	}
	if sized.Size != m68k.Word && sized.Size != m68k.Long {
		return m68k.IndexRegister{}, &m68k.ParseError{Msg: "index register size must be word or long"}
	}
	return m68k.IndexRegister{Kind: sized.Kind, Reg: sized.Index, Size: sized.Size}, nil
}

func signExtend16(v uint32) int32 {
	w := uint16(v)
	if w&0x8000 != 0 {
		return int32(w) - 0x10000
	}
	return int32(w)
}

func signExtend8(v uint32) int32 {
	b := uint8(v)
	if b&0x80 != 0 {
		return int32(b) - 0x100
	}
	return int32(b)
}
