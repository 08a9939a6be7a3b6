package asm

import (
	"strings"

	"github.com/m68kasm/m68kasm/arch/cpu/m68k"
)

// selectInstruction binds a mnemonic's lexed operands and chooses the
// concrete instruction variant from the mnemonic, the operand shapes, and
// the size suffix: "move" with an address-register destination becomes
// MOVEA, "add" with an immediate source becomes ADDI, and so on.
func selectInstruction(name string, size m68k.Size, ops []m68k.LexedOperand, labels Labels) (m68k.Instruction, error) {
	b := func(i int) (m68k.BoundOperand, error) { return bindOperand(ops[i], labels) }

	switch name {
	case "move":
		if err := arity(ops, 2); err != nil {
			return nil, err
		}
		src, err := b(0)
		if err != nil {
			return nil, err
		}
		dst, err := b(1)
		if err != nil {
			return nil, err
		}
		op := m68k.Move
		if ops[1].Mode() == m68k.AddrReg {
			op = m68k.Movea
		}
		return m68k.MoveInstr{Op: op, Size: size, Src: src, Dst: dst}, nil

	case "movea":
		if err := arity(ops, 2); err != nil {
			return nil, err
		}
		src, err := b(0)
		if err != nil {
			return nil, err
		}
		dst, err := b(1)
		if err != nil {
			return nil, err
		}
		return m68k.MoveInstr{Op: m68k.Movea, Size: size, Src: src, Dst: dst}, nil

	case "moveq":
		if err := arity(ops, 2); err != nil {
			return nil, err
		}
		src, err := b(0)
		if err != nil {
			return nil, err
		}
		dst, err := b(1)
		if err != nil {
			return nil, err
		}
		return m68k.MoveInstr{Op: m68k.Moveq, Size: m68k.Long, Src: src, Dst: dst}, nil

	case "movem":
		if err := arity(ops, 2); err != nil {
			return nil, err
		}
		if r, ok := ops[0].(m68k.LexedRegisterRange); ok {
			ea, err := b(1)
			if err != nil {
				return nil, err
			}
			return m68k.Movem{Direction: m68k.ToMemory, Mask: r.Mask, Ea: ea, Size: size}, nil
		}
		if r, ok := ops[1].(m68k.LexedRegisterRange); ok {
			ea, err := b(0)
			if err != nil {
				return nil, err
			}
			return m68k.Movem{Direction: m68k.FromMemory, Mask: r.Mask, Ea: ea, Size: size}, nil
		}
		return nil, &m68k.ParseError{Msg: "movem requires a register list operand"}

	case "lea":
		if err := arity(ops, 2); err != nil {
			return nil, err
		}
		src, err := b(0)
		if err != nil {
			return nil, err
		}
		dst, err := b(1)
		if err != nil {
			return nil, err
		}
		return m68k.Lea{Src: src, Dst: dst}, nil

	case "pea":
		if err := arity(ops, 1); err != nil {
			return nil, err
		}
		src, err := b(0)
		if err != nil {
			return nil, err
		}
		return m68k.Pea{Src: src}, nil

	case "exg":
		if err := arity(ops, 2); err != nil {
			return nil, err
		}
		ra, err := b(0)
		if err != nil {
			return nil, err
		}
		rb, err := b(1)
		if err != nil {
			return nil, err
		}
		return m68k.Exg{Ra: ra, Rb: rb}, nil

	case "swap":
		if err := arity(ops, 1); err != nil {
			return nil, err
		}
		reg, err := b(0)
		if err != nil {
			return nil, err
		}
		return m68k.Swap{Reg: reg}, nil

	case "link":
		if err := arity(ops, 2); err != nil {
			return nil, err
		}
		reg, err := b(0)
		if err != nil {
			return nil, err
		}
		dispOp, err := b(1)
		if err != nil {
			return nil, err
		}
		disp, ok := dispOp.(m68k.BoundImmediate)
		if !ok {
			return nil, &m68k.ParseError{Msg: "link requires an immediate displacement"}
		}
		return m68k.Link{Reg: reg, Disp: int32(disp.Value)}, nil

	case "unlk":
		if err := arity(ops, 1); err != nil {
			return nil, err
		}
		reg, err := b(0)
		if err != nil {
			return nil, err
		}
		return m68k.Unlk{Reg: reg}, nil

	case "add", "sub":
		return selectArith(name == "sub", arithVariant(ops), size, ops, labels)

	case "adda", "suba":
		return selectArith(name == "suba", m68k.ArithAddress, size, ops, labels)

	case "addi", "subi":
		return selectArith(name == "subi", m68k.ArithImmediate, size, ops, labels)

	case "addq", "subq":
		if err := arity(ops, 2); err != nil {
			return nil, err
		}
		imm, ok := ops[0].(m68k.LexedImmediate)
		if !ok {
			return nil, &m68k.ParseError{Msg: "addq/subq requires an immediate first operand"}
		}
		val, err := evalExpr(imm.Expr, labels)
		if err != nil {
			return nil, err
		}
		dst, err := b(1)
		if err != nil {
			return nil, err
		}
		op := m68k.Add
		if name == "subq" {
			op = m68k.Sub
		}
		return m68k.Arithmetic{Op: op, Variant: m68k.ArithQuick, Size: size, Dst: dst, Quick: uint8(val)}, nil

	case "neg":
		if err := arity(ops, 1); err != nil {
			return nil, err
		}
		ea, err := b(0)
		if err != nil {
			return nil, err
		}
		return m68k.Neg{Ea: ea, Size: size}, nil

	case "clr":
		if err := arity(ops, 1); err != nil {
			return nil, err
		}
		ea, err := b(0)
		if err != nil {
			return nil, err
		}
		return m68k.Clr{Ea: ea, Size: size}, nil

	case "ext":
		if err := arity(ops, 1); err != nil {
			return nil, err
		}
		reg, err := b(0)
		if err != nil {
			return nil, err
		}
		switch size {
		case m68k.Word:
			return m68k.Ext{Reg: reg, From: m68k.Byte, To: m68k.Word}, nil
		case m68k.Long:
			return m68k.Ext{Reg: reg, From: m68k.Word, To: m68k.Long}, nil
		default:
			return nil, &m68k.ParseError{Msg: "ext requires a .w or .l size suffix"}
		}

	case "extb":
		if err := arity(ops, 1); err != nil {
			return nil, err
		}
		reg, err := b(0)
		if err != nil {
			return nil, err
		}
		return m68k.Ext{Reg: reg, From: m68k.Byte, To: m68k.Long}, nil

	case "muls", "mulu", "divs", "divu":
		if err := arity(ops, 2); err != nil {
			return nil, err
		}
		src, err := b(0)
		if err != nil {
			return nil, err
		}
		dst, err := b(1)
		if err != nil {
			return nil, err
		}
		op := m68k.Mul
		if strings.HasPrefix(name, "div") {
			op = m68k.Div
		}
		return m68k.MulDiv{Op: op, Signed: strings.HasSuffix(name, "s"), Src: src, Dst: dst}, nil

	case "and", "or", "eor":
		if err := arity(ops, 2); err != nil {
			return nil, err
		}
		src, err := b(0)
		if err != nil {
			return nil, err
		}
		dst, err := b(1)
		if err != nil {
			return nil, err
		}
		return m68k.Logic{Op: logicOp(name), Immediate: ops[0].Mode() == m68k.Immediate, Size: size, Src: src, Dst: dst}, nil

	case "andi", "ori", "eori":
		if err := arity(ops, 2); err != nil {
			return nil, err
		}
		src, err := b(0)
		if err != nil {
			return nil, err
		}
		dst, err := b(1)
		if err != nil {
			return nil, err
		}
		return m68k.Logic{Op: logicOp(strings.TrimSuffix(name, "i")), Immediate: true, Size: size, Src: src, Dst: dst}, nil

	case "not":
		if err := arity(ops, 1); err != nil {
			return nil, err
		}
		ea, err := b(0)
		if err != nil {
			return nil, err
		}
		return m68k.Not{Ea: ea, Size: size}, nil

	case "cmp":
		if err := arity(ops, 2); err != nil {
			return nil, err
		}
		src, err := b(0)
		if err != nil {
			return nil, err
		}
		dst, err := b(1)
		if err != nil {
			return nil, err
		}
		op := m68k.Cmp
		switch {
		case ops[1].Mode() == m68k.AddrReg:
			op = m68k.Cmpa
		case ops[0].Mode() == m68k.Immediate:
			op = m68k.Cmpi
		case ops[0].Mode() == m68k.PostInc && ops[1].Mode() == m68k.PostInc:
			op = m68k.Cmpm
		}
		return m68k.Compare{Op: op, Size: size, Src: src, Dst: dst}, nil

	case "cmpa", "cmpi", "cmpm":
		if err := arity(ops, 2); err != nil {
			return nil, err
		}
		src, err := b(0)
		if err != nil {
			return nil, err
		}
		dst, err := b(1)
		if err != nil {
			return nil, err
		}
		op := map[string]m68k.CompareOp{"cmpa": m68k.Cmpa, "cmpi": m68k.Cmpi, "cmpm": m68k.Cmpm}[name]
		return m68k.Compare{Op: op, Size: size, Src: src, Dst: dst}, nil

	case "tst":
		if err := arity(ops, 1); err != nil {
			return nil, err
		}
		ea, err := b(0)
		if err != nil {
			return nil, err
		}
		return m68k.Tst{Ea: ea, Size: size}, nil

	case "btst", "bset", "bclr", "bchg":
		if err := arity(ops, 2); err != nil {
			return nil, err
		}
		bit, err := b(0)
		if err != nil {
			return nil, err
		}
		ea, err := b(1)
		if err != nil {
			return nil, err
		}
		op := map[string]m68k.BitOp{"btst": m68k.Btst, "bset": m68k.Bset, "bclr": m68k.Bclr, "bchg": m68k.Bchg}[name]
		return m68k.BitInstr{Op: op, Bit: bit, Ea: ea}, nil

	case "asl", "asr", "lsl", "lsr", "rol", "ror":
		if err := arity(ops, 2); err != nil {
			return nil, err
		}
		count, err := b(0)
		if err != nil {
			return nil, err
		}
		ea, err := b(1)
		if err != nil {
			return nil, err
		}
		kind := map[string]m68k.ShiftKind{
			"asl": m68k.Arithmetic68k, "asr": m68k.Arithmetic68k,
			"lsl": m68k.Logical68k, "lsr": m68k.Logical68k,
			"rol": m68k.Rotate68k, "ror": m68k.Rotate68k,
		}[name]
		dir := m68k.Right
		if strings.HasSuffix(name, "l") {
			dir = m68k.Left
		}
		return m68k.Shift{Kind: kind, Dir: dir, Count: count, Ea: ea, Size: size}, nil

	case "bra":
		if err := arity(ops, 1); err != nil {
			return nil, err
		}
		target, err := b(0)
		if err != nil {
			return nil, err
		}
		return m68k.Bra{Target: target}, nil

	case "bsr":
		if err := arity(ops, 1); err != nil {
			return nil, err
		}
		target, err := b(0)
		if err != nil {
			return nil, err
		}
		return m68k.Bsr{Target: target}, nil

	case "jmp":
		if err := arity(ops, 1); err != nil {
			return nil, err
		}
		ea, err := b(0)
		if err != nil {
			return nil, err
		}
		return m68k.Jmp{Ea: ea}, nil

	case "jsr":
		if err := arity(ops, 1); err != nil {
			return nil, err
		}
		ea, err := b(0)
		if err != nil {
			return nil, err
		}
		return m68k.Jsr{Ea: ea}, nil

	case "rts":
		if err := arity(ops, 0); err != nil {
			return nil, err
		}
		return m68k.Rts{}, nil

	case "trap":
		if err := arity(ops, 1); err != nil {
			return nil, err
		}
		imm, ok := ops[0].(m68k.LexedImmediate)
		if !ok {
			return nil, &m68k.ParseError{Msg: "trap requires an immediate operand"}
		}
		val, err := evalExpr(imm.Expr, labels)
		if err != nil {
			return nil, err
		}
		if val > 15 {
			return nil, &m68k.InvalidTrapError{Value: int(val)}
		}
		return m68k.Trap{Vector: uint8(val)}, nil

	case "dbra":
		if err := arity(ops, 2); err != nil {
			return nil, err
		}
		reg, err := b(0)
		if err != nil {
			return nil, err
		}
		target, err := b(1)
		if err != nil {
			return nil, err
		}
		return m68k.Dbcc{Cond: m68k.F, Reg: reg, Target: target}, nil
	}

	if rest, ok := strings.CutPrefix(name, "db"); ok {
		if cond, known := m68k.ParseCondition(rest); known {
			if err := arity(ops, 2); err != nil {
				return nil, err
			}
			reg, err := b(0)
			if err != nil {
				return nil, err
			}
			target, err := b(1)
			if err != nil {
				return nil, err
			}
			return m68k.Dbcc{Cond: cond, Reg: reg, Target: target}, nil
		}
	}

	if rest, ok := strings.CutPrefix(name, "b"); ok {
		if cond, known := m68k.ParseCondition(rest); known {
			if err := arity(ops, 1); err != nil {
				return nil, err
			}
			target, err := b(0)
			if err != nil {
				return nil, err
			}
			return m68k.Bcc{Cond: cond, Target: target}, nil
		}
	}

	if rest, ok := strings.CutPrefix(name, "s"); ok {
		if cond, known := m68k.ParseCondition(rest); known {
			if err := arity(ops, 1); err != nil {
				return nil, err
			}
			ea, err := b(0)
			if err != nil {
				return nil, err
			}
			return m68k.Scc{Cond: cond, Ea: ea}, nil
		}
	}

	return nil, &m68k.ParseError{Msg: "unknown mnemonic", Text: name}
}

func arity(ops []m68k.LexedOperand, n int) error {
	if len(ops) != n {
		return &m68k.ParseError{Msg: "wrong number of operands"}
	}
	return nil
}

func arithVariant(ops []m68k.LexedOperand) m68k.ArithVariant {
	if len(ops) == 2 {
		if ops[0].Mode() == m68k.Immediate {
			return m68k.ArithImmediate
		}
		if ops[1].Mode() == m68k.AddrReg {
			return m68k.ArithAddress
		}
	}
	return m68k.ArithPlain
}

func selectArith(isSub bool, variant m68k.ArithVariant, size m68k.Size, ops []m68k.LexedOperand, labels Labels) (m68k.Instruction, error) {
	if err := arity(ops, 2); err != nil {
		return nil, err
	}
	src, err := bindOperand(ops[0], labels)
	if err != nil {
		return nil, err
	}
	dst, err := bindOperand(ops[1], labels)
	if err != nil {
		return nil, err
	}
	op := m68k.Add
	if isSub {
		op = m68k.Sub
	}
	return m68k.Arithmetic{Op: op, Variant: variant, Size: size, Src: src, Dst: dst}, nil
}

func logicOp(name string) m68k.LogicOp {
	switch name {
	case "and":
		return m68k.And
	case "or":
		return m68k.Or
	default:
		return m68k.Eor
	}
}
