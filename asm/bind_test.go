package asm

import (
	"testing"

	"github.com/m68kasm/m68kasm/arch/cpu/m68k"
	"github.com/retroenv/retrogolib/assert"
)

func TestBindOperandImmediate(t *testing.T) {
	bound, err := bindOperand(m68k.LexedImmediate{Expr: "4"}, nil)
	assert.NoError(t, err)
	assert.Equal(t, m68k.BoundImmediate{Value: 4}, bound)
}

func TestBindOperandIndirectDisplacementSignExtends(t *testing.T) {
	bound, err := bindOperand(m68k.LexedIndirectDisplacement{
		Offset: "$ffff",
		Reg:    m68k.LexedRegister{Kind: m68k.Address, Index: 3},
	}, nil)
	assert.NoError(t, err)
	disp := bound.(m68k.BoundIndirectDisplacement)
	assert.Equal(t, int32(-1), disp.Offset)
	assert.Equal(t, 3, disp.Base)
}

func TestBindOperandIndirectDisplacementPositive(t *testing.T) {
	bound, err := bindOperand(m68k.LexedIndirectDisplacement{
		Offset: "8",
		Reg:    m68k.LexedRegister{Kind: m68k.Address, Index: 0},
	}, nil)
	assert.NoError(t, err)
	disp := bound.(m68k.BoundIndirectDisplacement)
	assert.Equal(t, int32(8), disp.Offset)
}

func TestBindOperandIndirectRejectsDataRegisterBase(t *testing.T) {
	_, err := bindOperand(m68k.LexedIndirect{Reg: m68k.LexedRegister{Kind: m68k.Data, Index: 2}}, nil)
	assert.Error(t, err)
}

func TestBindOperandIndirectIndexSignExtendsByteOffset(t *testing.T) {
	bound, err := bindOperand(m68k.LexedIndirectIndex{
		Offset: "$ff",
		Base:   m68k.LexedRegister{Kind: m68k.Address, Index: 1},
		Index:  m68k.LexedRegisterWithSize{Kind: m68k.Data, Index: 0, Size: m68k.Word},
	}, nil)
	assert.NoError(t, err)
	idx := bound.(m68k.BoundIndirectIndex)
	assert.Equal(t, int32(-1), idx.Offset)
	assert.Equal(t, 1, idx.Base)
	assert.Equal(t, m68k.Word, idx.Index.Size)
}

func TestBindOperandIndirectIndexRequiresExplicitIndexSize(t *testing.T) {
	_, err := bindOperand(m68k.LexedIndirectIndex{
		Offset: "0",
		Base:   m68k.LexedRegister{Kind: m68k.Address, Index: 1},
		Index:  m68k.LexedRegister{Kind: m68k.Data, Index: 0},
	}, nil)
	assert.Error(t, err)
}

func TestBindOperandLabelResolves(t *testing.T) {
	bound, err := bindOperand(m68k.LexedLabel{Name: "start"}, Labels{"start": 0x2000})
	assert.NoError(t, err)
	assert.Equal(t, m68k.BoundAbsolute{Address: 0x2000}, bound)
}

func TestBindOperandUnknownLabelErrors(t *testing.T) {
	_, err := bindOperand(m68k.LexedLabel{Name: "missing"}, Labels{})
	assert.Error(t, err)
}

func TestBindOperandPostIndirectAcceptsAddressRegister(t *testing.T) {
	_, err := bindOperand(m68k.LexedPostIndirect{Reg: m68k.LexedRegister{Kind: m68k.Address, Index: 7}}, nil)
	assert.NoError(t, err)
}
