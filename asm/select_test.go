package asm

import (
	"testing"

	"github.com/m68kasm/m68kasm/arch/cpu/m68k"
	"github.com/retroenv/retrogolib/assert"
)

func lexSelect(t *testing.T, source string) m68k.Instruction {
	t.Helper()
	lines := Lex(source)
	inst := lines[0].Lexed.(InstructionLexed)
	labels := Labels{"target": 0x1000, "loop": 0x1000}
	instr, err := selectInstruction(inst.Name, effectiveSize(inst.Size), inst.Operands, labels)
	assert.NoError(t, err)
	return instr
}

func TestSelectMoveToDataRegister(t *testing.T) {
	instr := lexSelect(t, "move.w #4,d0")
	move := instr.(m68k.MoveInstr)
	assert.Equal(t, m68k.Move, move.Op)
}

func TestSelectMoveToAddressRegisterBecomesMovea(t *testing.T) {
	instr := lexSelect(t, "move.l d0,a0")
	move := instr.(m68k.MoveInstr)
	assert.Equal(t, m68k.Movea, move.Op)
}

func TestSelectMovemToMemory(t *testing.T) {
	instr := lexSelect(t, "movem.l d0-d3,-(a7)")
	mv := instr.(m68k.Movem)
	assert.Equal(t, m68k.ToMemory, mv.Direction)
}

func TestSelectMovemFromMemory(t *testing.T) {
	instr := lexSelect(t, "movem.l (a7)+,d0-d3")
	mv := instr.(m68k.Movem)
	assert.Equal(t, m68k.FromMemory, mv.Direction)
}

func TestSelectAddImmediateVariant(t *testing.T) {
	instr := lexSelect(t, "add.w #2,d0")
	arith := instr.(m68k.Arithmetic)
	assert.Equal(t, m68k.ArithImmediate, arith.Variant)
	assert.Equal(t, m68k.Add, arith.Op)
}

func TestSelectSubAddressVariant(t *testing.T) {
	instr := lexSelect(t, "sub.l d0,a1")
	arith := instr.(m68k.Arithmetic)
	assert.Equal(t, m68k.ArithAddress, arith.Variant)
	assert.Equal(t, m68k.Sub, arith.Op)
}

func TestSelectAddqQuickValue(t *testing.T) {
	instr := lexSelect(t, "addq.w #1,d0")
	arith := instr.(m68k.Arithmetic)
	assert.Equal(t, uint8(1), arith.Quick)
	assert.Equal(t, m68k.ArithQuick, arith.Variant)
}

func TestSelectCmpaVariant(t *testing.T) {
	instr := lexSelect(t, "cmp.l d0,a1")
	cmp := instr.(m68k.Compare)
	assert.Equal(t, m68k.Cmpa, cmp.Op)
}

func TestSelectCmpiVariant(t *testing.T) {
	instr := lexSelect(t, "cmp.w #4,d0")
	cmp := instr.(m68k.Compare)
	assert.Equal(t, m68k.Cmpi, cmp.Op)
}

func TestSelectCmpmVariant(t *testing.T) {
	instr := lexSelect(t, "cmp.b (a0)+,(a1)+")
	cmp := instr.(m68k.Compare)
	assert.Equal(t, m68k.Cmpm, cmp.Op)
}

func TestSelectConditionSuffixedBranch(t *testing.T) {
	instr := lexSelect(t, "beq target")
	bcc := instr.(m68k.Bcc)
	assert.Equal(t, m68k.EQ, bcc.Cond)
}

func TestSelectConditionSuffixedSet(t *testing.T) {
	instr := lexSelect(t, "sne d0")
	scc := instr.(m68k.Scc)
	assert.Equal(t, m68k.NE, scc.Cond)
}

func TestSelectConditionSuffixedDbcc(t *testing.T) {
	instr := lexSelect(t, "dbne d0,loop")
	dbcc := instr.(m68k.Dbcc)
	assert.Equal(t, m68k.NE, dbcc.Cond)
}

func TestSelectDbraUsesAlwaysFalseCondition(t *testing.T) {
	instr := lexSelect(t, "dbra d0,loop")
	dbcc := instr.(m68k.Dbcc)
	assert.Equal(t, m68k.F, dbcc.Cond)
}

func TestSelectTrapValidatesVector(t *testing.T) {
	lines := Lex("trap #16")
	inst := lines[0].Lexed.(InstructionLexed)
	_, err := selectInstruction(inst.Name, effectiveSize(inst.Size), inst.Operands, nil)
	assert.Error(t, err)
}

func TestSelectTrapAcceptsValidVector(t *testing.T) {
	instr := lexSelect(t, "trap #15")
	trap := instr.(m68k.Trap)
	assert.Equal(t, uint8(15), trap.Vector)
}

func TestSelectUnknownMnemonicNotLexedAsInstruction(t *testing.T) {
	lines := Lex("bogus d0")
	_, ok := lines[0].Lexed.(InstructionLexed)
	assert.False(t, ok)
}

func TestSelectExtWordSize(t *testing.T) {
	instr := lexSelect(t, "ext.w d0")
	ext := instr.(m68k.Ext)
	assert.Equal(t, m68k.Byte, ext.From)
	assert.Equal(t, m68k.Word, ext.To)
}

func TestSelectExtbAlwaysByteToLong(t *testing.T) {
	instr := lexSelect(t, "extb d0")
	ext := instr.(m68k.Ext)
	assert.Equal(t, m68k.Byte, ext.From)
	assert.Equal(t, m68k.Long, ext.To)
}
