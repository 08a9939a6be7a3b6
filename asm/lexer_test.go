package asm

import (
	"testing"

	"github.com/m68kasm/m68kasm/arch/cpu/m68k"
	"github.com/retroenv/retrogolib/assert"
)

func TestLexInstructionLine(t *testing.T) {
	lines := Lex("move.w #4,d0")
	assert.Len(t, lines, 1)
	inst, ok := lines[0].Lexed.(InstructionLexed)
	assert.True(t, ok)
	assert.Equal(t, "move", inst.Name)
	assert.Equal(t, m68k.Word, inst.Size)
	assert.Len(t, inst.Operands, 2)
}

func TestLexLabelWithTrailingInstruction(t *testing.T) {
	lines := Lex("start: move.l d0,d1")
	assert.Len(t, lines, 2)
	label, ok := lines[0].Lexed.(LabelLexed)
	assert.True(t, ok)
	assert.Equal(t, "start", label.Name)
	_, ok = lines[1].Lexed.(InstructionLexed)
	assert.True(t, ok)
}

func TestLexCommentOnlyLine(t *testing.T) {
	lines := Lex("; a comment")
	assert.Len(t, lines, 1)
	_, ok := lines[0].Lexed.(CommentLexed)
	assert.True(t, ok)
}

func TestLexAsteriskCommentAtColumnOne(t *testing.T) {
	lines := Lex("* full line comment")
	_, ok := lines[0].Lexed.(CommentLexed)
	assert.True(t, ok)
}

func TestLexEmptyLine(t *testing.T) {
	lines := Lex("")
	assert.Len(t, lines, 1)
	_, ok := lines[0].Lexed.(EmptyLexed)
	assert.True(t, ok)
}

func TestLexEquDirective(t *testing.T) {
	lines := Lex("VALUE EQU 4+2")
	d, ok := lines[0].Lexed.(DirectiveLexed)
	assert.True(t, ok)
	assert.Equal(t, "equ", d.Name)
	assert.Equal(t, []string{"VALUE", "4+2"}, d.RawArgs)
}

func TestLexDirectiveKeyword(t *testing.T) {
	lines := Lex("ORG $2000")
	d, ok := lines[0].Lexed.(DirectiveLexed)
	assert.True(t, ok)
	assert.Equal(t, "org", d.Name)
	assert.Equal(t, []string{"$2000"}, d.RawArgs)
}

func TestLexUnknownLine(t *testing.T) {
	lines := Lex("???")
	_, ok := lines[0].Lexed.(UnknownLexed)
	assert.True(t, ok)
}

func TestLexMultipleLines(t *testing.T) {
	lines := Lex("move.w #1,d0\nadd.w #2,d0\n")
	assert.Len(t, lines, 3)
	_, ok := lines[2].Lexed.(EmptyLexed)
	assert.True(t, ok)
}

func TestIsMnemonicConditionFamilies(t *testing.T) {
	assert.True(t, isMnemonic("beq"))
	assert.True(t, isMnemonic("dbra"))
	assert.True(t, isMnemonic("seq"))
	assert.False(t, isMnemonic("bogus"))
}
