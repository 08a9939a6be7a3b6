package asm

import "github.com/m68kasm/m68kasm/arch/cpu/m68k"

// SourceLine is one line of lexed source. A label
// followed by trailing content on the same source line lexes to two
// SourceLines sharing the same LineNumber: the label, then the re-lexed
// trailing content.
type SourceLine struct {
	RawText    string
	LineNumber int // 1-based
	Lexed      Lexed
}

// Lexed is the closed set of line classifications produced by the lexer.
type Lexed interface {
	isLexed()
}

// InstructionLexed is a mnemonic line with its operands.
type InstructionLexed struct {
	Name     string // lowercase mnemonic
	Size     m68k.Size
	Operands []m68k.LexedOperand
}

func (InstructionLexed) isLexed() {}

// LabelLexed is a bare "name:" line.
type LabelLexed struct {
	Name string
}

func (LabelLexed) isLexed() {}

// DirectiveLexed is an org/dc/dcb/ds/equ line.
type DirectiveLexed struct {
	Name    string // lowercase directive name
	Size    m68k.Size
	RawArgs []string
}

func (DirectiveLexed) isLexed() {}

// CommentLexed is a full-line comment.
type CommentLexed struct{}

func (CommentLexed) isLexed() {}

// EmptyLexed is a blank line.
type EmptyLexed struct{}

func (EmptyLexed) isLexed() {}

// UnknownLexed is a line that matched none of the recognized shapes.
type UnknownLexed struct {
	Text string
}

func (UnknownLexed) isLexed() {}
