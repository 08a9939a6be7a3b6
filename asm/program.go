package asm

import "github.com/m68kasm/m68kasm/arch/cpu/m68k"

// InstructionLine pairs an assembled instruction with its load address and
// originating source line.
type InstructionLine struct {
	Instruction m68k.Instruction
	Address     uint32
	SourceLine  SourceLine
}

// Program is the complete output of assembling one source file: the
// address-resolved instruction stream, the materialized directive bytes,
// and the label table.
type Program struct {
	StartAddress uint32
	Labels       map[string]Label
	Directives   []DirectiveRecord
	Instructions []InstructionLine

	// LexedLines is exposed for tooling (syntax highlighters, formatters)
	// that want the lexer's output without re-running it.
	LexedLines []SourceLine
}

// Compile runs the full pipeline over source: lex, substitute EQUs,
// assign addresses, materialize directives, semantically check the lexed
// lines, then bind operands and select instructions. Diagnostics
// from every stage are accumulated and returned together; Program is still
// populated with whatever could be assembled even when diags is non-empty.
func Compile(source string) (*Program, []Diagnostic) {
	lines := Lex(source)
	lines = applyEqu(lines)

	addrs, labels, diags := assignAddresses(lines)

	directives, dDiags := materializeDirectives(lines, addrs, labels)
	diags = append(diags, dDiags...)

	diags = append(diags, checkProgram(lines, labels)...)

	exprLabels := labelsToExprLabels(labels)
	var instructions []InstructionLine
	for i, line := range lines {
		il, ok := line.Lexed.(InstructionLexed)
		if !ok {
			continue
		}
		inst, err := selectInstruction(il.Name, effectiveSize(il.Size), il.Operands, exprLabels)
		if err != nil {
			diags = append(diags, diagFor(line, err.Error()))
			continue
		}
		instructions = append(instructions, InstructionLine{
			Instruction: inst,
			Address:     addrs[i],
			SourceLine:  line,
		})
	}

	program := &Program{
		StartAddress: startAddress(labels, instructions),
		Labels:       labels,
		Directives:   directives,
		Instructions: instructions,
		LexedLines:   lines,
	}

	return program, diags
}

// startAddress is the label START's address when present, else the first
// instruction's address, else 0.
func startAddress(labels map[string]Label, instructions []InstructionLine) uint32 {
	if start, ok := labels["START"]; ok {
		return start.Address
	}
	if len(instructions) > 0 {
		return instructions[0].Address
	}
	return 0
}

// FinalInstructionAddress is the address of the last instruction assembled,
// or 0 when the program has no instructions.
func (p *Program) FinalInstructionAddress() uint32 {
	if len(p.Instructions) == 0 {
		return 0
	}
	return p.Instructions[len(p.Instructions)-1].Address
}
