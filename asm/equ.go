package asm

import (
	"regexp"
	"sort"
	"strings"

	"github.com/m68kasm/m68kasm/arch/cpu/m68k"
)

// equDef is one "name equ expr" binding discovered by the EQU pass.
type equDef struct {
	name string
	expr string
}

// applyEqu discovers every EQU binding in the lexed
// stream, then rewrites operand and directive-argument expression strings
// in place by textual substitution, longest names first so a shorter name
// can never accidentally match inside a longer one that contains it as a
// prefix.
func applyEqu(lines []SourceLine) []SourceLine {
	defs := collectEquDefs(lines)
	if len(defs) == 0 {
		return lines
	}

	sort.SliceStable(defs, func(i, j int) bool {
		return len(defs[i].name) > len(defs[j].name)
	})

	out := make([]SourceLine, len(lines))
	for i, line := range lines {
		out[i] = substituteLine(line, defs)
	}
	return out
}

func collectEquDefs(lines []SourceLine) []equDef {
	var defs []equDef
	for _, line := range lines {
		d, ok := line.Lexed.(DirectiveLexed)
		if !ok || d.Name != "equ" || len(d.RawArgs) != 2 {
			continue
		}
		defs = append(defs, equDef{name: d.RawArgs[0], expr: d.RawArgs[1]})
	}
	return defs
}

func substituteLine(line SourceLine, defs []equDef) SourceLine {
	switch l := line.Lexed.(type) {
	case InstructionLexed:
		operands := make([]m68k.LexedOperand, len(l.Operands))
		for i, op := range l.Operands {
			operands[i] = substituteOperand(op, defs)
		}
		l.Operands = operands
		line.Lexed = l

	case DirectiveLexed:
		args := make([]string, len(l.RawArgs))
		for i, a := range l.RawArgs {
			args[i] = substituteText(a, defs)
		}
		l.RawArgs = args
		line.Lexed = l
	}
	return line
}

func substituteOperand(op m68k.LexedOperand, defs []equDef) m68k.LexedOperand {
	switch o := op.(type) {
	case m68k.LexedImmediate:
		// an EQU value that itself carries a '#' (ten equ #10) must not
		// stack a second one
		o.Expr = strings.TrimPrefix(substituteText(o.Expr, defs), "#")
		return o
	case m68k.LexedAbsolute:
		return reclassified(o.Expr, substituteText(o.Expr, defs), op)
	case m68k.LexedLabel:
		return reclassified(o.Name, substituteText(o.Name, defs), op)
	case m68k.LexedIndirectDisplacement:
		o.Offset = substituteText(o.Offset, defs)
		return o
	case m68k.LexedIndirectIndex:
		o.Offset = substituteText(o.Offset, defs)
		return o
	default:
		// register kinds and register-range masks are never substituted
		return op
	}
}

// reclassified re-runs operand classification when substitution changed the
// text: "ten equ #10" turns a bare "ten" operand into the immediate "#10",
// which must lex as an Immediate, not stay an Absolute.
func reclassified(old, substituted string, op m68k.LexedOperand) m68k.LexedOperand {
	if substituted == old {
		return op
	}
	replacement, err := classifyOperand(substituted)
	if err != nil {
		return op
	}
	return replacement
}

func substituteText(text string, defs []equDef) string {
	for _, d := range defs {
		pattern := `\b` + regexp.QuoteMeta(d.name) + `\b`
		re := sharedRegexCache.get(pattern)
		text = re.ReplaceAllString(text, d.expr)
	}
	return text
}
