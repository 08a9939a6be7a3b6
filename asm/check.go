package asm

import (
	"fmt"
	"strings"

	"github.com/m68kasm/m68kasm/arch/cpu/m68k"
)

// sizeRule constrains which size suffixes a mnemonic accepts.
type sizeRule int

const (
	anySize     sizeRule = iota // .b, .w, .l, or none (defaults to .w)
	noSize                      // must not carry a suffix
	wordOrLong                  // .w or .l only (or none, defaulting to .w)
)

// mnemonicRule is one row of the semantic checker's per-mnemonic table:
// the expected operand count and, for each operand position, the set of
// addressing modes the mnemonic accepts there.
type mnemonicRule struct {
	operands int
	modes    []m68k.ModeSet
	size     sizeRule
}

var dataAlterable = m68k.Modes(m68k.DataReg, m68k.Indirect, m68k.PostInc, m68k.PreDec,
	m68k.IndirectDisp, m68k.IndirectIndex, m68k.Absolute, m68k.Label)
var controlAddressing = m68k.Modes(m68k.Indirect, m68k.IndirectDisp, m68k.IndirectIndex, m68k.Absolute, m68k.Label)
var dataReg = m68k.Modes(m68k.DataReg)
var addrReg = m68k.Modes(m68k.AddrReg)
var anyReg = m68k.Modes(m68k.DataReg, m68k.AddrReg)
var immediateOnly = m68k.Modes(m68k.Immediate)
var srcEa = m68k.Modes(m68k.DataReg, m68k.AddrReg, m68k.Indirect, m68k.PostInc, m68k.PreDec,
	m68k.IndirectDisp, m68k.IndirectIndex, m68k.Immediate, m68k.Absolute, m68k.Label)
var branchTarget = m68k.Modes(m68k.Absolute, m68k.Label)

// movemOperand admits a register list on either side and the memory forms
// MOVEM can address, including the canonical (An)+ and -(An) stack idioms.
var movemOperand = m68k.Modes(m68k.RegisterRange, m68k.PostInc, m68k.PreDec) | controlAddressing

var mnemonicRules = map[string]mnemonicRule{
	"move":   {2, []m68k.ModeSet{srcEa, dataAlterable | addrReg}, anySize},
	"movea":  {2, []m68k.ModeSet{srcEa, addrReg}, wordOrLong},
	"moveq":  {2, []m68k.ModeSet{immediateOnly, dataReg}, noSize},
	"movem":  {2, []m68k.ModeSet{movemOperand, movemOperand}, wordOrLong},
	"lea":    {2, []m68k.ModeSet{controlAddressing, addrReg}, noSize},
	"pea":    {1, []m68k.ModeSet{controlAddressing}, noSize},
	"exg":    {2, []m68k.ModeSet{anyReg, anyReg}, noSize},
	"swap":   {1, []m68k.ModeSet{dataReg}, noSize},
	"link":   {2, []m68k.ModeSet{addrReg, immediateOnly}, noSize},
	"unlk":   {1, []m68k.ModeSet{addrReg}, noSize},
	"add":    {2, []m68k.ModeSet{srcEa, dataAlterable | dataReg}, anySize},
	"sub":    {2, []m68k.ModeSet{srcEa, dataAlterable | dataReg}, anySize},
	"adda":   {2, []m68k.ModeSet{srcEa, addrReg}, wordOrLong},
	"suba":   {2, []m68k.ModeSet{srcEa, addrReg}, wordOrLong},
	"addi":   {2, []m68k.ModeSet{immediateOnly, dataAlterable}, anySize},
	"subi":   {2, []m68k.ModeSet{immediateOnly, dataAlterable}, anySize},
	"addq":   {2, []m68k.ModeSet{immediateOnly, dataAlterable | addrReg}, anySize},
	"subq":   {2, []m68k.ModeSet{immediateOnly, dataAlterable | addrReg}, anySize},
	"neg":    {1, []m68k.ModeSet{dataAlterable}, anySize},
	"clr":    {1, []m68k.ModeSet{dataAlterable}, anySize},
	"ext":    {1, []m68k.ModeSet{dataReg}, wordOrLong},
	"extb":   {1, []m68k.ModeSet{dataReg}, noSize},
	"muls":   {2, []m68k.ModeSet{srcEa, dataReg}, noSize},
	"mulu":   {2, []m68k.ModeSet{srcEa, dataReg}, noSize},
	"divs":   {2, []m68k.ModeSet{srcEa, dataReg}, noSize},
	"divu":   {2, []m68k.ModeSet{srcEa, dataReg}, noSize},
	"and":    {2, []m68k.ModeSet{srcEa, dataAlterable | dataReg}, anySize},
	"or":     {2, []m68k.ModeSet{srcEa, dataAlterable | dataReg}, anySize},
	"eor":    {2, []m68k.ModeSet{dataReg, dataAlterable}, anySize},
	"andi":   {2, []m68k.ModeSet{immediateOnly, dataAlterable}, anySize},
	"ori":    {2, []m68k.ModeSet{immediateOnly, dataAlterable}, anySize},
	"eori":   {2, []m68k.ModeSet{immediateOnly, dataAlterable}, anySize},
	"not":    {1, []m68k.ModeSet{dataAlterable}, anySize},
	"cmp":    {2, []m68k.ModeSet{srcEa, dataReg}, anySize},
	"cmpa":   {2, []m68k.ModeSet{srcEa, addrReg}, wordOrLong},
	"cmpi":   {2, []m68k.ModeSet{immediateOnly, dataAlterable}, anySize},
	"cmpm":   {2, []m68k.ModeSet{m68k.Modes(m68k.PostInc), m68k.Modes(m68k.PostInc)}, anySize},
	"tst":    {1, []m68k.ModeSet{dataAlterable}, anySize},
	"btst":   {2, []m68k.ModeSet{dataReg | immediateOnly, dataAlterable}, noSize},
	"bset":   {2, []m68k.ModeSet{dataReg | immediateOnly, dataAlterable}, noSize},
	"bclr":   {2, []m68k.ModeSet{dataReg | immediateOnly, dataAlterable}, noSize},
	"bchg":   {2, []m68k.ModeSet{dataReg | immediateOnly, dataAlterable}, noSize},
	"asl":    {2, []m68k.ModeSet{dataReg | immediateOnly, dataReg}, anySize},
	"asr":    {2, []m68k.ModeSet{dataReg | immediateOnly, dataReg}, anySize},
	"lsl":    {2, []m68k.ModeSet{dataReg | immediateOnly, dataReg}, anySize},
	"lsr":    {2, []m68k.ModeSet{dataReg | immediateOnly, dataReg}, anySize},
	"rol":    {2, []m68k.ModeSet{dataReg | immediateOnly, dataReg}, anySize},
	"ror":    {2, []m68k.ModeSet{dataReg | immediateOnly, dataReg}, anySize},
	"bra":    {1, []m68k.ModeSet{branchTarget}, noSize},
	"bsr":    {1, []m68k.ModeSet{branchTarget}, noSize},
	"jmp":    {1, []m68k.ModeSet{controlAddressing}, noSize},
	"jsr":    {1, []m68k.ModeSet{controlAddressing}, noSize},
	"rts":    {0, nil, noSize},
	"dbra":   {2, []m68k.ModeSet{dataReg, branchTarget}, noSize},
	"trap":   {1, []m68k.ModeSet{immediateOnly}, noSize},
}

// checkerRuleFor resolves a mnemonic to its rule, handling the
// condition-code families (bXX, dbXX, sXX) whose suffixes are not
// enumerated individually in mnemonicRules.
func checkerRuleFor(name string) (mnemonicRule, bool) {
	if r, ok := mnemonicRules[name]; ok {
		return r, true
	}
	if rest, ok := strings.CutPrefix(name, "db"); ok {
		if _, known := m68k.ParseCondition(rest); known {
			return mnemonicRule{2, []m68k.ModeSet{dataReg, branchTarget}, noSize}, true
		}
	}
	if rest, ok := strings.CutPrefix(name, "b"); ok {
		if _, known := m68k.ParseCondition(rest); known {
			return mnemonicRule{1, []m68k.ModeSet{branchTarget}, noSize}, true
		}
	}
	if rest, ok := strings.CutPrefix(name, "s"); ok {
		if _, known := m68k.ParseCondition(rest); known {
			return mnemonicRule{1, []m68k.ModeSet{dataAlterable}, noSize}, true
		}
	}
	return mnemonicRule{}, false
}

// checkProgram walks every lexed line, accumulating
// every diagnostic it finds rather than stopping at the first, and never
// panics on malformed input.
func checkProgram(lines []SourceLine, labels map[string]Label) []Diagnostic {
	var diags []Diagnostic

	for _, line := range lines {
		switch l := line.Lexed.(type) {
		case InstructionLexed:
			diags = append(diags, checkInstructionLine(line, l, labels)...)
		case DirectiveLexed:
			diags = append(diags, checkDirectiveLine(line, l)...)
		case UnknownLexed:
			diags = append(diags, diagFor(line, "unrecognized line"))
		}
	}

	return diags
}

func checkInstructionLine(line SourceLine, l InstructionLexed, labels map[string]Label) []Diagnostic {
	var diags []Diagnostic

	rule, known := checkerRuleFor(l.Name)
	if !known {
		return []Diagnostic{diagFor(line, "unknown mnemonic "+l.Name)}
	}

	if l.Size == m68k.Unknown {
		diags = append(diags, diagFor(line, "unknown size suffix on "+l.Name+", expected .b, .w or .l"))
	}

	switch rule.size {
	case noSize:
		if l.Size != m68k.Unspecified {
			diags = append(diags, diagFor(line, l.Name+" does not accept a size suffix"))
		}
	case wordOrLong:
		if l.Size == m68k.Byte {
			diags = append(diags, diagFor(line, l.Name+" does not accept a .b size suffix"))
		}
	}

	if len(l.Operands) != rule.operands {
		diags = append(diags, diagFor(line, fmt.Sprintf("%s expects exactly %d operands, received %d",
			l.Name, rule.operands, len(l.Operands))))
		return diags
	}

	for i, op := range l.Operands {
		if i >= len(rule.modes) {
			break
		}
		expected := rule.modes[i]
		if !expected.Has(op.Mode()) {
			diags = append(diags, diagFor(line,
				"incorrect "+ordinal(i)+" operand addressing mode, received "+op.Mode().String()+", expected "+strings.Join(expected.Names(), "/")))
			continue
		}
		diags = append(diags, checkOperandDetail(line, op, labels)...)
	}

	return diags
}

func ordinal(i int) string {
	switch i {
	case 0:
		return "first"
	case 1:
		return "second"
	default:
		return fmt.Sprintf("%d.", i+1)
	}
}

func checkOperandDetail(line SourceLine, op m68k.LexedOperand, labels map[string]Label) []Diagnostic {
	var diags []Diagnostic

	switch o := op.(type) {
	case m68k.LexedImmediate:
		if !isValidImmediateLiteral(o.Expr) {
			diags = append(diags, diagFor(line,
				"malformed immediate literal, expected #0b…, #0o…, #$… or #digits"))
		}
	case m68k.LexedAbsolute:
		if _, err := evalExpr(o.Expr, labelsToExprLabels(labels)); err != nil {
			diags = append(diags, diagFor(line, err.Error()))
		}
	case m68k.LexedLabel:
		if _, ok := labels[o.Name]; !ok {
			diags = append(diags, diagFor(line, "undefined label "+o.Name))
		}
	case m68k.LexedIndirectDisplacement:
		val, err := evalExpr(o.Offset, labelsToExprLabels(labels))
		if err != nil {
			diags = append(diags, diagFor(line, err.Error()))
		} else if int32(val) > 0x7fff || int32(val) < -0x8000 {
			diags = append(diags, diagFor(line, "displacement out of 16-bit signed range"))
		}
	case m68k.LexedIndirectIndex:
		val, err := evalExpr(o.Offset, labelsToExprLabels(labels))
		if err != nil {
			diags = append(diags, diagFor(line, err.Error()))
		} else if int32(val) > 0x7f || int32(val) < -0x80 {
			diags = append(diags, diagFor(line, "index displacement out of 8-bit signed range"))
		}
		if _, ok := o.Index.(m68k.LexedRegisterWithSize); !ok {
			diags = append(diags, diagFor(line, "index register requires an explicit .w or .l size"))
		}
	case m68k.LexedOther:
		diags = append(diags, diagFor(line, "unrecognized operand "+o.Text))
	}

	return diags
}

// isValidImmediateLiteral checks an Immediate operand's expression text
// (with the leading '#' already stripped) against the narrow literal
// shapes #0b…, #0o…, #$… and #digits. This is a syntactic gate on bare
// literals, independent of the full expression grammar; operators and the
// %/@ prefixes are a separate, broader concern handled at bind time.
func isValidImmediateLiteral(expr string) bool {
	return sharedRegexCache.get(reImmediateLiteral).MatchString(expr)
}

func checkDirectiveLine(line SourceLine, d DirectiveLexed) []Diagnostic {
	var diags []Diagnostic

	switch d.Name {
	case "equ":
		if len(d.RawArgs) != 2 {
			diags = append(diags, diagFor(line, "equ requires a name and a value"))
		}
	case "ds":
		if len(d.RawArgs) != 1 {
			diags = append(diags, diagFor(line, "ds requires exactly 1 argument"))
		}
	case "dcb":
		if len(d.RawArgs) != 2 {
			diags = append(diags, diagFor(line, "dcb requires exactly 2 arguments"))
		}
	case "dc":
		if len(d.RawArgs) == 0 {
			diags = append(diags, diagFor(line, "dc requires at least 1 argument"))
		}
	case "org":
		if len(d.RawArgs) != 1 {
			diags = append(diags, diagFor(line, "org requires exactly 1 argument"))
		}
	}

	return diags
}
