package asm

import (
	"fmt"
	"strings"

	"github.com/m68kasm/m68kasm/arch/cpu/m68k"
)

// effectiveSize applies the per-mnemonic default (Word) used whenever a
// size suffix was omitted or malformed.
func effectiveSize(s m68k.Size) m68k.Size {
	if s == m68k.Unspecified || s == m68k.Unknown {
		return m68k.Word
	}
	return s
}

// defaultStartAddress is the virtual load address used when the source
// does not begin with an ORG directive.
const defaultStartAddress uint32 = 0x1000

// assignAddresses walks the lexed (and EQU-substituted)
// line stream, assigning each line its load address and building the
// label map, without evaluating instruction operand expressions (so
// labels may be forward-referenced from operands; only the ORG target and
// the DS/DCB count expressions, which must be known to keep laying out
// bytes, are evaluated here against the labels seen so far, while DC
// arguments are only measured by shape).
func assignAddresses(lines []SourceLine) (addrs []uint32, labels map[string]Label, diags []Diagnostic) {
	cursor := defaultStartAddress
	addrs = make([]uint32, len(lines))
	labels = make(map[string]Label)

	for i, line := range lines {
		switch l := line.Lexed.(type) {
		case LabelLexed:
			if _, exists := labels[l.Name]; exists {
				diags = append(diags, diagFor(line, "duplicate label "+l.Name))
				addrs[i] = cursor
				continue
			}
			labels[l.Name] = Label{Name: l.Name, Address: cursor, Line: line.LineNumber}
			addrs[i] = cursor

		case InstructionLexed:
			if cursor%2 != 0 {
				cursor++
			}
			addrs[i] = cursor
			cursor += 4

		case DirectiveLexed:
			addrs[i] = cursor
			next, d := advanceDirective(line, l, cursor, labels)
			if d != nil {
				diags = append(diags, *d)
			}
			cursor = next

		default:
			addrs[i] = cursor
		}
	}

	return addrs, labels, diags
}

func advanceDirective(line SourceLine, d DirectiveLexed, cursor uint32, labels map[string]Label) (uint32, *Diagnostic) {
	exprLabels := labelsToExprLabels(labels)

	switch d.Name {
	case "org":
		if len(d.RawArgs) != 1 {
			diag := diagFor(line, "org requires exactly 1 argument")
			return cursor, &diag
		}
		target, err := evalExpr(d.RawArgs[0], exprLabels)
		if err != nil {
			diag := diagFor(line, err.Error())
			return cursor, &diag
		}
		if target < cursor {
			diag := diagFor(line, fmt.Sprintf(
				"The address of the ORG directive (%d) must be greater than the previous address (%d)",
				target, cursor))
			return cursor, &diag
		}
		return target, nil

	case "ds":
		size := effectiveSize(d.Size)
		if len(d.RawArgs) != 1 {
			diag := diagFor(line, "ds requires exactly 1 argument")
			return cursor, &diag
		}
		count, err := evalExpr(d.RawArgs[0], exprLabels)
		if err != nil {
			diag := diagFor(line, err.Error())
			return cursor, &diag
		}
		return cursor + count*uint32(size.Bytes()), nil

	case "dcb":
		size := effectiveSize(d.Size)
		if len(d.RawArgs) != 2 {
			diag := diagFor(line, "dcb requires exactly 2 arguments")
			return cursor, &diag
		}
		count, err := evalExpr(d.RawArgs[0], exprLabels)
		if err != nil {
			diag := diagFor(line, err.Error())
			return cursor, &diag
		}
		return cursor + count*uint32(size.Bytes()), nil

	case "dc":
		size := effectiveSize(d.Size)
		if len(d.RawArgs) == 0 {
			diag := diagFor(line, "dc requires at least 1 argument")
			return cursor, &diag
		}
		total := uint32(0)
		for _, arg := range d.RawArgs {
			total += dcArgByteLength(arg, size)
		}
		return cursor + total, nil

	case "equ":
		return cursor, nil

	default:
		return cursor, nil
	}
}

func isStringLiteral(s string) bool {
	return len(s) >= 2 && s[0] == '\'' && s[len(s)-1] == '\''
}

func dcArgByteLength(arg string, size m68k.Size) uint32 {
	if !isStringLiteral(arg) {
		return uint32(size.Bytes())
	}
	raw := len(strings.Trim(arg, "'"))
	unit := size.Bytes()
	units := (raw + unit - 1) / unit
	if units == 0 {
		units = 1
	}
	return uint32(units * unit)
}
