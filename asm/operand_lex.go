package asm

import (
	"strconv"
	"strings"

	"github.com/m68kasm/m68kasm/arch/cpu/m68k"
	"github.com/retroenv/retrogolib/set"
)

// splitTopLevel splits s on commas, ignoring commas nested inside
// parentheses or single-quoted strings. Used both for operand lists and
// for directive argument lists.
func splitTopLevel(s string) []string {
	var parts []string
	depth := 0
	inQuote := false
	start := 0

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '\'':
			inQuote = !inQuote
		case inQuote:
			// inside a quoted string, ignore everything else
		case c == '(':
			depth++
		case c == ')':
			if depth > 0 {
				depth--
			}
		case c == ',' && depth == 0:
			parts = append(parts, strings.TrimSpace(s[start:i]))
			start = i + 1
		}
	}
	parts = append(parts, strings.TrimSpace(s[start:]))
	return parts
}

// lexOperands tokenizes the comma-separated operand list of an instruction
// line.
func lexOperands(s string) ([]m68k.LexedOperand, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	pieces := splitTopLevel(s)
	operands := make([]m68k.LexedOperand, 0, len(pieces))
	for _, piece := range pieces {
		op, err := classifyOperand(piece)
		if err != nil {
			return nil, err
		}
		operands = append(operands, op)
	}
	return operands, nil
}

// classifyOperand tries each operand shape in a fixed precedence order:
// post-indirect, pre-indirect, indirect, indexed indirect, displaced
// indirect, sized register, bare register, register range, immediate, and
// finally absolute as the catch-all. The order is load-bearing because the
// patterns overlap: "(a0)+" also matches the "(a0)" shape.
func classifyOperand(s string) (m68k.LexedOperand, error) {
	if s == "" {
		return m68k.LexedOther{Text: s}, nil
	}

	if m := sharedRegexCache.get(rePostIndirect).FindStringSubmatch(s); m != nil {
		reg, err := classifyRegisterOnly(m[1])
		if err != nil {
			return m68k.LexedOther{Text: s}, nil
		}
		return m68k.LexedPostIndirect{Reg: reg}, nil
	}

	if m := sharedRegexCache.get(rePreIndirect).FindStringSubmatch(s); m != nil {
		reg, err := classifyRegisterOnly(m[1])
		if err != nil {
			return m68k.LexedOther{Text: s}, nil
		}
		return m68k.LexedPreIndirect{Reg: reg}, nil
	}

	if m := sharedRegexCache.get(reIndirect).FindStringSubmatch(s); m != nil {
		reg, err := classifyRegisterOnly(m[1])
		if err != nil {
			return m68k.LexedOther{Text: s}, nil
		}
		return m68k.LexedIndirect{Reg: reg}, nil
	}

	if m := sharedRegexCache.get(reIndirectIndex).FindStringSubmatch(s); m != nil {
		base, err := classifyRegisterOnly(strings.TrimSpace(m[2]))
		if err != nil {
			return m68k.LexedOther{Text: s}, nil
		}
		index, err := classifyIndexRegister(strings.TrimSpace(m[3]))
		if err != nil {
			return m68k.LexedOther{Text: s}, nil
		}
		offset := strings.TrimSpace(m[1])
		if offset == "" {
			offset = "0"
		}
		return m68k.LexedIndirectIndex{Offset: offset, Base: base, Index: index}, nil
	}

	if m := sharedRegexCache.get(reIndirectDisp).FindStringSubmatch(s); m != nil {
		base, err := classifyRegisterOnly(strings.TrimSpace(m[2]))
		if err == nil {
			offset := strings.TrimSpace(m[1])
			if offset == "" {
				offset = "0"
			}
			return m68k.LexedIndirectDisplacement{Offset: offset, Reg: base}, nil
		}
		// falls through to Absolute if the parenthesized part isn't a register
	}

	if m := sharedRegexCache.get(reRegisterSize).FindStringSubmatch(s); m != nil {
		kind := m68k.Data
		if strings.EqualFold(m[1], "a") {
			kind = m68k.Address
		}
		idx, _ := strconv.Atoi(m[2])
		size := m68k.ParseSize(strings.ToLower(m[3]))
		return m68k.LexedRegisterWithSize{Kind: kind, Index: idx, Size: size}, nil
	}

	if sharedRegexCache.get(reRegisterPlain).MatchString(s) {
		return classifyRegisterOnly(s)
	}

	if strings.ContainsAny(s, "/-") && sharedRegexCache.get(reRegisterRange).MatchString(s) {
		mask, err := registerRangeMask(s)
		if err == nil {
			return m68k.LexedRegisterRange{Mask: mask}, nil
		}
	}

	if strings.HasPrefix(s, "#") {
		return m68k.LexedImmediate{Expr: s[1:]}, nil
	}

	return m68k.LexedAbsolute{Expr: s}, nil
}

// classifyRegisterOnly classifies a bare register token (d0..d7, a0..a7, sp).
func classifyRegisterOnly(s string) (m68k.LexedOperand, error) {
	s = strings.TrimSpace(s)
	lower := strings.ToLower(s)
	if lower == "sp" {
		return m68k.LexedRegister{Kind: m68k.Address, Index: 7}, nil
	}
	if !sharedRegexCache.get(reRegisterPlain).MatchString(s) {
		return nil, &m68k.ParseError{Msg: "not a register", Text: s}
	}
	kind := m68k.Data
	if lower[0] == 'a' {
		kind = m68k.Address
	}
	idx := int(lower[1] - '0')
	return m68k.LexedRegister{Kind: kind, Index: idx}, nil
}

// classifyIndexRegister classifies the index register of an indexed
// indirect operand, which may carry its own .w/.l size suffix.
func classifyIndexRegister(s string) (m68k.LexedOperand, error) {
	if m := sharedRegexCache.get(reRegisterSize).FindStringSubmatch(s); m != nil {
		kind := m68k.Data
		if strings.EqualFold(m[1], "a") {
			kind = m68k.Address
		}
		idx, _ := strconv.Atoi(m[2])
		size := m68k.ParseSize(strings.ToLower(m[3]))
		return m68k.LexedRegisterWithSize{Kind: kind, Index: idx, Size: size}, nil
	}
	return classifyRegisterOnly(s)
}

// registerRangeMask builds a 16-bit MOVEM register-list mask from a
// '/'-separated list of registers and register ranges (d0-d3/a5/a7), with
// D0..D7 in bits 0..7 and A0..A7 in bits 8..15. Bits are collected into a
// BitSet first since overlapping ranges (d0-d3/d2-d5) are legal and must
// not be double-counted when folded into the mask.
func registerRangeMask(s string) (uint16, error) {
	bits := set.NewBitSet()
	for _, item := range strings.Split(s, "/") {
		bounds := strings.SplitN(item, "-", 2)
		first, err := parseRegBit(bounds[0])
		if err != nil {
			return 0, err
		}
		last := first
		if len(bounds) == 2 {
			last, err = parseRegBit(bounds[1])
			if err != nil {
				return 0, err
			}
		}
		if last < first {
			first, last = last, first
		}
		for bit := first; bit <= last; bit++ {
			bits.Add(int(bit))
		}
	}

	var mask uint16
	for _, bit := range bits.ToSlice() {
		mask |= 1 << uint(bit)
	}
	return mask, nil
}

func parseRegBit(s string) (uint, error) {
	s = strings.TrimSpace(s)
	lower := strings.ToLower(s)
	if len(lower) != 2 {
		return 0, &m68k.ParseError{Msg: "malformed register in range", Text: s}
	}
	idx := uint(lower[1] - '0')
	if idx > 7 {
		return 0, &m68k.ParseError{Msg: "malformed register in range", Text: s}
	}
	switch lower[0] {
	case 'd':
		return idx, nil
	case 'a':
		return idx + 8, nil
	default:
		return 0, &m68k.ParseError{Msg: "malformed register in range", Text: s}
	}
}
