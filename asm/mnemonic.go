package asm

import (
	"strings"

	"github.com/m68kasm/m68kasm/arch/cpu/m68k"
)

// fixedMnemonics are the instruction names that are not derived by
// appending a condition-code suffix to a family prefix.
var fixedMnemonics = map[string]bool{
	"move": true, "movea": true, "moveq": true, "movem": true,
	"lea": true, "pea": true, "exg": true, "swap": true, "link": true, "unlk": true,
	"add": true, "adda": true, "addi": true, "addq": true,
	"sub": true, "suba": true, "subi": true, "subq": true,
	"neg": true, "clr": true, "ext": true, "extb": true,
	"muls": true, "mulu": true, "divs": true, "divu": true,
	"and": true, "andi": true, "or": true, "ori": true, "eor": true, "eori": true, "not": true,
	"cmp": true, "cmpa": true, "cmpi": true, "cmpm": true, "tst": true,
	"btst": true, "bset": true, "bclr": true, "bchg": true,
	"asl": true, "asr": true, "lsl": true, "lsr": true, "rol": true, "ror": true,
	"bra": true, "bsr": true, "jmp": true, "jsr": true, "rts": true, "trap": true,
	"dbra": true,
}

// isMnemonic reports whether name (lowercase) is a recognized instruction
// mnemonic, either from the fixed set or from the bXX/dbXX/sXX
// condition-suffixed families.
func isMnemonic(name string) bool {
	if fixedMnemonics[name] {
		return true
	}
	if rest, ok := strings.CutPrefix(name, "db"); ok {
		_, known := m68k.ParseCondition(rest)
		return known
	}
	if rest, ok := strings.CutPrefix(name, "b"); ok {
		_, known := m68k.ParseCondition(rest)
		return known
	}
	if rest, ok := strings.CutPrefix(name, "s"); ok {
		_, known := m68k.ParseCondition(rest)
		return known
	}
	return false
}
