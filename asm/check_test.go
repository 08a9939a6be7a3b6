package asm

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func runCheck(t *testing.T, source string) []Diagnostic {
	t.Helper()
	lines := Lex(source)
	lines = applyEqu(lines)
	_, labels, _ := assignAddresses(lines)
	return checkProgram(lines, labels)
}

func TestCheckValidLineHasNoDiagnostics(t *testing.T) {
	diags := runCheck(t, "move.w #4,d0")
	assert.Len(t, diags, 0)
}

func TestCheckRejectsMoveaWithDataRegisterDestination(t *testing.T) {
	diags := runCheck(t, "movea.w d0,d1")
	assert.True(t, len(diags) >= 1)
}

func TestCheckRejectsByteSizeOnAdda(t *testing.T) {
	diags := runCheck(t, "adda.b d0,a0")
	assert.True(t, len(diags) >= 1)
}

func TestCheckRejectsMalformedSizeSuffix(t *testing.T) {
	diags := runCheck(t, "move.q #1,d0")
	assert.True(t, len(diags) >= 1)
}

func TestCheckRejectsSizeSuffixWhereNoneAllowed(t *testing.T) {
	diags := runCheck(t, "rts.w")
	assert.True(t, len(diags) >= 1)
}

func TestCheckRejectsWrongOperandCount(t *testing.T) {
	diags := runCheck(t, "swap d0,d1")
	assert.True(t, len(diags) >= 1)
}

func TestCheckAllowsMovemStackIdioms(t *testing.T) {
	diags := runCheck(t, "movem.l d0-d3,-(a7)\nmovem.l (a7)+,d0-d3")
	assert.Len(t, diags, 0)
}

func TestCheckDetectsUndefinedLabel(t *testing.T) {
	diags := runCheck(t, "bra missing")
	assert.True(t, len(diags) >= 1)
}

func TestCheckAllowsDefinedLabel(t *testing.T) {
	diags := runCheck(t, "start: bra start")
	assert.Len(t, diags, 0)
}

func TestCheckDetectsOutOfRangeDisplacement(t *testing.T) {
	diags := runCheck(t, "move.w $40000(a0),d0")
	assert.True(t, len(diags) >= 1)
}

func TestCheckDetectsMissingIndexRegisterSize(t *testing.T) {
	diags := runCheck(t, "move.w 0(a0,d0),d1")
	assert.True(t, len(diags) >= 1)
}

func TestCheckAccumulatesMultipleDiagnostics(t *testing.T) {
	diags := runCheck(t, "swap d0,d1\nbra missing")
	assert.True(t, len(diags) >= 2)
}

func TestCheckUnknownMnemonicDiagnostic(t *testing.T) {
	diags := runCheck(t, "frobnicate d0")
	assert.True(t, len(diags) >= 1)
}

func TestCheckEquDirectiveWrongArgCount(t *testing.T) {
	lines := []SourceLine{{RawText: "equ", LineNumber: 1, Lexed: DirectiveLexed{Name: "equ", RawArgs: []string{"only"}}}}
	diags := checkDirectiveLine(lines[0], lines[0].Lexed.(DirectiveLexed))
	assert.Len(t, diags, 1)
}

func TestCheckAcceptsEachImmediateLiteralForm(t *testing.T) {
	for _, src := range []string{
		"move.w #0b1010,d0",
		"move.w #0o17,d0",
		"move.w #$ff,d0",
		"move.w #42,d0",
	} {
		diags := runCheck(t, src)
		assert.Len(t, diags, 0)
	}
}

func TestCheckRejectsBinaryLiteralNotInCheckerForm(t *testing.T) {
	// %1010 is a valid binary literal for the expression evaluator but not
	// one of the checker's four #0b…/#0o…/#$…/#digits forms.
	diags := runCheck(t, "move.w #%1010,d0")
	assert.True(t, len(diags) >= 1)
}

func TestCheckRejectsOperatorExpressionAsImmediate(t *testing.T) {
	// 1+2 evaluates fine but is not a bare literal.
	diags := runCheck(t, "move.w #1+2,d0")
	assert.True(t, len(diags) >= 1)
}

func TestCheckNeverPanicsOnMalformedLine(t *testing.T) {
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("checkProgram panicked: %v", r)
		}
	}()
	runCheck(t, "???\n,,,\nmove")
}
