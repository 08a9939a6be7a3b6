package asm

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func materialize(t *testing.T, source string) ([]DirectiveRecord, []Diagnostic) {
	t.Helper()
	lines := Lex(source)
	lines = applyEqu(lines)
	addrs, labels, _ := assignAddresses(lines)
	return materializeDirectives(lines, addrs, labels)
}

func TestMaterializeDcWordBigEndian(t *testing.T) {
	records, diags := materialize(t, "org $1000\ndc.w $1234")
	assert.Len(t, diags, 0)
	rec := records[1].(DCRecord)
	assert.Equal(t, []byte{0x12, 0x34}, rec.Data)
}

func TestMaterializeDcLongBigEndian(t *testing.T) {
	records, diags := materialize(t, "org $1000\ndc.l $11223344")
	assert.Len(t, diags, 0)
	rec := records[1].(DCRecord)
	assert.Equal(t, []byte{0x11, 0x22, 0x33, 0x44}, rec.Data)
}

func TestMaterializeDcMultipleArgs(t *testing.T) {
	records, diags := materialize(t, "org $1000\ndc.b 1,2,3")
	assert.Len(t, diags, 0)
	rec := records[1].(DCRecord)
	assert.Equal(t, []byte{1, 2, 3}, rec.Data)
}

func TestMaterializeDcStringLiteralPadsToWordUnit(t *testing.T) {
	records, diags := materialize(t, "org $1000\ndc.w 'AB'")
	assert.Len(t, diags, 0)
	rec := records[1].(DCRecord)
	assert.Equal(t, []byte{'A', 'B'}, rec.Data)
}

func TestMaterializeDcStringLiteralOddLengthPads(t *testing.T) {
	records, diags := materialize(t, "org $1000\ndc.w 'ABC'")
	assert.Len(t, diags, 0)
	rec := records[1].(DCRecord)
	assert.Len(t, rec.Data, 4)
	assert.Equal(t, byte('A'), rec.Data[0])
	assert.Equal(t, byte('B'), rec.Data[1])
	assert.Equal(t, byte('C'), rec.Data[2])
	assert.Equal(t, byte(0), rec.Data[3])
}

func TestMaterializeDsZeroFilled(t *testing.T) {
	records, diags := materialize(t, "org $1000\nds.w 4")
	assert.Len(t, diags, 0)
	rec := records[1].(DSRecord)
	assert.Len(t, rec.Data, 8)
	for _, b := range rec.Data {
		assert.Equal(t, byte(0), b)
	}
}

func TestMaterializeDcbRepeatsValue(t *testing.T) {
	records, diags := materialize(t, "org $1000\ndcb.w 3,$ff")
	assert.Len(t, diags, 0)
	rec := records[1].(DCBRecord)
	assert.Equal(t, []byte{0x00, 0xff, 0x00, 0xff, 0x00, 0xff}, rec.Data)
}

func TestMaterializeDcUnknownLabelDiagnostic(t *testing.T) {
	_, diags := materialize(t, "org $1000\ndc.w missing")
	assert.True(t, len(diags) >= 1)
}
