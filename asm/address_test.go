package asm

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestAssignAddressesDefaultStart(t *testing.T) {
	lines := Lex("move.w #1,d0")
	addrs, _, diags := assignAddresses(lines)
	assert.Len(t, diags, 0)
	assert.Equal(t, defaultStartAddress, addrs[0])
}

func TestAssignAddressesMonotonic(t *testing.T) {
	lines := Lex("move.w #1,d0\nadd.w #2,d0\nmove.l d0,d1")
	addrs, _, diags := assignAddresses(lines)
	assert.Len(t, diags, 0)
	for i := 1; i < len(addrs); i++ {
		assert.True(t, addrs[i] >= addrs[i-1])
	}
	assert.Equal(t, defaultStartAddress+4, addrs[1])
	assert.Equal(t, defaultStartAddress+8, addrs[2])
}

func TestAssignAddressesLabelBindsCursor(t *testing.T) {
	lines := Lex("start: move.w #1,d0")
	_, labels, diags := assignAddresses(lines)
	assert.Len(t, diags, 0)
	label, ok := labels["start"]
	assert.True(t, ok)
	assert.Equal(t, defaultStartAddress, label.Address)
}

func TestAssignAddressesDuplicateLabelDiagnostic(t *testing.T) {
	lines := Lex("start: move.w #1,d0\nstart: move.w #2,d0")
	_, _, diags := assignAddresses(lines)
	assert.Len(t, diags, 1)
	assert.True(t, diags[0].Message == "duplicate label start")
}

func TestAssignAddressesOrgSetsCursor(t *testing.T) {
	lines := Lex("org $2000\nmove.w #1,d0")
	addrs, _, diags := assignAddresses(lines)
	assert.Len(t, diags, 0)
	assert.Equal(t, uint32(0x2000), addrs[1])
}

func TestAssignAddressesOrgBackwardsRejected(t *testing.T) {
	lines := Lex("org $2000\nmove.w #1,d0\norg $1000")
	_, _, diags := assignAddresses(lines)
	assert.Len(t, diags, 1)
	assert.Equal(t, "The address of the ORG directive (4096) must be greater than the previous address (8196)", diags[0].Message)
}

func TestAssignAddressesDsAdvancesCursor(t *testing.T) {
	lines := Lex("org $1000\nbuf: ds.w 4\nmove.w #1,d0")
	addrs, labels, diags := assignAddresses(lines)
	assert.Len(t, diags, 0)
	assert.Equal(t, uint32(0x1000), labels["buf"].Address)
	assert.Equal(t, uint32(0x1008), addrs[3])
}

func TestAssignAddressesDcbAdvancesCursor(t *testing.T) {
	lines := Lex("org $1000\ndcb.l 2,0\nmove.w #1,d0")
	addrs, _, diags := assignAddresses(lines)
	assert.Len(t, diags, 0)
	assert.Equal(t, uint32(0x1008), addrs[2])
}

func TestAssignAddressesDcStringLiteralPads(t *testing.T) {
	lines := Lex("org $1000\ndc.w 'ABC'\nmove.w #1,d0")
	addrs, _, diags := assignAddresses(lines)
	assert.Len(t, diags, 0)
	assert.Equal(t, uint32(0x1004), addrs[2])
}

func TestAssignAddressesInstructionAlignment(t *testing.T) {
	lines := Lex("org $1001\nmove.w #1,d0")
	addrs, _, diags := assignAddresses(lines)
	assert.Len(t, diags, 0)
	assert.Equal(t, uint32(0x1002), addrs[1])
}
