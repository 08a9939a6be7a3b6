package asm

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestEvalExprArithmetic(t *testing.T) {
	val, err := evalExpr("2+3*4", nil)
	assert.NoError(t, err)
	assert.Equal(t, uint32(14), val)
}

func TestEvalExprParens(t *testing.T) {
	val, err := evalExpr("(2+3)*4", nil)
	assert.NoError(t, err)
	assert.Equal(t, uint32(20), val)
}

func TestEvalExprHex(t *testing.T) {
	val, err := evalExpr("$ff", nil)
	assert.NoError(t, err)
	assert.Equal(t, uint32(0xff), val)
}

func TestEvalExprBinaryLiteral(t *testing.T) {
	val, err := evalExpr("%1010", nil)
	assert.NoError(t, err)
	assert.Equal(t, uint32(10), val)
}

func TestEvalExprOctalLiteral(t *testing.T) {
	val, err := evalExpr("@17", nil)
	assert.NoError(t, err)
	assert.Equal(t, uint32(15), val)
}

func TestEvalExprPowerIsRightAssociative(t *testing.T) {
	val, err := evalExpr("2**3**2", nil)
	assert.NoError(t, err)
	assert.Equal(t, uint32(512), val)
}

func TestEvalExprCharLiteral(t *testing.T) {
	val, err := evalExpr("'AB'", nil)
	assert.NoError(t, err)
	assert.Equal(t, uint32(0x4142), val)
}

func TestEvalExprLabel(t *testing.T) {
	labels := Labels{"START": 0x1000}
	val, err := evalExpr("START+4", labels)
	assert.NoError(t, err)
	assert.Equal(t, uint32(0x1004), val)
}

func TestEvalExprUnaryMinus(t *testing.T) {
	val, err := evalExpr("-1", nil)
	assert.NoError(t, err)
	assert.Equal(t, uint32(0xffffffff), val)
}

func TestEvalExprUnknownLabel(t *testing.T) {
	_, err := evalExpr("missing", Labels{})
	assert.Error(t, err)
}

func TestEvalExprSignedDivision(t *testing.T) {
	val, err := evalExpr("10/-1", nil)
	assert.NoError(t, err)
	assert.Equal(t, uint32(0xfffffff6), val)
}

func TestEvalExprSignedModulo(t *testing.T) {
	val, err := evalExpr("-10%3", nil)
	assert.NoError(t, err)
	assert.Equal(t, uint32(0xffffffff), val)
}

func TestEvalExprDivisionByZero(t *testing.T) {
	_, err := evalExpr("1/0", nil)
	assert.Error(t, err)
}

func TestEvalExprPowerLargeExponentErrors(t *testing.T) {
	_, err := evalExpr("2**100", nil)
	assert.Error(t, err)
}

func TestEvalExprMismatchedParens(t *testing.T) {
	_, err := evalExpr("(1+2", nil)
	assert.Error(t, err)
}
