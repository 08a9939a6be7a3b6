package exec

import (
	"bufio"
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/m68kasm/m68kasm/asm"
	"github.com/retroenv/retrogolib/assert"
)

type recordingDisplay struct {
	blits [][]byte
	x, y, w, h int
}

func (d *recordingDisplay) Blit(x, y, w, h int, pixels []byte) error {
	d.x, d.y, d.w, d.h = x, y, w, h
	cp := make([]byte, len(pixels))
	copy(cp, pixels)
	d.blits = append(d.blits, cp)
	return nil
}

func (d *recordingDisplay) Close() error { return nil }

func TestExecGraphicsBlitForwardsRectangle(t *testing.T) {
	program, diags := asm.Compile("lea buf,a0\nmove.w #2,d1\nmove.w #3,d2\nmove.w #4,d3\nmove.w #1,d4\ntrap #2\ntrap #15\nbuf: ds.b 4")
	assert.Len(t, diags, 0)

	display := &recordingDisplay{}
	cpu := New(program, 0, display, nil)
	assert.NoError(t, cpu.Run())

	assert.Len(t, display.blits, 1)
	assert.Equal(t, 2, display.x)
	assert.Equal(t, 3, display.y)
	assert.Equal(t, 4, display.w)
	assert.Equal(t, 1, display.h)
}

func TestExecTrapHaltSetsHaltedFlag(t *testing.T) {
	program, diags := asm.Compile("trap #15")
	assert.Len(t, diags, 0)
	cpu := New(program, 0, nil, nil)
	assert.NoError(t, cpu.Step())
	assert.True(t, cpu.Halted())
}

func TestExecTrapUnknownVectorIsNoop(t *testing.T) {
	program, diags := asm.Compile("trap #5\ntrap #15")
	assert.Len(t, diags, 0)
	cpu := New(program, 0, nil, nil)
	assert.NoError(t, cpu.Run())
	assert.True(t, cpu.Halted())
}

func TestExecTrapGetTimeWritesUnixSeconds(t *testing.T) {
	program, diags := asm.Compile("trap #7\ntrap #15")
	assert.Len(t, diags, 0)
	cpu := New(program, 0, nil, nil)
	before := time.Now().Unix()
	assert.NoError(t, cpu.Run())
	assert.True(t, int64(cpu.D[1]) >= before)
}

func TestExecTrapReadNumberParsesDecimal(t *testing.T) {
	program, diags := asm.Compile("trap #4\ntrap #15")
	assert.Len(t, diags, 0)
	cpu := New(program, 0, nil, nil)
	cpu.stdin = bufio.NewReader(strings.NewReader("42\n"))
	assert.NoError(t, cpu.Run())
	assert.Equal(t, uint32(42), cpu.D[1])
}

func TestExecTrapReadCharReadsOneByte(t *testing.T) {
	program, diags := asm.Compile("trap #6\ntrap #15")
	assert.Len(t, diags, 0)
	cpu := New(program, 0, nil, nil)
	cpu.stdin = bufio.NewReader(strings.NewReader("Q"))
	assert.NoError(t, cpu.Run())
	assert.Equal(t, uint32('Q'), cpu.D[1])
}

func TestExecTrapReadKeyboardStringWritesNullTerminatedLine(t *testing.T) {
	program, diags := asm.Compile("lea buf,a0\ntrap #3\ntrap #15\nbuf: ds.b 16")
	assert.Len(t, diags, 0)
	cpu := New(program, 0, nil, nil)
	cpu.stdin = bufio.NewReader(strings.NewReader("hello\n"))
	assert.NoError(t, cpu.Run())
	assert.Equal(t, uint32(5), cpu.D[1])
	s, err := cpu.readCString(program.Labels["buf"].Address)
	assert.NoError(t, err)
	assert.Equal(t, "hello", s)
}

func TestExecTrapDisplayStringWithCRLF(t *testing.T) {
	program, diags := asm.Compile("lea msg,a0\ntrap #8\ntrap #15\nmsg: dc.b 'hi',0")
	assert.Len(t, diags, 0)
	cpu := New(program, 0, nil, nil)
	var out bytes.Buffer
	cpu.stdout = &out
	assert.NoError(t, cpu.Run())
	assert.Equal(t, "hi\r\n", out.String())
}

func TestExecTrapDisplayStringWithoutCRLF(t *testing.T) {
	program, diags := asm.Compile("lea msg,a0\ntrap #9\ntrap #15\nmsg: dc.b 'hi',0")
	assert.Len(t, diags, 0)
	cpu := New(program, 0, nil, nil)
	var out bytes.Buffer
	cpu.stdout = &out
	assert.NoError(t, cpu.Run())
	assert.Equal(t, "hi", out.String())
}

func TestNullDisplayDiscardsBlit(t *testing.T) {
	d := NullDisplay{}
	assert.NoError(t, d.Blit(0, 0, 1, 1, []byte{1}))
	assert.NoError(t, d.Close())
}
