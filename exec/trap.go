package exec

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/m68kasm/m68kasm/arch/cpu/m68k"
	"github.com/retroenv/retrogolib/log"
)

// Trap vectors recognized by this host: console and keyboard I/O, the
// host clock, a graphics blit, and program termination. Everything else
// is a no-op — the assembler already rejects vectors outside [0,15], so
// an unrecognized vector here means the program simply has nothing
// installed at that slot. Calls pass a string pointer in A0 and scalar
// arguments/results in D1.
const (
	TrapPrintDecimal        = 0
	TrapPrintASCII          = 1
	TrapGraphicsBlit        = 2
	TrapReadKeyboardString  = 3
	TrapReadNumber          = 4
	TrapReadChar            = 6
	TrapGetTime             = 7
	TrapDisplayStringCRLF   = 8
	TrapDisplayStringNoCRLF = 9
	TrapHalt                = 15
)

func (c *CPU) execTrap(ins m68k.Trap) error {
	switch ins.Vector {
	case TrapPrintDecimal:
		fmt.Fprintf(c.stdout, "%d", int32(c.D[1]))
	case TrapPrintASCII:
		fmt.Fprintf(c.stdout, "%c", byte(c.D[1]))
	case TrapGraphicsBlit:
		return c.execGraphicsBlit()
	case TrapReadKeyboardString:
		return c.execReadKeyboardString()
	case TrapReadNumber:
		return c.execReadNumber()
	case TrapReadChar:
		return c.execReadChar()
	case TrapGetTime:
		c.D[1] = uint32(time.Now().Unix())
	case TrapDisplayStringCRLF:
		return c.execDisplayString(true)
	case TrapDisplayStringNoCRLF:
		return c.execDisplayString(false)
	case TrapHalt:
		c.halted = true
	default:
		c.logger.Warn("unhandled trap", log.Int("vector", int(ins.Vector)))
	}
	return nil
}

// execDisplayString writes the null-terminated string pointed to by A0 to
// stdout, per DisplayStringWithCRLF / DisplayStringWithoutCRLF.
func (c *CPU) execDisplayString(crlf bool) error {
	s, err := c.readCString(c.A[0])
	if err != nil {
		return fmt.Errorf("display string: %w", err)
	}
	if crlf {
		fmt.Fprintf(c.stdout, "%s\r\n", s)
	} else {
		fmt.Fprint(c.stdout, s)
	}
	return nil
}

// execReadKeyboardString reads one line from stdin, writes it null-terminated
// into memory at the pointer in A0, and leaves its length (excluding the
// terminator) in D1. Per ReadKeyboardString.
func (c *CPU) execReadKeyboardString() error {
	line, err := c.stdin.ReadString('\n')
	if err != nil && line == "" {
		return fmt.Errorf("read keyboard string: %w", err)
	}
	line = strings.TrimRight(line, "\r\n")
	if err := c.writeCString(c.A[0], line); err != nil {
		return fmt.Errorf("read keyboard string: %w", err)
	}
	c.D[1] = uint32(len(line))
	return nil
}

// execReadNumber reads a decimal integer from stdin into D1. Per ReadNumber.
func (c *CPU) execReadNumber() error {
	tok, err := c.readStdinToken()
	if err != nil {
		return fmt.Errorf("read number: %w", err)
	}
	n, err := strconv.ParseInt(tok, 10, 64)
	if err != nil {
		return fmt.Errorf("read number: %q is not a decimal integer", tok)
	}
	c.D[1] = uint32(n)
	return nil
}

// execReadChar reads a single byte from stdin into D1. Per ReadChar.
func (c *CPU) execReadChar() error {
	b, err := c.stdin.ReadByte()
	if err != nil {
		return fmt.Errorf("read char: %w", err)
	}
	c.D[1] = uint32(b)
	return nil
}

func (c *CPU) readStdinToken() (string, error) {
	var sb strings.Builder
	for {
		b, err := c.stdin.ReadByte()
		if err != nil {
			if sb.Len() > 0 {
				break
			}
			return "", err
		}
		if b == ' ' || b == '\t' || b == '\r' || b == '\n' {
			if sb.Len() == 0 {
				continue
			}
			break
		}
		sb.WriteByte(b)
	}
	return sb.String(), nil
}

func (c *CPU) readCString(addr uint32) (string, error) {
	a := int(addr)
	if a < 0 || a >= len(c.Mem) {
		return "", fmt.Errorf("pointer %#x out of range", addr)
	}
	end := a
	for end < len(c.Mem) && c.Mem[end] != 0 {
		end++
	}
	return string(c.Mem[a:end]), nil
}

func (c *CPU) writeCString(addr uint32, s string) error {
	a := int(addr)
	if a < 0 || a+len(s)+1 > len(c.Mem) {
		return fmt.Errorf("pointer %#x cannot hold a %d-byte string", addr, len(s))
	}
	copy(c.Mem[a:], s)
	c.Mem[a+len(s)] = 0
	return nil
}

// execGraphicsBlit reads a blit rectangle's parameters from the register
// file (A0 = pixel data pointer, D1/D2 = x/y, D3/D4 = w/h) and forwards the
// framebuffer slice straight from emulated memory to the active Display.
func (c *CPU) execGraphicsBlit() error {
	ptr := int(c.A[0])
	x, y := int(int32(c.D[1])), int(int32(c.D[2]))
	w, h := int(c.D[3]), int(c.D[4])
	if w < 0 || h < 0 {
		return fmt.Errorf("graphics blit: negative dimensions %dx%d", w, h)
	}

	n := w * h
	if ptr < 0 || ptr+n > len(c.Mem) {
		return fmt.Errorf("graphics blit: pixel buffer at %#x of %d bytes out of range", ptr, n)
	}

	return c.Display.Blit(x, y, w, h, c.Mem[ptr:ptr+n])
}
