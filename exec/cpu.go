package exec

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/m68kasm/m68kasm/arch/cpu/m68k"
	"github.com/m68kasm/m68kasm/asm"
	"github.com/retroenv/retrogolib/log"
)

// CCR holds the 68000 condition code flags this interpreter tracks.
type CCR struct {
	X, N, Z, V, C bool
}

// CPU is a minimal 68000 register file and byte-addressable memory,
// enough to execute the instruction subset asm.Compile can produce.
type CPU struct {
	D [8]uint32
	A [8]uint32
	PC uint32
	CCR CCR

	Mem []byte

	Display Display
	logger  *log.Logger

	stdin  *bufio.Reader
	stdout io.Writer

	byAddr map[uint32]asm.InstructionLine
	halted bool
}

// DefaultMemorySize is used when New is given a zero size.
const DefaultMemorySize = 1 << 16

// New builds a CPU with memSize bytes of memory, loads the program's
// materialized directive bytes into it, and sets PC to the program's start
// address.
func New(program *asm.Program, memSize int, display Display, logger *log.Logger) *CPU {
	if memSize <= 0 {
		memSize = DefaultMemorySize
	}
	if display == nil {
		display = NullDisplay{}
	}
	if logger == nil {
		logger = log.New()
	}

	c := &CPU{
		Mem:     make([]byte, memSize),
		PC:      program.StartAddress,
		Display: display,
		logger:  logger,
		stdin:   bufio.NewReader(os.Stdin),
		stdout:  os.Stdout,
		byAddr:  make(map[uint32]asm.InstructionLine, len(program.Instructions)),
	}

	// the stack grows down from the top of memory
	c.A[7] = uint32(memSize)

	for _, il := range program.Instructions {
		c.byAddr[il.Address] = il
	}
	for _, d := range program.Directives {
		c.loadDirective(d)
	}

	return c
}

func (c *CPU) loadDirective(d asm.DirectiveRecord) {
	var data []byte
	switch r := d.(type) {
	case asm.DCRecord:
		data = r.Data
	case asm.DSRecord:
		data = r.Data
	case asm.DCBRecord:
		data = r.Data
	default:
		return
	}
	addr := int(d.Addr())
	if addr < 0 || addr+len(data) > len(c.Mem) {
		return
	}
	copy(c.Mem[addr:], data)
}

// Halted reports whether the CPU has executed TRAP #15 or run off the end
// of the program.
func (c *CPU) Halted() bool {
	return c.halted
}

// Run steps the CPU until it halts.
func (c *CPU) Run() error {
	for !c.halted {
		if err := c.Step(); err != nil {
			return err
		}
	}
	return nil
}

// Step executes the single instruction at PC and advances PC, unless the
// instruction itself redirected control flow (branches, jumps, RTS).
func (c *CPU) Step() error {
	il, ok := c.byAddr[c.PC]
	if !ok {
		c.halted = true
		return nil
	}

	next := c.PC + 4
	jumped, err := c.execute(il.Instruction)
	if err != nil {
		return fmt.Errorf("pc=%#x: %w", c.PC, err)
	}
	if !jumped {
		c.PC = next
	}
	return nil
}

func (c *CPU) execute(inst m68k.Instruction) (jumped bool, err error) {
	switch ins := inst.(type) {
	case m68k.MoveInstr:
		return false, c.execMove(ins)
	case m68k.Arithmetic:
		return false, c.execArithmetic(ins)
	case m68k.Logic:
		return false, c.execLogic(ins)
	case m68k.Not:
		return false, c.execNot(ins)
	case m68k.Neg:
		return false, c.execNeg(ins)
	case m68k.Clr:
		return false, c.writeEa(ins.Ea, ins.Size, 0)
	case m68k.Tst:
		return false, c.execTst(ins)
	case m68k.Compare:
		return false, c.execCompare(ins)
	case m68k.Ext:
		return false, c.execExt(ins)
	case m68k.MulDiv:
		return false, c.execMulDiv(ins)
	case m68k.BitInstr:
		return false, c.execBit(ins)
	case m68k.Shift:
		return false, c.execShift(ins)
	case m68k.Lea:
		return false, c.execLea(ins)
	case m68k.Pea:
		return false, c.execPea(ins)
	case m68k.Exg:
		return false, c.execExg(ins)
	case m68k.Swap:
		return false, c.execSwap(ins)
	case m68k.Link:
		return false, c.execLink(ins)
	case m68k.Unlk:
		return false, c.execUnlk(ins)
	case m68k.Movem:
		return false, c.execMovem(ins)
	case m68k.Bra:
		addr, err := c.addrOf(ins.Target)
		if err != nil {
			return false, err
		}
		c.PC = addr
		return true, nil
	case m68k.Bsr:
		addr, err := c.addrOf(ins.Target)
		if err != nil {
			return false, err
		}
		c.pushLong(c.PC + 4)
		c.PC = addr
		return true, nil
	case m68k.Bcc:
		if c.conditionTrue(ins.Cond) {
			addr, err := c.addrOf(ins.Target)
			if err != nil {
				return false, err
			}
			c.PC = addr
			return true, nil
		}
		return false, nil
	case m68k.Jmp:
		addr, err := c.addrOf(ins.Ea)
		if err != nil {
			return false, err
		}
		c.PC = addr
		return true, nil
	case m68k.Jsr:
		addr, err := c.addrOf(ins.Ea)
		if err != nil {
			return false, err
		}
		c.pushLong(c.PC + 4)
		c.PC = addr
		return true, nil
	case m68k.Rts:
		c.PC = c.popLong()
		return true, nil
	case m68k.Dbcc:
		return c.execDbcc(ins)
	case m68k.Scc:
		val := uint32(0)
		if c.conditionTrue(ins.Cond) {
			val = 0xff
		}
		return false, c.writeEa(ins.Ea, m68k.Byte, val)
	case m68k.Trap:
		return false, c.execTrap(ins)
	default:
		return false, fmt.Errorf("unimplemented instruction %T", inst)
	}
}

func (c *CPU) pushLong(v uint32) {
	c.A[7] -= 4
	c.writeMemLong(c.A[7], v)
}

func (c *CPU) popLong() uint32 {
	v := c.readMemLong(c.A[7])
	c.A[7] += 4
	return v
}

func (c *CPU) conditionTrue(cond m68k.Condition) bool {
	flags := c.CCR
	switch cond {
	case m68k.T:
		return true
	case m68k.F:
		return false
	case m68k.HI:
		return !flags.C && !flags.Z
	case m68k.LS:
		return flags.C || flags.Z
	case m68k.CC:
		return !flags.C
	case m68k.CS:
		return flags.C
	case m68k.NE:
		return !flags.Z
	case m68k.EQ:
		return flags.Z
	case m68k.VC:
		return !flags.V
	case m68k.VS:
		return flags.V
	case m68k.PL:
		return !flags.N
	case m68k.MI:
		return flags.N
	case m68k.GE:
		return flags.N == flags.V
	case m68k.LT:
		return flags.N != flags.V
	case m68k.GT:
		return !flags.Z && flags.N == flags.V
	case m68k.LE:
		return flags.Z || flags.N != flags.V
	default:
		return false
	}
}
