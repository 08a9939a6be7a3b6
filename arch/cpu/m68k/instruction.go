package m68k

// Instruction is the closed set of concrete instruction variants the
// instruction selector can produce from a mnemonic,
// its bound operands, and its size suffix. Address and source-line
// bookkeeping live in asm.InstructionLine, not here.
type Instruction interface {
	isInstruction()
}

// ArithOp distinguishes ADD-family from SUB-family arithmetic.
type ArithOp int

const (
	Add ArithOp = iota
	Sub
)

// ArithVariant selects the concrete encoding of an ADD/SUB-family instruction.
type ArithVariant int

const (
	ArithPlain ArithVariant = iota // ADD/SUB
	ArithImmediate                 // ADDI/SUBI
	ArithAddress                   // ADDA/SUBA
	ArithQuick                     // ADDQ/SUBQ
)

// Arithmetic covers ADD, ADDA, ADDI, ADDQ, SUB, SUBA, SUBI, SUBQ.
type Arithmetic struct {
	Op      ArithOp
	Variant ArithVariant
	Size    Size
	Src     BoundOperand
	Dst     BoundOperand
	Quick   uint8 // ArithQuick immediate, range [1,8]
}

func (Arithmetic) isInstruction() {}

// MoveOp selects between the three MOVE-family encodings.
type MoveOp int

const (
	Move MoveOp = iota
	Movea
	Moveq
)

// MoveInstr covers MOVE, MOVEA and MOVEQ.
type MoveInstr struct {
	Op   MoveOp
	Size Size
	Src  BoundOperand
	Dst  BoundOperand // always a register for Movea/Moveq
}

func (MoveInstr) isInstruction() {}

// MovemDirection selects MOVEM's transfer direction.
type MovemDirection int

const (
	ToMemory MovemDirection = iota
	FromMemory
)

// Movem covers MOVEM.
type Movem struct {
	Direction MovemDirection
	Mask      uint16
	Ea        BoundOperand
	Size      Size
}

func (Movem) isInstruction() {}

// Lea covers LEA.
type Lea struct {
	Src BoundOperand
	Dst BoundOperand // always an address register
}

func (Lea) isInstruction() {}

// Pea covers PEA.
type Pea struct {
	Src BoundOperand
}

func (Pea) isInstruction() {}

// Exg covers EXG.
type Exg struct {
	Ra BoundOperand
	Rb BoundOperand
}

func (Exg) isInstruction() {}

// Swap covers SWAP.
type Swap struct {
	Reg BoundOperand
}

func (Swap) isInstruction() {}

// Link covers LINK.
type Link struct {
	Reg BoundOperand
	Disp int32
}

func (Link) isInstruction() {}

// Unlk covers UNLK.
type Unlk struct {
	Reg BoundOperand
}

func (Unlk) isInstruction() {}

// Neg covers NEG.
type Neg struct {
	Ea   BoundOperand
	Size Size
}

func (Neg) isInstruction() {}

// Clr covers CLR.
type Clr struct {
	Ea   BoundOperand
	Size Size
}

func (Clr) isInstruction() {}

// Ext covers EXT and EXTB. From/To describe the sign-extension widths
// applied: ext.w maps Byte->Word, ext.l maps Word->Long, and extb maps
// Byte->Long. This .w/.l mapping is kept for source compatibility even
// though some 68000 manuals describe the suffixes differently.
type Ext struct {
	Reg  BoundOperand
	From Size
	To   Size
}

func (Ext) isInstruction() {}

// MulDivOp distinguishes multiply from divide.
type MulDivOp int

const (
	Mul MulDivOp = iota
	Div
)

// MulDiv covers MULS, MULU, DIVS, DIVU.
type MulDiv struct {
	Op     MulDivOp
	Signed bool
	Src    BoundOperand
	Dst    BoundOperand // always a data register
}

func (MulDiv) isInstruction() {}

// LogicOp distinguishes the AND/OR/EOR families.
type LogicOp int

const (
	And LogicOp = iota
	Or
	Eor
)

// Logic covers AND, ANDI, OR, ORI, EOR, EORI.
type Logic struct {
	Op        LogicOp
	Immediate bool
	Size      Size
	Src       BoundOperand
	Dst       BoundOperand
}

func (Logic) isInstruction() {}

// Not covers NOT.
type Not struct {
	Ea   BoundOperand
	Size Size
}

func (Not) isInstruction() {}

// CompareOp selects the concrete CMP-family encoding.
type CompareOp int

const (
	Cmp CompareOp = iota
	Cmpa
	Cmpi
	Cmpm
)

// Compare covers CMP, CMPA, CMPI, CMPM.
type Compare struct {
	Op   CompareOp
	Size Size
	Src  BoundOperand
	Dst  BoundOperand
}

func (Compare) isInstruction() {}

// Tst covers TST.
type Tst struct {
	Ea   BoundOperand
	Size Size
}

func (Tst) isInstruction() {}

// BitOp selects the concrete bit instruction.
type BitOp int

const (
	Btst BitOp = iota
	Bset
	Bclr
	Bchg
)

// BitInstr covers BTST, BSET, BCLR, BCHG.
type BitInstr struct {
	Op  BitOp
	Bit BoundOperand // data register or immediate bit number
	Ea  BoundOperand
}

func (BitInstr) isInstruction() {}

// ShiftKind distinguishes the three shift/rotate families.
type ShiftKind int

const (
	Arithmetic68k ShiftKind = iota // ASL/ASR
	Logical68k                      // LSL/LSR
	Rotate68k                       // ROL/ROR
)

// ShiftDirection is the shift/rotate direction.
type ShiftDirection int

const (
	Left ShiftDirection = iota
	Right
)

// Shift covers ASL, ASR, LSL, LSR, ROL, ROR.
type Shift struct {
	Kind  ShiftKind
	Dir   ShiftDirection
	Count BoundOperand // immediate or data register
	Ea    BoundOperand
	Size  Size
}

func (Shift) isInstruction() {}

// Bcc covers the condition-suffixed branch mnemonics (beq, bne, ...), one
// for each of the 16 conditions plus the bhs/blo aliases, excluding bra/bsr
// which get their own types.
type Bcc struct {
	Cond   Condition
	Target BoundOperand // BoundAbsolute
}

func (Bcc) isInstruction() {}

// Bra covers BRA.
type Bra struct {
	Target BoundOperand
}

func (Bra) isInstruction() {}

// Bsr covers BSR.
type Bsr struct {
	Target BoundOperand
}

func (Bsr) isInstruction() {}

// Jmp covers JMP.
type Jmp struct {
	Ea BoundOperand
}

func (Jmp) isInstruction() {}

// Jsr covers JSR.
type Jsr struct {
	Ea BoundOperand
}

func (Jsr) isInstruction() {}

// Rts covers RTS; it has no operands.
type Rts struct{}

func (Rts) isInstruction() {}

// Dbcc covers the DBcc family, including the dbra/dbf aliases for DBcc(F).
type Dbcc struct {
	Cond   Condition
	Reg    BoundOperand // data register
	Target BoundOperand
}

func (Dbcc) isInstruction() {}

// Scc covers the Scc family.
type Scc struct {
	Cond Condition
	Ea   BoundOperand
}

func (Scc) isInstruction() {}

// Trap covers TRAP; Vector is in [0,15].
type Trap struct {
	Vector uint8
}

func (Trap) isInstruction() {}
