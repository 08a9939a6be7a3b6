package m68k

// BoundOperand is the closed set of operand shapes after expression
// evaluation and register resolution. Every address-register base has
// already been checked to be an Address register; IndirectIndex's index
// register size has already been checked to be Word or Long.
type BoundOperand interface {
	isBoundOperand()
}

// BoundImmediate is a resolved constant value.
type BoundImmediate struct {
	Value uint32
}

func (BoundImmediate) isBoundOperand() {}

// BoundRegister is a bare register operand.
type BoundRegister struct {
	Kind  RegisterKind
	Index int
}

func (BoundRegister) isBoundOperand() {}

// BoundIndirect is "(An)".
type BoundIndirect struct {
	Base int // address register index
}

func (BoundIndirect) isBoundOperand() {}

// BoundPostIndirect is "(An)+".
type BoundPostIndirect struct {
	Base int
}

func (BoundPostIndirect) isBoundOperand() {}

// BoundPreIndirect is "-(An)".
type BoundPreIndirect struct {
	Base int
}

func (BoundPreIndirect) isBoundOperand() {}

// BoundIndirectDisplacement is "offset(An)"; Offset is sign-extended from a
// 16-bit word.
type BoundIndirectDisplacement struct {
	Offset int32
	Base   int
}

func (BoundIndirectDisplacement) isBoundOperand() {}

// IndexRegister is the scaled index register of an indexed indirect operand.
type IndexRegister struct {
	Kind RegisterKind
	Reg  int
	Size Size // Word or Long, never Byte
}

// BoundIndirectIndex is "offset(An,Xn.s)"; Offset is sign-extended from a
// byte, matching the 8-bit displacement bound the semantic checker
// enforces for this operand form.
type BoundIndirectIndex struct {
	Offset int32
	Base   int
	Index  IndexRegister
}

func (BoundIndirectIndex) isBoundOperand() {}

// BoundAbsolute is a resolved memory address, from a label reference or a
// numeric expression used in an EA position.
type BoundAbsolute struct {
	Address uint32
}

func (BoundAbsolute) isBoundOperand() {}
