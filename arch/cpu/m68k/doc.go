// Package m68k provides the data model for a subset of the Motorola 68000
// instruction set: registers, addressing modes, condition codes, the lexed
// and bound operand unions, and the instruction union produced by the
// assembler in package asm.
//
// This package carries no parsing or assembly logic; it only defines the
// closed set of types that package asm's components read and write.
package m68k
