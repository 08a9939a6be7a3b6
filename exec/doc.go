// Package exec executes an assembled m68kasm Program against a minimal
// 68000 register file and byte-addressable memory. It implements enough of
// the instruction set to run the programs asm.Compile can produce, plus the
// TRAP-based host call convention used for console and keyboard I/O, the
// host clock, a graphics blit, and program termination.
package exec
