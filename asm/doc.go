// Package asm assembles a textual subset of Motorola 68000 assembly into a
// Program: a resolved label table, materialized directive bytes, and an
// address-ordered instruction stream. The pipeline runs synchronously in
// seven stages (lex, EQU substitution, address assignment, directive
// materialization, operand binding, instruction selection, semantic
// checking) and never mutates state shared across calls except the
// package-wide regular-expression cache.
package asm
