// Package mips implements a two-pass assembler for a load/store RISC
// instruction subset using the classic MIPS R, I and J encodings.
//
// Source text is normalized into lines, label definitions (`name:`) are
// collected in a first pass, and every remaining line is classified by its
// mnemonic, parsed against the grammar of its format, and packed into a
// 32-bit instruction word. Failures are local to their line; the assembled
// Program keeps one Result per instruction line in source order.
package mips
