// Copyright 2026 The foolc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compile

import (
	"fmt"
	"strings"
)

// An Opcode is an instruction of the stack virtual machine.
//
// The machine has a stack pointer, a frame pointer ($fp), a return
// address register ($ra) and a temporary register ($tm).
type Opcode uint8

// "x y ADD x+y" is a "stack picture" that describes the state of the
// stack before and after execution of the instruction.
//
// OP<arg> indicates an instruction with an operand.
// LABEL is not executed: it defines the name given by its operand.
const (
	// stack
	PUSH Opcode = iota // - PUSH<value> value      (value is an integer or a label)
	POP                // x POP -

	// arithmetic
	ADD  // x y ADD x+y
	MULT // x y MULT x*y

	// control flow
	BEQ   // x y BEQ<label> -        (jumps if x == y)
	B     // - B<label> -
	JS    // addr JS -               ($ra = next instruction; jump to addr)
	HALT  // - HALT -
	PRINT // x PRINT x               (displays x)

	// memory and registers
	LW  // addr LW value
	LFP // - LFP $fp
	SFP // fp SFP -
	CFP // - CFP -                   ($fp = stack pointer)
	LRA // - LRA $ra
	SRA // ra SRA -
	LTM // - LTM $tm
	STM // tm STM -

	LABEL // LABEL<name>
)

var opcodeNames = [...]string{
	PUSH:  "push",
	POP:   "pop",
	ADD:   "add",
	MULT:  "mult",
	BEQ:   "beq",
	B:     "b",
	JS:    "js",
	HALT:  "halt",
	PRINT: "print",
	LW:    "lw",
	LFP:   "lfp",
	SFP:   "sfp",
	CFP:   "cfp",
	LRA:   "lra",
	SRA:   "sra",
	LTM:   "ltm",
	STM:   "stm",
	LABEL: "label",
}

func (op Opcode) String() string {
	if op < Opcode(len(opcodeNames)) {
		if name := opcodeNames[op]; name != "" {
			return name
		}
	}
	return fmt.Sprintf("illegal op (%d)", op)
}

// hasArg reports whether op takes an operand.
func (op Opcode) hasArg() bool {
	switch op {
	case PUSH, BEQ, B, LABEL:
		return true
	}
	return false
}

// An Insn is a single instruction.
type Insn struct {
	Op  Opcode
	Arg string // operand of PUSH, BEQ, B and LABEL; otherwise empty
}

func (insn Insn) String() string {
	switch {
	case insn.Op == LABEL:
		return insn.Arg + ":"
	case insn.Op.hasArg():
		return insn.Op.String() + " " + insn.Arg
	default:
		return insn.Op.String()
	}
}

func push(arg string) Insn               { return Insn{Op: PUSH, Arg: arg} }
func pushInt(v int64) Insn               { return push(fmt.Sprint(v)) }
func jump(op Opcode, target string) Insn { return Insn{Op: op, Arg: target} }
func label(name string) Insn             { return Insn{Op: LABEL, Arg: name} }

// Code is a straight-line sequence of instructions.
type Code []Insn

// String returns the newline-separated text of the instructions,
// in the form accepted by the assembler. It has no trailing newline.
func (code Code) String() string {
	var buf strings.Builder
	for i, insn := range code {
		if i > 0 {
			buf.WriteByte('\n')
		}
		buf.WriteString(insn.String())
	}
	return buf.String()
}

// join concatenates blocks in order.
// Empty and nil blocks contribute nothing.
func join(blocks ...Code) Code {
	n := 0
	for _, b := range blocks {
		n += len(b)
	}
	if n == 0 {
		return nil
	}
	code := make(Code, 0, n)
	for _, b := range blocks {
		code = append(code, b...)
	}
	return code
}

// repeat returns n copies of insn.
func repeat(n int, insn Insn) Code {
	if n <= 0 {
		return nil
	}
	code := make(Code, n)
	for i := range code {
		code[i] = insn
	}
	return code
}
