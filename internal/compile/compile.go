// Copyright 2026 The foolc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package compile defines the code generator, which translates a
// resolved syntax tree into assembly text for the stack virtual machine.
//
// Each function declaration is compiled to a separate block of code,
// a Funcode, which begins with the function's label. At the point of
// declaration the generator emits only a push of that label, so the
// function becomes a value stored in the declaring frame. All Funcodes
// are appended, in order of declaration, after the halt instruction
// of the top-level code.
//
// Activation records have the following layout, relative to $fp:
//
//	fp+n+1  control link (caller's $fp)
//	fp+n    parameter n
//	...
//	fp+1    parameter 1
//	fp+0    access link ($fp of the declaring scope)
//	fp-1    return address
//	fp-2    first declaration of the function's let
//	...
//
// A reference at nesting level C to a declaration at level D finds the
// declaring frame by following C-D access links from $fp.
//
// The generator performs no validation: the resolver is responsible
// for the consistency of the tree, and violations cause a panic.
package compile // import "github.com/foolang/foolc/internal/compile"

import (
	"fmt"
	"log"
	"strings"

	"github.com/foolang/foolc/syntax"
)

// Disassemble causes the assembly of each function to be logged as it
// is generated.
var Disassemble = false

// Trace causes each syntax node to be logged as it is visited,
// indented by depth.
var Trace = false

// A Program is the result of compiling a syntax tree.
type Program struct {
	Toplevel  Code       // stack initialization, declarations, body, halt
	Functions []*Funcode // function code pool, one per FunDecl, in declaration order
}

// A Funcode is the code of a single function.
type Funcode struct {
	Decl  *syntax.FunDecl
	Label string // entry point; the first instruction of Code defines it
	Code  Code
}

// NumParams returns the number of parameters of the function.
func (fn *Funcode) NumParams() int { return len(fn.Decl.Params) }

// NumLocals returns the number of declarations of the function's let.
func (fn *Funcode) NumLocals() int { return len(fn.Decl.Decls) }

// Code returns the complete instruction sequence of the program:
// the top-level code followed by the function code pool.
func (prog *Program) Code() Code {
	blocks := make([]Code, 0, 1+len(prog.Functions))
	blocks = append(blocks, prog.Toplevel)
	for _, fn := range prog.Functions {
		blocks = append(blocks, fn.Code)
	}
	return join(blocks...)
}

// String returns the assembly text of the program.
func (prog *Program) String() string { return prog.Code().String() }

// Compile generates code for the syntax tree rooted at root.
//
// Each call uses its own label counters and function pool,
// so concurrent calls on distinct trees are safe.
func Compile(root syntax.Root) *Program {
	pcomp := &pcomp{prog: new(Program)}

	switch root := root.(type) {
	case *syntax.Program:
		pcomp.trace(root, "")
		pcomp.prog.Toplevel = join(
			Code{push("0")},
			pcomp.decls(root.Decls),
			pcomp.expr(root.Body),
			Code{{Op: HALT}})
		pcomp.untrace()

	case *syntax.ExprProgram:
		pcomp.trace(root, "")
		pcomp.prog.Toplevel = join(
			pcomp.expr(root.Body),
			Code{{Op: HALT}})
		pcomp.untrace()

	default:
		log.Panicf("internal error: unexpected root %T", root)
	}

	return pcomp.prog
}

// pcomp holds the compiler state for a Program.
type pcomp struct {
	prog *Program

	labels    int // number of control-flow labels allocated
	funLabels int // number of function labels allocated

	depth int // for Trace
}

// newLabel returns a fresh control-flow label.
func (pcomp *pcomp) newLabel() string {
	name := fmt.Sprintf("label%d", pcomp.labels)
	pcomp.labels++
	return name
}

// newFunLabel returns a fresh function entry label.
func (pcomp *pcomp) newFunLabel() string {
	name := fmt.Sprintf("function%d", pcomp.funLabels)
	pcomp.funLabels++
	return name
}

func (pcomp *pcomp) trace(n syntax.Node, detail string) {
	if !Trace {
		return
	}
	kind := strings.TrimPrefix(fmt.Sprintf("%T", n), "*syntax.")
	if detail != "" {
		kind += ": " + detail
	}
	log.Printf("%s%s", strings.Repeat("  ", pcomp.depth), kind)
	pcomp.depth++
}

func (pcomp *pcomp) untrace() {
	if Trace {
		pcomp.depth--
	}
}

// decls returns the code for a list of declarations.
// Each leaves one value on the stack, which becomes the
// declaration's slot in the current frame.
func (pcomp *pcomp) decls(decls []syntax.Decl) Code {
	var code Code
	for _, decl := range decls {
		code = join(code, pcomp.decl(decl))
	}
	return code
}

func (pcomp *pcomp) decl(decl syntax.Decl) Code {
	pcomp.trace(decl, decl.Ident())
	defer pcomp.untrace()

	switch decl := decl.(type) {
	case *syntax.VarDecl:
		return pcomp.expr(decl.Value)

	case *syntax.FunDecl:
		return pcomp.function(decl)
	}
	log.Panicf("internal error: unexpected declaration %T", decl)
	panic("unreachable")
}

// function adds the code of f to the pool and returns
// the code that pushes f's label at the point of declaration.
func (pcomp *pcomp) function(f *syntax.FunDecl) Code {
	// Reserve the pool entry first so that enclosing
	// functions precede the functions nested within them.
	fn := &Funcode{
		Decl:  f,
		Label: pcomp.newFunLabel(),
	}
	pcomp.prog.Functions = append(pcomp.prog.Functions, fn)

	fn.Code = join(
		// prologue
		Code{label(fn.Label), {Op: CFP}, {Op: LRA}},
		pcomp.decls(f.Decls),
		pcomp.expr(f.Body),

		// epilogue: $tm holds the result while the frame is removed
		Code{{Op: STM}},
		repeat(fn.NumLocals(), Insn{Op: POP}),
		Code{{Op: SRA}, {Op: POP}}, // return address, access link
		repeat(fn.NumParams(), Insn{Op: POP}),
		Code{{Op: SFP}, {Op: LTM}, {Op: LRA}, {Op: JS}})

	if Disassemble {
		log.Printf("function %s (%s/%d):\n%s", fn.Label, f.Name, fn.NumParams(), fn.Code)
	}

	return Code{push(fn.Label)}
}

// frame returns the code that pushes the base address of the
// frame declaring entry, as seen from code at nesting level level.
func frame(n syntax.Node, name string, level int, entry *syntax.Entry) Code {
	if entry == nil {
		log.Panicf("%s: internal error: unresolved reference to %s", n.Pos(), name)
	}
	hops := level - entry.Level
	if hops < 0 {
		log.Panicf("%s: internal error: reference to %s at level %d, declared at deeper level %d",
			n.Pos(), name, level, entry.Level)
	}
	return join(Code{{Op: LFP}}, repeat(hops, Insn{Op: LW}))
}

func (pcomp *pcomp) expr(e syntax.Expr) Code {
	switch e := e.(type) {
	case *syntax.Ident:
		pcomp.trace(e, e.Name)
		defer pcomp.untrace()
		fp := frame(e, e.Name, e.Level, e.Entry)
		return join(fp, Code{pushInt(int64(e.Entry.Offset)), {Op: ADD}, {Op: LW}})

	case *syntax.CallExpr:
		pcomp.trace(e, e.Name)
		defer pcomp.untrace()
		return pcomp.call(e)

	case *syntax.IfExpr:
		pcomp.trace(e, "")
		defer pcomp.untrace()
		// The false branch falls through; the true branch follows it.
		then, done := pcomp.newLabel(), pcomp.newLabel()
		return join(
			pcomp.expr(e.Cond),
			Code{push("1"), jump(BEQ, then)},
			pcomp.expr(e.Else),
			Code{jump(B, done), label(then)},
			pcomp.expr(e.Then),
			Code{label(done)})

	case *syntax.BinaryExpr:
		pcomp.trace(e, e.Op.String())
		defer pcomp.untrace()
		return pcomp.binary(e)

	case *syntax.Literal:
		pcomp.trace(e, fmt.Sprint(e.Value))
		defer pcomp.untrace()
		switch v := e.Value.(type) {
		case int64:
			return Code{pushInt(v)}
		case bool:
			if v {
				return Code{push("1")}
			}
			return Code{push("0")}
		}
		log.Panicf("%s: internal error: unexpected literal %T", e.Pos(), e.Value)

	case *syntax.PrintExpr:
		pcomp.trace(e, "")
		defer pcomp.untrace()
		return join(pcomp.expr(e.X), Code{{Op: PRINT}})
	}
	log.Panicf("internal error: unexpected expression %T", e)
	panic("unreachable")
}

func (pcomp *pcomp) binary(e *syntax.BinaryExpr) Code {
	switch e.Op {
	case syntax.EQL:
		yes, done := pcomp.newLabel(), pcomp.newLabel()
		return join(
			pcomp.expr(e.X),
			pcomp.expr(e.Y),
			Code{
				jump(BEQ, yes),
				push("0"),
				jump(B, done),
				label(yes),
				push("1"),
				label(done),
			})

	case syntax.PLUS:
		return join(pcomp.expr(e.X), pcomp.expr(e.Y), Code{{Op: ADD}})

	case syntax.STAR:
		return join(pcomp.expr(e.X), pcomp.expr(e.Y), Code{{Op: MULT}})
	}
	log.Panicf("%s: internal error: unexpected binary op %s", e.OpPos, e.Op)
	panic("unreachable")
}

// call returns the code for a call, which builds the callee's frame
// up to its access link and jumps to the function value found in the
// callee's declaring frame.
func (pcomp *pcomp) call(call *syntax.CallExpr) Code {
	// Arguments are pushed last to first,
	// so that parameter i is found at fp+i.
	var args Code
	for i := len(call.Args) - 1; i >= 0; i-- {
		args = join(args, pcomp.expr(call.Args[i]))
	}

	fp := frame(call, call.Name, call.Level, call.Entry)

	return join(
		Code{{Op: LFP}}, // control link
		args,
		fp,
		Code{
			{Op: STM}, // duplicate the declaring frame address:
			{Op: LTM}, // once as the access link,
			{Op: LTM}, // once to find the function value
			pushInt(int64(call.Entry.Offset)),
			{Op: ADD},
			{Op: LW},
			{Op: JS},
		})
}
