// Copyright 2026 The foolc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package syntax defines the resolved abstract syntax tree consumed by
// the code generator.
//
// Trees are produced by an external parser and checker, which must
// also fill in the Entry and Level fields of every reference.
// Nothing in this module mutates a tree once it is built.
package syntax // import "github.com/foolang/foolc/syntax"

import "fmt"

// A Position describes the location of a node in its source file.
// The zero Position is valid and means "unknown".
type Position struct {
	Line int32 // 1-based line number; 0 if unknown
	Col  int32 // 1-based column number; 0 if unknown
}

// IsValid reports whether the position is known.
func (p Position) IsValid() bool { return p.Line > 0 }

func (p Position) String() string {
	if !p.IsValid() {
		return "?"
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// A Node is a node in a syntax tree.
type Node interface {
	// Pos returns the start position of the node.
	Pos() Position
}

// A Root is the top of a syntax tree: *Program or *ExprProgram.
type Root interface {
	Node
	root()
}

func (*Program) root()     {}
func (*ExprProgram) root() {}

// A Program is the let/in form: let Decls in Body.
type Program struct {
	Let   Position
	Decls []Decl
	Body  Expr
}

func (x *Program) Pos() Position { return x.Let }

// An ExprProgram is a program consisting of a bare expression.
// It cannot declare anything.
type ExprProgram struct {
	Body Expr
}

func (x *ExprProgram) Pos() Position { return x.Body.Pos() }

// A Decl is a declaration: *FunDecl or *VarDecl.
type Decl interface {
	Node
	decl()
	// Ident returns the declared name.
	Ident() string
}

func (*FunDecl) decl() {}
func (*VarDecl) decl() {}

// A FunDecl declares a function:
//
//	fun Name(Params) = let Decls in Body
//
// Decls may itself contain further FunDecls.
type FunDecl struct {
	Fun    Position
	Name   string
	Params []*Param
	Decls  []Decl
	Body   Expr
}

func (x *FunDecl) Pos() Position  { return x.Fun }
func (x *FunDecl) Ident() string { return x.Name }

// A Param is a formal parameter of a FunDecl.
type Param struct {
	NamePos Position
	Name    string
}

// A VarDecl declares a variable: var Name = Value.
type VarDecl struct {
	Var   Position
	Name  string
	Value Expr
}

func (x *VarDecl) Pos() Position  { return x.Var }
func (x *VarDecl) Ident() string { return x.Name }

// An Expr is an expression.
type Expr interface {
	Node
	expr()
}

func (*BinaryExpr) expr() {}
func (*CallExpr) expr()   {}
func (*Ident) expr()      {}
func (*IfExpr) expr()     {}
func (*Literal) expr()    {}
func (*PrintExpr) expr()  {}

// An Ident is a reference to a variable, parameter or function.
type Ident struct {
	NamePos Position
	Name    string

	// set by resolver:
	Level int    // nesting level of the reference itself
	Entry *Entry // the declaration it refers to
}

func (x *Ident) Pos() Position { return x.NamePos }

// A CallExpr represents a call of a named function: Name(Args).
type CallExpr struct {
	NamePos Position
	Name    string
	Args    []Expr

	// set by resolver:
	Level int    // nesting level of the call site
	Entry *Entry // the declaration of the callee
}

func (x *CallExpr) Pos() Position { return x.NamePos }

// An IfExpr represents the conditional: if Cond then {Then} else {Else}.
type IfExpr struct {
	If   Position
	Cond Expr
	Then Expr
	Else Expr
}

func (x *IfExpr) Pos() Position { return x.If }

// A BinaryExpr represents a binary expression: X Op Y.
type BinaryExpr struct {
	X     Expr
	OpPos Position
	Op    Token // = EQL | PLUS | STAR
	Y     Expr
}

func (x *BinaryExpr) Pos() Position { return x.X.Pos() }

// A Literal represents an integer or boolean constant.
type Literal struct {
	ValuePos Position
	Value    interface{} // = int64 | bool
}

func (x *Literal) Pos() Position { return x.ValuePos }

// A PrintExpr prints the value of X, which is also its result.
type PrintExpr struct {
	Print Position
	X     Expr
}

func (x *PrintExpr) Pos() Position { return x.Print }
