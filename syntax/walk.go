// Copyright 2026 The foolc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package syntax

// Walk traverses a syntax tree in depth-first order.
// It starts by calling f(n); n must not be nil.
// If f returns true, Walk calls itself
// recursively for each non-nil child of n.
// Walk then calls f(nil).
func Walk(n Node, f func(Node) bool) {
	if n == nil {
		panic("nil")
	}
	if !f(n) {
		return
	}

	switch n := n.(type) {
	case *Program:
		walkDecls(n.Decls, f)
		Walk(n.Body, f)

	case *ExprProgram:
		Walk(n.Body, f)

	case *FunDecl:
		walkDecls(n.Decls, f)
		Walk(n.Body, f)

	case *VarDecl:
		Walk(n.Value, f)

	case *CallExpr:
		for _, arg := range n.Args {
			Walk(arg, f)
		}

	case *IfExpr:
		Walk(n.Cond, f)
		Walk(n.Then, f)
		Walk(n.Else, f)

	case *BinaryExpr:
		Walk(n.X, f)
		Walk(n.Y, f)

	case *PrintExpr:
		Walk(n.X, f)

	case *Ident, *Literal:
		// no-op
	}

	f(nil)
}

func walkDecls(decls []Decl, f func(Node) bool) {
	for _, decl := range decls {
		Walk(decl, f)
	}
}
