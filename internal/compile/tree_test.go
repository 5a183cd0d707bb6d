// Copyright 2026 The foolc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compile_test

import "github.com/foolang/foolc/syntax"

// Helpers for building resolved trees by hand.

func num(v int64) *syntax.Literal    { return &syntax.Literal{Value: v} }
func boolean(v bool) *syntax.Literal { return &syntax.Literal{Value: v} }

func entry(level, offset int) *syntax.Entry {
	return &syntax.Entry{Level: level, Offset: offset}
}

// ref returns a reference, at nesting level level, to e.
func ref(name string, level int, e *syntax.Entry) *syntax.Ident {
	return &syntax.Ident{Name: name, Level: level, Entry: e}
}

func call(name string, level int, e *syntax.Entry, args ...syntax.Expr) *syntax.CallExpr {
	return &syntax.CallExpr{Name: name, Level: level, Entry: e, Args: args}
}

func binary(x syntax.Expr, op syntax.Token, y syntax.Expr) *syntax.BinaryExpr {
	return &syntax.BinaryExpr{X: x, Op: op, Y: y}
}

func cond(c, then, els syntax.Expr) *syntax.IfExpr {
	return &syntax.IfExpr{Cond: c, Then: then, Else: els}
}

func printExpr(x syntax.Expr) *syntax.PrintExpr { return &syntax.PrintExpr{X: x} }

func variable(name string, value syntax.Expr) *syntax.VarDecl {
	return &syntax.VarDecl{Name: name, Value: value}
}

func fun(name string, params []string, decls []syntax.Decl, body syntax.Expr) *syntax.FunDecl {
	f := &syntax.FunDecl{Name: name, Decls: decls, Body: body}
	for _, p := range params {
		f.Params = append(f.Params, &syntax.Param{Name: p})
	}
	return f
}

func letin(decls []syntax.Decl, body syntax.Expr) *syntax.Program {
	return &syntax.Program{Decls: decls, Body: body}
}

func decls(decls ...syntax.Decl) []syntax.Decl { return decls }

// Trees shared by several tests.

// let var x = 5; fun add(a, b) = a + b + x; in print(add(2, 3))
func globalsTree() *syntax.Program {
	x, add := entry(0, syntax.DeclOffset(0)), entry(0, syntax.DeclOffset(1))
	a, b := entry(1, syntax.ParamOffset(0)), entry(1, syntax.ParamOffset(1))
	return letin(
		decls(
			variable("x", num(5)),
			fun("add", []string{"a", "b"}, nil,
				binary(binary(ref("a", 1, a), syntax.PLUS, ref("b", 1, b)), syntax.PLUS, ref("x", 1, x))),
		),
		printExpr(call("add", 0, add, num(2), num(3))))
}

// let
//
//	fun outer(n) = let fun inner(m) = m * n; in inner(3);
//
// in outer(4)
func nestedTree() *syntax.Program {
	outer := entry(0, syntax.DeclOffset(0))
	n := entry(1, syntax.ParamOffset(0))
	inner := entry(1, syntax.DeclOffset(0))
	m := entry(2, syntax.ParamOffset(0))
	return letin(
		decls(
			fun("outer", []string{"n"},
				decls(fun("inner", []string{"m"}, nil,
					binary(ref("m", 2, m), syntax.STAR, ref("n", 2, n)))),
				call("inner", 1, inner, num(3))),
		),
		call("outer", 0, outer, num(4)))
}

// let
//
//	fun apply(g, v) = g(v);
//	fun twice(x) = x + x;
//
// in apply(twice, 21)
func higherOrderTree() *syntax.Program {
	apply, twice := entry(0, syntax.DeclOffset(0)), entry(0, syntax.DeclOffset(1))
	g, v := entry(1, syntax.ParamOffset(0)), entry(1, syntax.ParamOffset(1))
	x := entry(1, syntax.ParamOffset(0))
	return letin(
		decls(
			fun("apply", []string{"g", "v"}, nil, call("g", 1, g, ref("v", 1, v))),
			fun("twice", []string{"x"}, nil, binary(ref("x", 1, x), syntax.PLUS, ref("x", 1, x))),
		),
		call("apply", 0, apply, ref("twice", 0, twice), num(21)))
}

// let
//
//	var k = 2;
//	fun f(a, b) =
//	  let var s = a + b; var t = s * k;
//	      fun g(c) = let fun h() = c + s; in h();
//	  in if t == 10 then g(t) else g(0);
//
// in print(f(2, 3))
func deepTree() *syntax.Program {
	k, f := entry(0, syntax.DeclOffset(0)), entry(0, syntax.DeclOffset(1))
	a, b := entry(1, syntax.ParamOffset(0)), entry(1, syntax.ParamOffset(1))
	s, t, g := entry(1, syntax.DeclOffset(0)), entry(1, syntax.DeclOffset(1)), entry(1, syntax.DeclOffset(2))
	c, h := entry(2, syntax.ParamOffset(0)), entry(2, syntax.DeclOffset(0))
	return letin(
		decls(
			variable("k", num(2)),
			fun("f", []string{"a", "b"},
				decls(
					variable("s", binary(ref("a", 1, a), syntax.PLUS, ref("b", 1, b))),
					variable("t", binary(ref("s", 1, s), syntax.STAR, ref("k", 1, k))),
					fun("g", []string{"c"},
						decls(fun("h", nil, nil, binary(ref("c", 3, c), syntax.PLUS, ref("s", 3, s)))),
						call("h", 2, h)),
				),
				cond(binary(ref("t", 1, t), syntax.EQL, num(10)),
					call("g", 1, g, ref("t", 1, t)),
					call("g", 1, g, num(0)))),
		),
		printExpr(call("f", 0, f, num(2), num(3))))
}
