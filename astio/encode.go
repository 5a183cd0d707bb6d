// Copyright 2026 The foolc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package astio

import (
	"fmt"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/foolang/foolc/syntax"
)

func str(s string) *structpb.Value {
	return &structpb.Value{Kind: &structpb.Value_StringValue{StringValue: s}}
}

func number(x int64) *structpb.Value {
	return &structpb.Value{Kind: &structpb.Value_NumberValue{NumberValue: float64(x)}}
}

func boolean(b bool) *structpb.Value {
	return &structpb.Value{Kind: &structpb.Value_BoolValue{BoolValue: b}}
}

func list(elems []*structpb.Value) *structpb.Value {
	return &structpb.Value{Kind: &structpb.Value_ListValue{ListValue: &structpb.ListValue{Values: elems}}}
}

func obj(fields map[string]*structpb.Value) *structpb.Value {
	return &structpb.Value{Kind: &structpb.Value_StructValue{StructValue: &structpb.Struct{Fields: fields}}}
}

// tagged returns an object of the given kind and position.
func tagged(kind string, pos syntax.Position, fields map[string]*structpb.Value) *structpb.Value {
	fields["kind"] = str(kind)
	if pos.IsValid() {
		fields["line"] = number(int64(pos.Line))
		fields["col"] = number(int64(pos.Col))
	}
	return obj(fields)
}

// checkResolved returns an error for the first identifier or call
// in root that lacks an Entry.
func checkResolved(root syntax.Root) error {
	var err error
	syntax.Walk(root, func(n syntax.Node) bool {
		if err != nil {
			return false
		}
		switch n := n.(type) {
		case *syntax.Ident:
			if n.Entry == nil {
				err = &Error{Msg: fmt.Sprintf("%s: unresolved reference to %s", n.Pos(), n.Name)}
			}
		case *syntax.CallExpr:
			if n.Entry == nil {
				err = &Error{Msg: fmt.Sprintf("%s: unresolved call to %s", n.Pos(), n.Name)}
			}
		}
		return err == nil
	})
	return err
}

// EncodeValue converts a syntax tree to a google.protobuf.Value.
// It panics if the tree contains a node of unknown type or an
// unresolved reference; Encode reports the latter as an error.
func EncodeValue(root syntax.Root) *structpb.Value {
	switch root := root.(type) {
	case *syntax.Program:
		return tagged("letin", root.Let, map[string]*structpb.Value{
			"decls": encodeDecls(root.Decls),
			"body":  encodeExpr(root.Body),
		})
	case *syntax.ExprProgram:
		return tagged("prog", syntax.Position{}, map[string]*structpb.Value{
			"body": encodeExpr(root.Body),
		})
	}
	panic(fmt.Sprintf("unexpected root %T", root))
}

func encodeDecls(decls []syntax.Decl) *structpb.Value {
	elems := make([]*structpb.Value, len(decls))
	for i, d := range decls {
		elems[i] = encodeDecl(d)
	}
	return list(elems)
}

func encodeDecl(d syntax.Decl) *structpb.Value {
	switch d := d.(type) {
	case *syntax.VarDecl:
		return tagged("var", d.Var, map[string]*structpb.Value{
			"name":  str(d.Name),
			"value": encodeExpr(d.Value),
		})
	case *syntax.FunDecl:
		params := make([]*structpb.Value, len(d.Params))
		for i, p := range d.Params {
			params[i] = str(p.Name)
		}
		return tagged("fun", d.Fun, map[string]*structpb.Value{
			"name":   str(d.Name),
			"params": list(params),
			"decls":  encodeDecls(d.Decls),
			"body":   encodeExpr(d.Body),
		})
	}
	panic(fmt.Sprintf("unexpected declaration %T", d))
}

func encodeEntry(e *syntax.Entry) *structpb.Value {
	return obj(map[string]*structpb.Value{
		"level":  number(int64(e.Level)),
		"offset": number(int64(e.Offset)),
	})
}

var binaryKinds = map[syntax.Token]string{
	syntax.EQL:  "eq",
	syntax.PLUS: "plus",
	syntax.STAR: "times",
}

func encodeExpr(e syntax.Expr) *structpb.Value {
	switch e := e.(type) {
	case *syntax.Literal:
		switch v := e.Value.(type) {
		case int64:
			return tagged("int", e.ValuePos, map[string]*structpb.Value{"value": number(v)})
		case bool:
			return tagged("bool", e.ValuePos, map[string]*structpb.Value{"value": boolean(v)})
		}
		panic(fmt.Sprintf("unexpected literal %T", e.Value))

	case *syntax.Ident:
		return tagged("id", e.NamePos, map[string]*structpb.Value{
			"name":  str(e.Name),
			"level": number(int64(e.Level)),
			"entry": encodeEntry(e.Entry),
		})

	case *syntax.CallExpr:
		args := make([]*structpb.Value, len(e.Args))
		for i, arg := range e.Args {
			args[i] = encodeExpr(arg)
		}
		return tagged("call", e.NamePos, map[string]*structpb.Value{
			"name":  str(e.Name),
			"level": number(int64(e.Level)),
			"entry": encodeEntry(e.Entry),
			"args":  list(args),
		})

	case *syntax.IfExpr:
		return tagged("if", e.If, map[string]*structpb.Value{
			"cond": encodeExpr(e.Cond),
			"then": encodeExpr(e.Then),
			"else": encodeExpr(e.Else),
		})

	case *syntax.BinaryExpr:
		kind, ok := binaryKinds[e.Op]
		if !ok {
			panic(fmt.Sprintf("unexpected binary op %s", e.Op))
		}
		return tagged(kind, e.OpPos, map[string]*structpb.Value{
			"left":  encodeExpr(e.X),
			"right": encodeExpr(e.Y),
		})

	case *syntax.PrintExpr:
		return tagged("print", e.Print, map[string]*structpb.Value{
			"exp": encodeExpr(e.X),
		})
	}
	panic(fmt.Sprintf("unexpected expression %T", e))
}
