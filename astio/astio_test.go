// Copyright 2026 The foolc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package astio_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/foolang/foolc/astio"
	"github.com/foolang/foolc/internal/compile"
	"github.com/foolang/foolc/syntax"
)

const idProgram = `
{"kind": "letin",
 "decls": [{"kind": "fun", "name": "id", "params": ["x"],
            "body": {"kind": "id", "name": "x", "level": 1,
                     "entry": {"level": 1, "offset": 1}}}],
 "body": {"kind": "call", "name": "id", "level": 0,
          "entry": {"level": 0, "offset": -2},
          "args": [{"kind": "int", "value": 1}]}}
`

func TestDecode(t *testing.T) {
	root, err := astio.Decode([]byte(idProgram), astio.JSON)
	if err != nil {
		t.Fatal(err)
	}
	want := &syntax.Program{
		Decls: []syntax.Decl{&syntax.FunDecl{
			Name:   "id",
			Params: []*syntax.Param{{Name: "x"}},
			Body:   &syntax.Ident{Name: "x", Level: 1, Entry: &syntax.Entry{Level: 1, Offset: 1}},
		}},
		Body: &syntax.CallExpr{
			Name:  "id",
			Entry: &syntax.Entry{Level: 0, Offset: -2},
			Args:  []syntax.Expr{&syntax.Literal{Value: int64(1)}},
		},
	}
	if diff := cmp.Diff(want, root); diff != "" {
		t.Errorf("decoded tree differs (-want +got):\n%s", diff)
	}

	const wantCode = `push 0
push function0
lfp
push 1
lfp
stm
ltm
ltm
push -2
add
lw
js
halt
function0:
cfp
lra
lfp
push 1
add
lw
stm
sra
pop
pop
sfp
ltm
lra
js`
	if got := compile.Compile(root).String(); got != wantCode {
		t.Errorf("compiled code:\n%s\nwant:\n%s", got, wantCode)
	}
}

func sample() syntax.Root {
	x := &syntax.Entry{Level: 0, Offset: -2}
	f := &syntax.Entry{Level: 0, Offset: -3}
	a := &syntax.Entry{Level: 1, Offset: 1}
	return &syntax.Program{
		Let: syntax.Position{Line: 1, Col: 1},
		Decls: []syntax.Decl{
			&syntax.VarDecl{Var: syntax.Position{Line: 2, Col: 3}, Name: "x", Value: &syntax.Literal{Value: true}},
			&syntax.FunDecl{
				Name:   "f",
				Params: []*syntax.Param{{Name: "a"}},
				Decls: []syntax.Decl{
					&syntax.FunDecl{Name: "g", Body: &syntax.Literal{Value: int64(-7)}},
				},
				Body: &syntax.IfExpr{
					Cond: &syntax.Ident{Name: "x", Level: 1, Entry: x},
					Then: &syntax.BinaryExpr{
						X:  &syntax.Ident{Name: "a", Level: 1, Entry: a},
						Op: syntax.STAR,
						Y:  &syntax.Literal{Value: int64(2)},
					},
					Else: &syntax.PrintExpr{X: &syntax.BinaryExpr{
						X:  &syntax.Ident{Name: "a", Level: 1, Entry: a},
						Op: syntax.EQL,
						Y:  &syntax.Literal{Value: int64(0)},
					}},
				},
			},
		},
		Body: &syntax.CallExpr{
			Name:  "f",
			Entry: f,
			Args: []syntax.Expr{&syntax.BinaryExpr{
				X:  &syntax.Literal{Value: int64(1)},
				Op: syntax.PLUS,
				Y:  &syntax.Literal{Value: int64(2)},
			}},
		},
	}
}

func TestRoundTrip(t *testing.T) {
	for _, root := range []syntax.Root{
		sample(),
		&syntax.ExprProgram{Body: &syntax.Literal{Value: false}},
	} {
		for _, f := range []astio.Format{astio.JSON, astio.Text, astio.Wire} {
			data, err := astio.Encode(root, f)
			if err != nil {
				t.Errorf("Encode(%v): %v", f, err)
				continue
			}
			got, err := astio.Decode(data, f)
			if err != nil {
				t.Errorf("Decode(%v): %v\n%s", f, err, data)
				continue
			}
			if diff := cmp.Diff(root, got); diff != "" {
				t.Errorf("%v round trip differs (-want +got):\n%s", f, diff)
			}
		}
	}
}

func TestDecodeErrors(t *testing.T) {
	for _, test := range []struct {
		src  string
		want string
	}{
		{`[1, 2]`, `got list, want object`},
		{`{"body": {"kind": "int", "value": 1}}`, `missing "kind"`},
		{`{"kind": 3}`, `kind: got number, want string`},
		{`{"kind": "int", "value": 1}`, `got "int", want program`},
		{`{"kind": "prog"}`, `prog: missing "body"`},
		{`{"kind": "prog", "body": {"kind": "int", "value": 1.5}}`, `body.value: 1.5 is not an integer`},
		{`{"kind": "prog", "body": {"kind": "bool", "value": 1}}`, `body.value: got number, want bool`},
		{`{"kind": "prog", "body": {"kind": "while"}}`, `body: got "while", want expression`},
		{`{"kind": "prog", "body": {"kind": "id", "name": "x", "level": 0}}`,
			`body: id: missing "entry"`},
		{`{"kind": "prog", "body": {"kind": "id", "name": "x", "level": 0, "entry": {"level": 0}}}`,
			`body.entry: entry: missing "offset"`},
		{`{"kind": "prog", "body": {"kind": "call", "name": "f", "level": 0,
		   "entry": {"level": 0, "offset": -2}, "args": [{"kind": "int"}]}}`,
			`body.args[0]: int: missing "value"`},
		{`{"kind": "letin", "decls": [{"kind": "var", "name": "v", "value": {"kind": "int", "value": 0}},
		   {"kind": "fun", "name": "f", "params": [1], "body": {"kind": "int", "value": 0}}],
		   "body": {"kind": "int", "value": 0}}`,
			`decls[1].params[0]: got number, want string`},
		{`{"kind": "letin", "decls": {}, "body": {"kind": "int", "value": 0}}`,
			`decls: got object, want list`},
		{`{"kind": "letin", "decls": [{"kind": "int", "value": 0}], "body": {"kind": "int", "value": 0}}`,
			`decls[0]: got "int", want declaration`},
		{`{"kind": "prog", "body": {"kind": "int", "value": 1, "line": "one"}}`,
			`body.line: got string, want integer`},
		{`{"kind": "prog", "body": {"kind": "int", "value": 9007199254740993}}`,
			`body.value: 9.007199254740992e+15 is out of exact integer range`},
		{`{"kind": "prog", "body": {"kind": "int", "value": -1e300}}`,
			`body.value: -1e+300 is out of exact integer range`},
		{`{"kind": "prog", "body": {"kind": "int", "value": 1, "line": 4294967297}}`,
			`body.line: 4294967297 is out of range [0, 2147483647]`},
		{`{"kind": "prog", "body": {"kind": "int", "value": 1, "col": -1}}`,
			`body.col: -1 is out of range`},
		{`{"kind": "prog", "body": {"kind": "id", "name": "x", "level": -1, "entry": {"level": 0, "offset": 1}}}`,
			`body.level: -1 is out of range`},
		{`{"kind": "prog", "body": {"kind": "id", "name": "x", "level": 0,
		   "entry": {"level": 0, "offset": -3000000000}}}`,
			`body.entry.offset: -3000000000 is out of range [-2147483648, 2147483647]`},
	} {
		_, err := astio.Decode([]byte(test.src), astio.JSON)
		if err == nil {
			t.Errorf("Decode(%s) succeeded, want error %q", test.src, test.want)
			continue
		}
		var aerr *astio.Error
		if !errors.As(err, &aerr) {
			t.Errorf("Decode(%s): error %v has type %T, want *astio.Error", test.src, err, err)
		}
		if !strings.Contains(err.Error(), test.want) {
			t.Errorf("Decode(%s) = %q, want error containing %q", test.src, err, test.want)
		}
	}
}

func TestDecodeIntegerLimits(t *testing.T) {
	for _, x := range []int64{1<<53 - 1, -(1<<53 - 1)} {
		src := fmt.Sprintf(`{"kind": "prog", "body": {"kind": "int", "value": %d}}`, x)
		root, err := astio.Decode([]byte(src), astio.JSON)
		if err != nil {
			t.Errorf("Decode(%d): %v", x, err)
			continue
		}
		lit, ok := root.(*syntax.ExprProgram).Body.(*syntax.Literal)
		if !ok || lit.Value != x {
			t.Errorf("Decode(%d) = %#v", x, root.(*syntax.ExprProgram).Body)
		}
	}
}

func TestEncodeUnresolved(t *testing.T) {
	for _, test := range []struct {
		root syntax.Root
		want string
	}{
		{
			&syntax.ExprProgram{Body: &syntax.Ident{NamePos: syntax.Position{Line: 3, Col: 5}, Name: "x"}},
			"3:5: unresolved reference to x",
		},
		{
			&syntax.Program{Body: &syntax.PrintExpr{X: &syntax.CallExpr{
				Name: "f",
				Args: []syntax.Expr{&syntax.Literal{Value: int64(1)}},
			}}},
			"?: unresolved call to f",
		},
	} {
		_, err := astio.Encode(test.root, astio.JSON)
		var aerr *astio.Error
		if !errors.As(err, &aerr) || err.Error() != test.want {
			t.Errorf("Encode = %v, want *astio.Error %q", err, test.want)
		}
	}
}

func TestDecodeSyntaxError(t *testing.T) {
	_, err := astio.Decode([]byte(`{"kind": `), astio.JSON)
	if err == nil || !strings.HasPrefix(err.Error(), "decoding json: ") {
		t.Errorf("got %v, want JSON syntax error", err)
	}
}

func TestParseFormat(t *testing.T) {
	for _, f := range []astio.Format{astio.JSON, astio.Text, astio.Wire} {
		got, err := astio.ParseFormat(f.String())
		if err != nil || got != f {
			t.Errorf("ParseFormat(%q) = %v, %v", f, got, err)
		}
	}
	if _, err := astio.ParseFormat("yaml"); err == nil {
		t.Errorf("ParseFormat(yaml) succeeded")
	}
}
