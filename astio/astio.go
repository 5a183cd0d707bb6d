// Copyright 2026 The foolc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package astio reads and writes resolved syntax trees, so that an
// external parser and checker can hand its output to the compiler.
//
// A tree is carried as a google.protobuf.Value, in any of its JSON,
// text or binary encodings. Each node is an object whose "kind" field
// names its type. For example, the program
//
//	let fun id(x) = x; in id(1)
//
// is written in JSON as:
//
//	{"kind": "letin",
//	 "decls": [{"kind": "fun", "name": "id", "params": ["x"],
//	            "body": {"kind": "id", "name": "x", "level": 1,
//	                     "entry": {"level": 1, "offset": 1}}}],
//	 "body": {"kind": "call", "name": "id", "level": 0,
//	          "entry": {"level": 0, "offset": -2},
//	          "args": [{"kind": "int", "value": 1}]}}
//
// The kinds and their fields are:
//
//	letin   decls, body        let/in program
//	prog    body               bare expression program
//	fun     name, params, decls, body
//	var     name, value
//	call    name, level, entry, args
//	id      name, level, entry
//	if      cond, then, else
//	eq, plus, times   left, right
//	int     value (integral number)
//	bool    value
//	print   exp
//
// Any node may also have "line" and "col" fields giving its position.
package astio // import "github.com/foolang/foolc/astio"

import (
	"fmt"
	"math"
	"strings"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/encoding/prototext"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/foolang/foolc/syntax"
)

// A Format is an encoding of a google.protobuf.Value.
type Format int

const (
	JSON Format = iota // protojson
	Text               // prototext
	Wire               // binary
)

var formatNames = [...]string{
	JSON: "json",
	Text: "text",
	Wire: "wire",
}

func (f Format) String() string {
	if 0 <= f && int(f) < len(formatNames) {
		return formatNames[f]
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// ParseFormat returns the format with the given name.
func ParseFormat(name string) (Format, error) {
	for f, n := range formatNames {
		if n == name {
			return Format(f), nil
		}
	}
	return 0, fmt.Errorf("unknown format %q (want %s)", name, strings.Join(formatNames[:], ", "))
}

// An Error describes a malformed tree.
type Error struct {
	Path string // location of the offending node, e.g. "decls[0].body"
	Msg  string
}

func (e *Error) Error() string {
	if e.Path == "" {
		return e.Msg
	}
	return e.Path + ": " + e.Msg
}

func errorf(path, format string, args ...interface{}) error {
	return &Error{Path: path, Msg: fmt.Sprintf(format, args...)}
}

// Decode parses data, in format f, as a syntax tree.
func Decode(data []byte, f Format) (syntax.Root, error) {
	var v structpb.Value
	var err error
	switch f {
	case JSON:
		err = protojson.Unmarshal(data, &v)
	case Text:
		err = prototext.Unmarshal(data, &v)
	case Wire:
		err = proto.Unmarshal(data, &v)
	default:
		return nil, fmt.Errorf("unknown format %v", f)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding %v: %w", f, err)
	}
	return DecodeValue(&v)
}

// Encode returns the encoding of root in format f.
// It reports an error if root contains an unresolved reference.
func Encode(root syntax.Root, f Format) ([]byte, error) {
	if err := checkResolved(root); err != nil {
		return nil, err
	}
	v := EncodeValue(root)
	switch f {
	case JSON:
		return protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(v)
	case Text:
		return prototext.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(v)
	case Wire:
		return proto.MarshalOptions{Deterministic: true}.Marshal(v)
	}
	return nil, fmt.Errorf("unknown format %v", f)
}

// DecodeValue converts v to a syntax tree.
func DecodeValue(v *structpb.Value) (syntax.Root, error) {
	n, err := node(v, "")
	if err != nil {
		return nil, err
	}
	switch n.kind {
	case "letin":
		decls, err := n.decls("decls")
		if err != nil {
			return nil, err
		}
		body, err := n.expr("body")
		if err != nil {
			return nil, err
		}
		return &syntax.Program{Let: n.pos, Decls: decls, Body: body}, nil

	case "prog":
		body, err := n.expr("body")
		if err != nil {
			return nil, err
		}
		return &syntax.ExprProgram{Body: body}, nil
	}
	return nil, errorf(n.path, "got %q, want program (letin or prog)", n.kind)
}

// An object is a decoded node prior to conversion.
type object struct {
	path   string
	kind   string
	pos    syntax.Position
	fields map[string]*structpb.Value
}

func field(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}

func node(v *structpb.Value, path string) (*object, error) {
	s := v.GetStructValue()
	if s == nil {
		return nil, errorf(path, "got %s, want object", describe(v))
	}
	n := &object{path: path, fields: s.Fields}
	kind, ok := n.fields["kind"]
	if !ok {
		return nil, errorf(path, `missing "kind"`)
	}
	if _, ok := kind.Kind.(*structpb.Value_StringValue); !ok {
		return nil, errorf(field(path, "kind"), "got %s, want string", describe(kind))
	}
	n.kind = kind.GetStringValue()

	line, err := n.optInt("line", 0, math.MaxInt32)
	if err != nil {
		return nil, err
	}
	col, err := n.optInt("col", 0, math.MaxInt32)
	if err != nil {
		return nil, err
	}
	n.pos = syntax.Position{Line: int32(line), Col: int32(col)}
	return n, nil
}

func describe(v *structpb.Value) string {
	switch v.GetKind().(type) {
	case *structpb.Value_NullValue:
		return "null"
	case *structpb.Value_NumberValue:
		return "number"
	case *structpb.Value_StringValue:
		return "string"
	case *structpb.Value_BoolValue:
		return "bool"
	case *structpb.Value_StructValue:
		return "object"
	case *structpb.Value_ListValue:
		return "list"
	}
	return "nothing"
}

func (n *object) get(name string) (*structpb.Value, error) {
	v, ok := n.fields[name]
	if !ok {
		return nil, errorf(n.path, "%s: missing %q", n.kind, name)
	}
	return v, nil
}

func (n *object) str(name string) (string, error) {
	v, err := n.get(name)
	if err != nil {
		return "", err
	}
	if _, ok := v.Kind.(*structpb.Value_StringValue); !ok {
		return "", errorf(field(n.path, name), "got %s, want string", describe(v))
	}
	return v.GetStringValue(), nil
}

// maxExact is the largest integer magnitude a number value holds
// without rounding: 2^53 itself may stand for 2^53+1.
const maxExact = 1<<53 - 1

func toInt(v *structpb.Value, path string, min, max int64) (int64, error) {
	x, ok := v.Kind.(*structpb.Value_NumberValue)
	if !ok {
		return 0, errorf(path, "got %s, want integer", describe(v))
	}
	f := x.NumberValue
	if f != math.Trunc(f) {
		return 0, errorf(path, "%v is not an integer", f)
	}
	if math.Abs(f) > maxExact {
		return 0, errorf(path, "%v is out of exact integer range", f)
	}
	if i := int64(f); i < min || i > max {
		return 0, errorf(path, "%d is out of range [%d, %d]", i, min, max)
	}
	return int64(f), nil
}

// int returns the value of an integer field, which must lie in [min, max].
func (n *object) int(name string, min, max int64) (int64, error) {
	v, err := n.get(name)
	if err != nil {
		return 0, err
	}
	return toInt(v, field(n.path, name), min, max)
}

func (n *object) optInt(name string, min, max int64) (int64, error) {
	if _, ok := n.fields[name]; !ok {
		return 0, nil
	}
	return n.int(name, min, max)
}

// list returns the elements of an optional list field.
func (n *object) list(name string) ([]*structpb.Value, error) {
	v, ok := n.fields[name]
	if !ok {
		return nil, nil
	}
	l := v.GetListValue()
	if l == nil {
		return nil, errorf(field(n.path, name), "got %s, want list", describe(v))
	}
	return l.Values, nil
}

func (n *object) expr(name string) (syntax.Expr, error) {
	v, err := n.get(name)
	if err != nil {
		return nil, err
	}
	return expr(v, field(n.path, name))
}

func (n *object) decls(name string) ([]syntax.Decl, error) {
	elems, err := n.list(name)
	if err != nil {
		return nil, err
	}
	var decls []syntax.Decl
	for i, elem := range elems {
		d, err := decl(elem, fmt.Sprintf("%s[%d]", field(n.path, name), i))
		if err != nil {
			return nil, err
		}
		decls = append(decls, d)
	}
	return decls, nil
}

// reference decodes the resolved fields of an id or call.
func (n *object) reference() (name string, level int, entry *syntax.Entry, err error) {
	if name, err = n.str("name"); err != nil {
		return
	}
	lvl, err := n.int("level", 0, math.MaxInt32)
	if err != nil {
		return
	}
	v, err := n.get("entry")
	if err != nil {
		return
	}
	path := field(n.path, "entry")
	s := v.GetStructValue()
	if s == nil {
		return "", 0, nil, errorf(path, "got %s, want object", describe(v))
	}
	e := &object{path: path, kind: "entry", fields: s.Fields}
	declLevel, err := e.int("level", 0, math.MaxInt32)
	if err != nil {
		return
	}
	offset, err := e.int("offset", math.MinInt32, math.MaxInt32)
	if err != nil {
		return
	}
	return name, int(lvl), &syntax.Entry{Level: int(declLevel), Offset: int(offset)}, nil
}

func decl(v *structpb.Value, path string) (syntax.Decl, error) {
	n, err := node(v, path)
	if err != nil {
		return nil, err
	}
	switch n.kind {
	case "var":
		name, err := n.str("name")
		if err != nil {
			return nil, err
		}
		value, err := n.expr("value")
		if err != nil {
			return nil, err
		}
		return &syntax.VarDecl{Var: n.pos, Name: name, Value: value}, nil

	case "fun":
		name, err := n.str("name")
		if err != nil {
			return nil, err
		}
		params, err := n.list("params")
		if err != nil {
			return nil, err
		}
		f := &syntax.FunDecl{Fun: n.pos, Name: name}
		for i, p := range params {
			if _, ok := p.Kind.(*structpb.Value_StringValue); !ok {
				return nil, errorf(fmt.Sprintf("%s[%d]", field(path, "params"), i),
					"got %s, want string", describe(p))
			}
			f.Params = append(f.Params, &syntax.Param{Name: p.GetStringValue()})
		}
		if f.Decls, err = n.decls("decls"); err != nil {
			return nil, err
		}
		if f.Body, err = n.expr("body"); err != nil {
			return nil, err
		}
		return f, nil
	}
	return nil, errorf(path, "got %q, want declaration (fun or var)", n.kind)
}

var binaryOps = map[string]syntax.Token{
	"eq":    syntax.EQL,
	"plus":  syntax.PLUS,
	"times": syntax.STAR,
}

func expr(v *structpb.Value, path string) (syntax.Expr, error) {
	n, err := node(v, path)
	if err != nil {
		return nil, err
	}
	switch n.kind {
	case "int":
		x, err := n.int("value", -maxExact, maxExact)
		if err != nil {
			return nil, err
		}
		return &syntax.Literal{ValuePos: n.pos, Value: x}, nil

	case "bool":
		v, err := n.get("value")
		if err != nil {
			return nil, err
		}
		if _, ok := v.Kind.(*structpb.Value_BoolValue); !ok {
			return nil, errorf(field(path, "value"), "got %s, want bool", describe(v))
		}
		return &syntax.Literal{ValuePos: n.pos, Value: v.GetBoolValue()}, nil

	case "id":
		name, level, entry, err := n.reference()
		if err != nil {
			return nil, err
		}
		return &syntax.Ident{NamePos: n.pos, Name: name, Level: level, Entry: entry}, nil

	case "call":
		name, level, entry, err := n.reference()
		if err != nil {
			return nil, err
		}
		args, err := n.list("args")
		if err != nil {
			return nil, err
		}
		call := &syntax.CallExpr{NamePos: n.pos, Name: name, Level: level, Entry: entry}
		for i, arg := range args {
			x, err := expr(arg, fmt.Sprintf("%s[%d]", field(path, "args"), i))
			if err != nil {
				return nil, err
			}
			call.Args = append(call.Args, x)
		}
		return call, nil

	case "if":
		c, err := n.expr("cond")
		if err != nil {
			return nil, err
		}
		then, err := n.expr("then")
		if err != nil {
			return nil, err
		}
		els, err := n.expr("else")
		if err != nil {
			return nil, err
		}
		return &syntax.IfExpr{If: n.pos, Cond: c, Then: then, Else: els}, nil

	case "eq", "plus", "times":
		x, err := n.expr("left")
		if err != nil {
			return nil, err
		}
		y, err := n.expr("right")
		if err != nil {
			return nil, err
		}
		return &syntax.BinaryExpr{X: x, OpPos: n.pos, Op: binaryOps[n.kind], Y: y}, nil

	case "print":
		x, err := n.expr("exp")
		if err != nil {
			return nil, err
		}
		return &syntax.PrintExpr{Print: n.pos, X: x}, nil
	}
	return nil, errorf(path, "got %q, want expression", n.kind)
}
