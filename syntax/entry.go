// Copyright 2026 The foolc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package syntax

import "fmt"

// This file defines the resolver data referenced by the syntax tree.

// An Entry ties a reference to its declaration.
// The resolver computes an Entry for every Ident and CallExpr.
type Entry struct {
	// Level is the nesting level of the declaration:
	// 0 for the outermost let, 1 inside a top-level function, and so on.
	Level int

	// Offset is the slot of the declared value within the
	// activation record of its declaring scope.
	// Parameters have offsets 1, 2, ...; declarations -2, -3, ...
	Offset int
}

func (e *Entry) String() string {
	return fmt.Sprintf("level %d, offset %d", e.Level, e.Offset)
}

// ParamOffset returns the frame offset of the i'th (0-based) parameter.
func ParamOffset(i int) int { return i + 1 }

// DeclOffset returns the frame offset of the i'th (0-based) declaration
// of a let, after the access link at offset 0 and the return
// address at offset -1.
func DeclOffset(i int) int { return -2 - i }
