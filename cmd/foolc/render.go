// Copyright 2026 The foolc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"fmt"

	"github.com/foolang/foolc/astio"
	"github.com/foolang/foolc/internal/compile"
	"github.com/foolang/foolc/syntax"
)

const (
	bold  = "\x1b[1m"
	reset = "\x1b[0m"
)

// render returns the output for root in the named format:
// "asm" for the compiled code, otherwise an astio format.
// If highlight is set, label definitions in code are shown in bold.
func render(root syntax.Root, format string, highlight bool) ([]byte, error) {
	if format != "asm" {
		f, err := astio.ParseFormat(format)
		if err != nil {
			return nil, fmt.Errorf("-output: %v", err)
		}
		return astio.Encode(root, f)
	}

	var buf bytes.Buffer
	for _, insn := range compile.Compile(root).Code() {
		if highlight && insn.Op == compile.LABEL {
			buf.WriteString(bold + insn.String() + reset)
		} else {
			buf.WriteString(insn.String())
		}
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}
