// Copyright 2026 The foolc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package repl provides a read/compile/print loop for syntax trees.
//
// It supports readline-style command editing,
// and interrupts through Control-C.
//
// The REPL reads lines until they form a complete JSON syntax tree
// (see package astio), then compiles the tree and prints its code.
// A blank line ends the input early, so that a malformed tree is
// reported rather than waited upon. Control-C discards the input
// read so far.
package repl // import "github.com/foolang/foolc/repl"

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"

	"github.com/foolang/foolc/astio"
	"github.com/foolang/foolc/internal/compile"
)

// REPL executes a read, compile, print loop, writing code to out.
func REPL(out io.Writer) {
	rl, err := readline.New(">>> ")
	if err != nil {
		PrintError(err)
		return
	}
	defer rl.Close()
	for {
		if err := rep(rl, out); err != nil {
			if err == readline.ErrInterrupt {
				fmt.Println(err)
				continue
			}
			break
		}
	}
	fmt.Println()
}

// rep reads, compiles, and prints one tree.
//
// It returns an error (possibly readline.ErrInterrupt)
// only if readline failed. Decoding errors are printed.
func rep(rl *readline.Instance, out io.Writer) error {
	rl.SetPrompt(">>> ")
	var buf strings.Builder
	for {
		line, err := rl.Readline()
		if err != nil {
			if err == io.EOF && strings.TrimSpace(buf.String()) != "" {
				// Report what we have before exiting.
				compileAndPrint(buf.String(), out, true)
			}
			return err
		}
		rl.SetPrompt("... ")

		blank := strings.TrimSpace(line) == ""
		if blank && buf.Len() == 0 {
			rl.SetPrompt(">>> ")
			continue
		}
		buf.WriteString(line)
		buf.WriteByte('\n')

		if compileAndPrint(buf.String(), out, blank) {
			return nil
		}
	}
}

// compileAndPrint decodes and compiles src, printing its code.
// It reports whether src was consumed: if src is merely an incomplete
// tree, and final is false, it prints nothing and returns false.
func compileAndPrint(src string, out io.Writer, final bool) bool {
	root, err := astio.Decode([]byte(src), astio.JSON)
	if err != nil {
		if !final && incomplete(err) {
			return false
		}
		PrintError(err)
		return true
	}
	fmt.Fprintln(out, compile.Compile(root))
	return true
}

// incomplete reports whether err indicates truncated input.
// A string literal broken by the end of a line is incomplete too,
// since the next line may close it.
func incomplete(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "unexpected EOF") ||
		strings.Contains(msg, `invalid character '\n' in string`)
}

// PrintError prints the error to stderr.
func PrintError(err error) {
	fmt.Fprintln(os.Stderr, err)
}
