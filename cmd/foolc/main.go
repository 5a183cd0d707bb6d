// Copyright 2026 The foolc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// The foolc command compiles a resolved syntax tree into assembly
// for the stack virtual machine.
// With no arguments, it starts a read-compile-print loop (REPL).
//
// The tree is read in one of the encodings of package astio.
package main // import "github.com/foolang/foolc/cmd/foolc"

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/pprof"

	"golang.org/x/term"

	"github.com/foolang/foolc/astio"
	"github.com/foolang/foolc/internal/compile"
	"github.com/foolang/foolc/repl"
)

// flags
var (
	cpuprofile = flag.String("cpuprofile", "", "gather Go CPU profile in this file")
	inputFlag  = flag.String("input", "json", "input format (json, text, wire)")
	outputFlag = flag.String("output", "asm", "output format (asm, json, text, wire)")
	outfile    = flag.String("o", "", "write output to `file` instead of standard output")
	execprog   = flag.String("c", "", "compile the tree `src`")
)

func init() {
	flag.BoolVar(&compile.Disassemble, "disassemble", compile.Disassemble, "show disassembly of each function as it is compiled")
	flag.BoolVar(&compile.Trace, "trace", compile.Trace, "show each syntax node as it is compiled")
}

func main() {
	os.Exit(doMain())
}

func doMain() int {
	log.SetPrefix("foolc: ")
	log.SetFlags(0)
	flag.Parse()

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		check(err)
		err = pprof.StartCPUProfile(f)
		check(err)
		defer func() {
			pprof.StopCPUProfile()
			err := f.Close()
			check(err)
		}()
	}

	switch {
	case flag.NArg() == 1 || *execprog != "":
		var (
			filename string
			data     []byte
			err      error
		)
		if *execprog != "" {
			// Compile provided tree.
			filename = "cmdline"
			data = []byte(*execprog)
		} else {
			// Compile specified file.
			filename = flag.Arg(0)
			data, err = os.ReadFile(filename)
			if err != nil {
				log.Print(err)
				return 1
			}
		}
		if err := run(filename, data); err != nil {
			log.Print(err)
			return 1
		}
	case flag.NArg() == 0:
		fmt.Println("Welcome to foolc. Enter a syntax tree in JSON form.")
		repl.REPL(os.Stdout)
	default:
		log.Print("want at most one file name")
		return 1
	}
	return 0
}

// run compiles or converts the tree in data, according to the flags.
func run(filename string, data []byte) error {
	in, err := astio.ParseFormat(*inputFlag)
	if err != nil {
		return fmt.Errorf("-input: %v", err)
	}
	root, err := astio.Decode(data, in)
	if err != nil {
		return fmt.Errorf("%s: %w", filename, err)
	}

	highlight := *outfile == "" && term.IsTerminal(int(os.Stdout.Fd()))
	text, err := render(root, *outputFlag, highlight)
	if err != nil {
		return err
	}
	if *outfile != "" {
		return os.WriteFile(*outfile, text, 0666)
	}
	_, err = os.Stdout.Write(text)
	return err
}

func check(err error) {
	if err != nil {
		log.Fatal(err)
	}
}
