/*
File    : lazylang/main.go
*/

// Command lazylang is a batch source-to-C compiler: it reads one source
// file, lexes, parses, and semantically checks it, then emits a C
// translation unit and, by default, links it into an executable with an
// external C compiler.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/chmenegatti/lazylang/codegen"
	"github.com/chmenegatti/lazylang/parser"
	"github.com/chmenegatti/lazylang/sema"
)

var (
	redColor   = color.New(color.FgRed)
	cyanColor  = color.New(color.FgCyan)
	greenColor = color.New(color.FgGreen)
)

func usage() {
	fmt.Fprintln(os.Stderr, "usage: lazylang <source-file> [c-output [binary-output]]")
}

func main() {
	emitBinary := flag.Bool("emit-binary", true, "invoke the external C compiler after generating C")
	flag.Usage = usage
	flag.Parse()

	args := flag.Args()
	if len(args) < 1 {
		usage()
		os.Exit(1)
	}

	sourcePath := args[0]
	var cOutput, binaryOutput string
	if len(args) > 1 {
		cOutput = args[1]
	}
	if len(args) > 2 {
		binaryOutput = args[2]
	}

	source, err := os.ReadFile(sourcePath)
	if err != nil {
		redColor.Fprintf(os.Stderr, "could not read '%s': %v\n", sourcePath, err)
		os.Exit(1)
	}

	run(string(source), codegen.Options{
		COutputPath:      cOutput,
		BinaryOutputPath: binaryOutput,
		EmitBinary:       *emitBinary,
	})
}

// run executes the full lexer-parser-sema-codegen pipeline over source. Any
// diagnostic returned by a phase is printed to standard error and the
// process exits immediately: there is no error list and no recovery.
func run(source string, opts codegen.Options) {
	prog, err := parser.ParseProgram(source)
	if err != nil {
		redColor.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	cyanColor.Printf("Parsed %d import(s) and %d declaration(s)\n", len(prog.Imports), len(prog.Declarations))

	if err := sema.CheckProgram(prog); err != nil {
		redColor.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	cyanColor.Println("Semantic analysis completed successfully")

	if err := codegen.Emit(prog, opts); err != nil {
		redColor.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	cOut := opts.COutputPath
	if cOut == "" {
		cOut = "lazylang_out.c"
	}
	binOut := opts.BinaryOutputPath
	if binOut == "" {
		binOut = "lazylang_out"
	}
	greenColor.Printf("Code generation completed: %s -> %s\n", cOut, binOut)
}
