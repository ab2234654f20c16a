// SPDX-License-Identifier: Apache-2.0
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/fatih/color"

	"circuitir/internal/diagnostics"
	"circuitir/internal/ssa"
	"circuitir/internal/textir"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: circuitir <file.cir>")
		os.Exit(1)
	}

	path := os.Args[1]

	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Printf("failed to read file: %s\n", err)
		os.Exit(1)
	}

	prog, err := textir.ParseString(path, string(source))
	if err != nil {
		reportParseError(string(source), err)
		os.Exit(1)
	}

	built, err := textir.BuildFile(prog, path)
	if err != nil {
		color.Red("❌ %s", err)
		os.Exit(1)
	}

	reporter := diagnostics.NewReporter()
	for _, blockID := range built.Blocks {
		block := built.Graph.Block(blockID)
		for _, instr := range block.Instructions {
			result := ssa.Simplify(instr, built.Graph, blockID, block, nil, nil)
			if diag, ok := diagnostics.SimplifyDiagnostic(result, nil); ok {
				fmt.Println(reporter.Format(diag))
			}
		}
	}

	fmt.Println(textir.Print(built))

	color.Green("✅ Successfully processed %s", path)
}

// reportParseError prints a friendly caret-style parse error message.
func reportParseError(src string, err error) {
	pe, ok := err.(participle.Error)
	if !ok {
		color.Red("Unexpected error: %s", err)
		return
	}

	pos := pe.Position()
	lines := strings.Split(src, "\n")
	if pos.Line <= 0 || pos.Line > len(lines) {
		color.Red("Syntax error at unknown location: %s", err)
		return
	}

	line := lines[pos.Line-1]
	caret := strings.Repeat(" ", pos.Column-1) + "^"

	color.Red("❌ Syntax error in %s at line %d, column %d:", pos.Filename, pos.Line, pos.Column)
	fmt.Println(line)
	color.HiRed(caret)
	fmt.Printf("→ %s\n", pe.Message())
}
