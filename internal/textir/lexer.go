// Package textir is a small textual assembly syntax for the instruction
// layer: one function body per file, blocks with parameters, one
// instruction per line, closed by a terminator. It exists purely as a
// human-writable/readable surface for exercising internal/ssa + internal/dfg
// — the instruction layer itself has no concrete syntax of its own.
package textir

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// Lexer tokenizes textir source. Modeled directly on the teacher's stateful
// lexer: comments, identifiers, integers, operators and punctuation, in the
// same rule-ordering style (identifiers before keywords, since this grammar
// treats "add"/"jmp"/etc. as identifiers disambiguated by the parser rather
// than as reserved words).
var Lexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{"Comment", `//[^\n]*`, nil},
		{"Ident", `[a-zA-Z_][a-zA-Z0-9_]*`, nil},
		{"Integer", `0x[0-9a-fA-F]+|[0-9]+`, nil},
		{"Operator", `(->|=>|==|!=|<=|>=|=)`, nil},
		{"Punctuation", `[{}()\[\]:,.%!]`, nil},
		{"Whitespace", `[ \t\r\n]+`, nil},
	},
})
