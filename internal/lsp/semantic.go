package lsp

import (
	"strings"

	"circuitir/internal/textir"
)

// SemanticToken is one entry in the LSP semantic-tokens-full response
// (delta-encoded by the handler before it goes over the wire). Line and
// StartChar are 0-based, matching the protocol.
type SemanticToken struct {
	Line           uint32
	StartChar      uint32
	Length         uint32
	TokenType      int // index into SemanticTokenTypes
	TokenModifiers int // bitmask over SemanticTokenModifiers
}

var mnemonics = map[string]bool{
	"add": true, "sub": true, "mul": true, "div": true, "mod": true,
	"eq": true, "lt": true, "and": true, "or": true, "xor": true, "shl": true, "shr": true,
	"not": true, "cast": true, "to": true, "truncate": true, "bits": true, "max_bit_size": true,
	"constrain": true, "range_check": true, "array_get": true, "array_set": true,
	"make_array": true, "enable_side_effects_if": true, "call": true,
	"jmp": true, "jmpif": true, "then": true, "else": true, "return": true,
}

var scalarTypes = map[string]bool{"field": true, "bool": true}

// collectSemanticTokens re-tokenizes source with the textir lexer and
// classifies each token into the LSP semantic token legend. This is a
// lexical classification, not an AST walk: the line-oriented instruction
// syntax is flat enough that token identity (keyword vs type vs value
// name) is already unambiguous without consulting the parse tree.
func collectSemanticTokens(filename, source string) ([]SemanticToken, error) {
	lex, err := textir.Lexer.Lex(filename, strings.NewReader(source))
	if err != nil {
		return nil, err
	}

	var tokens []SemanticToken
	sawFn, sawBlock := false, false
	for {
		tok, err := lex.Next()
		if err != nil {
			return nil, err
		}
		if tok.EOF() {
			break
		}
		if strings.TrimSpace(tok.Value) == "" {
			continue
		}

		value := tok.Value
		var tokenType string
		switch {
		case value == "fn":
			sawFn = true
			tokenType = "keyword"
		case value == "block":
			sawBlock = true
			tokenType = "keyword"
		case sawFn:
			sawFn = false
			tokenType = "function"
		case sawBlock:
			sawBlock = false
			tokenType = "namespace"
		case mnemonics[value]:
			tokenType = "keyword"
		case scalarTypes[value], isSizedType(value):
			tokenType = "type"
		case isInteger(value):
			tokenType = "number"
		case isIdent(value):
			tokenType = "variable"
		default:
			continue
		}

		tokens = append(tokens, SemanticToken{
			Line:      uint32(tok.Pos.Line - 1),
			StartChar: uint32(tok.Pos.Column - 1),
			Length:    uint32(len(value)),
			TokenType: indexOf(tokenType, SemanticTokenTypes),
		})
	}
	return tokens, nil
}

func isSizedType(s string) bool {
	if len(s) < 2 || (s[0] != 'u' && s[0] != 'i') {
		return false
	}
	for _, r := range s[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	r := rune(s[0])
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isInteger(s string) bool {
	if s == "" || s[0] < '0' || s[0] > '9' {
		return false
	}
	for _, r := range s {
		if (r < '0' || r > '9') && r != 'x' && !(r >= 'a' && r <= 'f') && !(r >= 'A' && r <= 'F') {
			return false
		}
	}
	return true
}

// indexOf returns the index of target in list, or -1 if not found.
func indexOf(target string, list []string) int {
	for i, v := range list {
		if v == target {
			return i
		}
	}
	return -1
}
