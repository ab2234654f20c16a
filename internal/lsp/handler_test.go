package lsp_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"circuitir/internal/lsp"
)

const sampleProgram = `
fn f(a: field, b: field) -> field {
block entry(a: field, b: field):
    c = add a, b
    d = not c
    return d
}
`

func writeSample(t *testing.T, dir, name, source string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(source), 0o644))
	return path
}

func TestInitializeAdvertisesCapabilities(t *testing.T) {
	handler := lsp.NewHandler()

	result, err := handler.Initialize(&glsp.Context{}, &protocol.InitializeParams{})
	require.NoError(t, err)

	init, ok := result.(*protocol.InitializeResult)
	require.True(t, ok, "Initialize should return *protocol.InitializeResult")
	require.NotNil(t, init.Capabilities.TextDocumentSync)
	require.NotNil(t, init.Capabilities.SemanticTokensProvider)
	require.Equal(t, lsp.SemanticTokenTypes, init.Capabilities.SemanticTokensProvider.Legend.TokenTypes)
}

func TestTextDocumentSemanticTokensFull(t *testing.T) {
	handler := lsp.NewHandler()

	path := writeSample(t, t.TempDir(), "sample.cir", sampleProgram)
	uri := "file://" + filepath.ToSlash(path)

	ctx := &glsp.Context{}
	params := &protocol.SemanticTokensParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	}

	tokens, err := handler.TextDocumentSemanticTokensFull(ctx, params)
	require.NoError(t, err)
	require.NotNil(t, tokens)
	require.NotEmpty(t, tokens.Data)

	decoded, err := decodeSemanticTokens(tokens.Data)
	require.NoError(t, err)
	require.NotEmpty(t, decoded)

	tokenTypes := make(map[string]int)
	for _, token := range decoded {
		tokenTypes[token.Type]++
	}

	require.Greater(t, tokenTypes["keyword"], 0, "Should have keyword tokens for fn/block/mnemonics")
	require.Greater(t, tokenTypes["function"], 0, "Should have a function token for the function name")
	require.Greater(t, tokenTypes["namespace"], 0, "Should have a namespace token for the block label")
	require.Greater(t, tokenTypes["type"], 0, "Should have type tokens for field/bool/u32-style annotations")
	require.Greater(t, tokenTypes["variable"], 0, "Should have variable tokens for parameter and result names")

	t.Logf("Generated %d semantic tokens with types: %v", len(decoded), tokenTypes)
}

func TestTextDocumentSemanticTokensFullOnSyntaxError(t *testing.T) {
	handler := lsp.NewHandler()

	path := writeSample(t, t.TempDir(), "broken.cir", "fn f( { block entry(): return }")
	uri := "file://" + filepath.ToSlash(path)

	tokens, err := handler.TextDocumentSemanticTokensFull(&glsp.Context{}, &protocol.SemanticTokensParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	require.NoError(t, err, "a syntax error should not fail the request")
	require.NotNil(t, tokens)
}

func TestTextDocumentCompletionReturnsEmptyList(t *testing.T) {
	handler := lsp.NewHandler()

	result, err := handler.TextDocumentCompletion(&glsp.Context{}, &protocol.CompletionParams{})
	require.NoError(t, err)

	list, ok := result.(*protocol.CompletionList)
	require.True(t, ok)
	require.False(t, list.IsIncomplete)
	require.Empty(t, list.Items)
}

type DecodedToken struct {
	Index     int
	Line      uint32
	Char      uint32
	Length    uint32
	Type      string
	Modifiers []string
}

func decodeSemanticTokens(raw []uint32) ([]DecodedToken, error) {
	if len(raw)%5 != 0 {
		return nil, fmt.Errorf("raw token data length %d is not a multiple of 5", len(raw))
	}

	var (
		decoded []DecodedToken
		line    uint32
		char    uint32
	)

	for i := 0; i < len(raw); i += 5 {
		deltaLine := raw[i]
		deltaStart := raw[i+1]
		length := raw[i+2]
		tokenTypeIdx := raw[i+3]
		tokenModMask := raw[i+4]

		if deltaLine == 0 {
			char += deltaStart
		} else {
			line += deltaLine
			char = deltaStart
		}

		var modifiers []string
		for j, name := range lsp.SemanticTokenModifiers {
			if tokenModMask&(1<<j) != 0 {
				modifiers = append(modifiers, name)
			}
		}

		decoded = append(decoded, DecodedToken{
			Index:     i / 5,
			Line:      line + 1,
			Char:      char + 1,
			Length:    length,
			Type:      lsp.SemanticTokenTypes[tokenTypeIdx],
			Modifiers: modifiers,
		})
	}

	return decoded, nil
}
