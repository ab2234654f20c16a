package lsp

import (
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/alecthomas/participle/v2"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"circuitir/internal/diagnostics"
	"circuitir/internal/ssa"
	"circuitir/internal/textir"
)

// SemanticTokenTypes is the legend advertised to the client; indices here
// are what SemanticToken.TokenType refers to.
var SemanticTokenTypes = []string{
	"namespace",
	"type",
	"typeParameter",
	"function",
	"variable",
	"parameter",
	"property",
	"keyword",
	"number",
	"operator",
	"modifier",
}

// SemanticTokenModifiers is the legend advertised to the client for
// SemanticToken.TokenModifiers bitmasks.
var SemanticTokenModifiers = []string{
	"declaration",
	"definition",
	"readonly",
	"static",
	"deprecated",
	"abstract",
}

// Handler implements the LSP server handlers for .cir instruction-layer
// documents: parsing, lowering, and simplification diagnostics, over the
// same glsp wiring the teacher's own KansoHandler uses.
type Handler struct {
	mu      sync.RWMutex
	content map[string]string
	built   map[string]*textir.Built

	reporter *diagnostics.Reporter
}

// NewHandler creates and returns a new Handler instance.
func NewHandler() *Handler {
	return &Handler{
		content:  make(map[string]string),
		built:    make(map[string]*textir.Built),
		reporter: diagnostics.NewReporter(),
	}
}

// Initialize responds to the LSP client's initialize request and advertises
// the server's capabilities.
func (h *Handler) Initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	log.Println("LSP Initialize called")

	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: &protocol.TextDocumentSyncOptions{
				OpenClose: ptrBool(true),
				Change:    ptrSyncKind(protocol.TextDocumentSyncKindFull),
			},
			CompletionProvider: &protocol.CompletionOptions{
				ResolveProvider: ptrBool(false),
			},
			SemanticTokensProvider: &protocol.SemanticTokensOptions{
				Legend: protocol.SemanticTokensLegend{
					TokenTypes:     SemanticTokenTypes,
					TokenModifiers: SemanticTokenModifiers,
				},
				Full: ptrBool(true),
			},
		},
	}, nil
}

// Initialized is called after the client receives the server's
// capabilities and completes initialization.
func (h *Handler) Initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	log.Println("circuitir LSP Initialized")
	return nil
}

// Shutdown handles the LSP shutdown request.
func (h *Handler) Shutdown(ctx *glsp.Context) error {
	log.Println("circuitir LSP Shutdown")
	return nil
}

// SetTrace handles the $/setTrace notification. No-op: this server does
// not emit trace logs.
func (h *Handler) SetTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	return nil
}

// TextDocumentDidOpen handles file open notifications from the editor.
func (h *Handler) TextDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	log.Printf("Opened file: %s\n", params.TextDocument.URI)
	return h.refreshAndPublish(ctx, params.TextDocument.URI)
}

// TextDocumentDidClose handles file close notifications from the editor.
func (h *Handler) TextDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	log.Printf("Closed file: %s\n", params.TextDocument.URI)

	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return fmt.Errorf("failed to convert URI %s: %w", params.TextDocument.URI, err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.content, path)
	delete(h.built, path)

	return nil
}

// TextDocumentDidChange handles file change notifications from the editor.
func (h *Handler) TextDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	log.Printf("Changed file: %s\n", params.TextDocument.URI)
	return h.refreshAndPublish(ctx, params.TextDocument.URI)
}

// TextDocumentCompletion handles completion requests (currently returns an
// empty list; the instruction mnemonics are a small enough surface that
// editors can reasonably rely on semantic highlighting alone for now).
func (h *Handler) TextDocumentCompletion(ctx *glsp.Context, params *protocol.CompletionParams) (any, error) {
	return &protocol.CompletionList{
		IsIncomplete: false,
		Items:        []protocol.CompletionItem{},
	}, nil
}

// TextDocumentSemanticTokensFull handles semantic token requests for the
// entire document.
func (h *Handler) TextDocumentSemanticTokensFull(ctx *glsp.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil, fmt.Errorf("failed to convert URI %s: %w", params.TextDocument.URI, err)
	}

	h.mu.RLock()
	source, ok := h.content[path]
	h.mu.RUnlock()
	if !ok {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read file %s: %w", path, err)
		}
		source = string(raw)
	}

	tokens, err := collectSemanticTokens(path, source)
	if err != nil {
		return &protocol.SemanticTokens{Data: nil}, nil
	}

	var data []uint32
	var prevLine, prevStart uint32
	for _, token := range tokens {
		deltaLine := token.Line - prevLine
		var deltaStart uint32
		if deltaLine == 0 {
			deltaStart = token.StartChar - prevStart
		} else {
			deltaStart = token.StartChar
		}

		data = append(data, deltaLine, deltaStart, token.Length, uint32(token.TokenType), uint32(token.TokenModifiers))

		prevLine = token.Line
		prevStart = token.StartChar
	}

	return &protocol.SemanticTokens{Data: data}, nil
}

// refreshAndPublish reparses and rebuilds the document at rawURI, caching
// the result and publishing whatever diagnostics fall out: a parse error,
// a lowering error, or the simplification findings over the built graph.
func (h *Handler) refreshAndPublish(ctx *glsp.Context, rawURI protocol.DocumentUri) error {
	path, err := uriToPath(rawURI)
	if err != nil {
		return fmt.Errorf("failed to convert URI %s: %w", rawURI, err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", path, err)
	}
	source := string(content)

	prog, err := textir.ParseString(path, source)
	if err != nil {
		sendDiagnosticNotification(ctx, rawURI, []protocol.Diagnostic{parseErrorDiagnostic(err)})
		return nil
	}

	built, err := textir.BuildFile(prog, path)
	if err != nil {
		sendDiagnosticNotification(ctx, rawURI, []protocol.Diagnostic{convertParseError(1, 1, err.Error())})
		return nil
	}

	h.mu.Lock()
	h.content[path] = source
	h.built[path] = built
	h.mu.Unlock()

	sendDiagnosticNotification(ctx, rawURI, h.simplifyDiagnostics(built))
	return nil
}

// simplifyDiagnostics runs Simplify over every instruction in every block of
// built and converts the non-trivial outcomes into LSP diagnostics, located
// by the source position BuildFile recorded for that instruction.
func (h *Handler) simplifyDiagnostics(built *textir.Built) []protocol.Diagnostic {
	var out []protocol.Diagnostic

	for _, blockID := range built.Blocks {
		block := built.Graph.Block(blockID)
		for idx, instr := range block.Instructions {
			result := ssa.Simplify(instr, built.Graph, blockID, block, nil, nil)
			diag, ok := diagnostics.SimplifyDiagnostic(result, nil)
			if !ok {
				continue
			}

			line := 0
			if pos, ok := built.Positions[textir.InstrKey{Block: blockID, Index: idx}]; ok {
				line = int(pos.Line)
			}
			out = append(out, convertSimplifyDiagnostic(diag, line))
		}
	}

	return out
}

// parseErrorDiagnostic converts a textir.ParseString error into an LSP
// diagnostic, using the real position when the error is a participle.Error
// and falling back to line 1 column 1 otherwise.
func parseErrorDiagnostic(err error) protocol.Diagnostic {
	if pe, ok := err.(participle.Error); ok {
		pos := pe.Position()
		return convertParseError(pos.Line, pos.Column, pe.Message())
	}
	return convertParseError(1, 1, err.Error())
}

// uriToPath converts a file:// URI to a platform-local file path.
func uriToPath(rawURI string) (string, error) {
	u, err := url.Parse(rawURI)
	if err != nil {
		return "", fmt.Errorf("invalid URI %s: %w", rawURI, err)
	}

	path := u.Path

	if runtime.GOOS == "windows" && strings.HasPrefix(path, "/") && len(path) > 3 && path[2] == ':' {
		path = path[1:]
	}

	return filepath.FromSlash(path), nil
}

func sendDiagnosticNotification(ctx *glsp.Context, uri protocol.URI, diags []protocol.Diagnostic) {
	diagnosticsJSON, err := json.MarshalIndent(diags, "", "  ")
	if err != nil {
		fmt.Println("Failed to marshal diagnostics:", err)
		return
	}

	log.Println("Sending diagnostics:", string(diagnosticsJSON))

	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diags,
	})
}

func ptrBool(b bool) *bool {
	return &b
}

func ptrSyncKind(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
