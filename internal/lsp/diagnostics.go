package lsp

import (
	protocol "github.com/tliron/glsp/protocol_3_16"

	"circuitir/internal/diagnostics"
)

// convertParseError turns a textir syntax error into a single diagnostic
// covering the named line, since participle reports a position but not a
// span.
func convertParseError(line, column int, message string) protocol.Diagnostic {
	return protocol.Diagnostic{
		Range: protocol.Range{
			Start: protocol.Position{
				Line:      uint32(line - 1),
				Character: uint32(column - 1),
			},
			End: protocol.Position{
				Line:      uint32(line - 1),
				Character: uint32(column + 5),
			},
		},
		Severity: ptrSeverity(protocol.DiagnosticSeverityError),
		Source:   ptrString("circuitir-parser"),
		Message:  message,
	}
}

// convertSimplifyDiagnostic renders a diagnostics.Diagnostic (built from a
// Simplify/classification outcome) as an LSP diagnostic at the given
// 1-based source line, or at line 1 column 1 if pos is unknown.
func convertSimplifyDiagnostic(d diagnostics.Diagnostic, line int) protocol.Diagnostic {
	if line <= 0 {
		line = 1
	}
	var severity protocol.DiagnosticSeverity
	switch d.Level {
	case diagnostics.Error:
		severity = protocol.DiagnosticSeverityError
	case diagnostics.Warn:
		severity = protocol.DiagnosticSeverityWarning
	default:
		severity = protocol.DiagnosticSeverityInformation
	}

	return protocol.Diagnostic{
		Range: protocol.Range{
			Start: protocol.Position{Line: uint32(line - 1), Character: 0},
			End:   protocol.Position{Line: uint32(line - 1), Character: 80},
		},
		Severity: ptrSeverity(severity),
		Source:   ptrString("circuitir-simplify"),
		Message:  "[" + d.Code + "] " + d.Message,
	}
}

func ptrSeverity(s protocol.DiagnosticSeverity) *protocol.DiagnosticSeverity { return &s }

func ptrString(s string) *string { return &s }
