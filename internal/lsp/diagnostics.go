package lsp

import (
	"path/filepath"
	"strings"

	protocol "github.com/tliron/glsp/protocol_3_16"

	werrors "wiz/internal/errors"
)

// ConvertError turns any front-end error into a diagnostic for the document
// at path. Errors located in another file are pinned to the top of the
// document and name that file.
func ConvertError(path string, err error) protocol.Diagnostic {
	compilerErr := werrors.FromError(err)
	pos := compilerErr.Position

	message := compilerErr.Message
	for _, suggestion := range compilerErr.Suggestions {
		message += "\n" + suggestion.Message
	}
	for _, note := range compilerErr.Notes {
		message += "\nnote: " + note
	}
	if compilerErr.HelpText != "" {
		message += "\nhelp: " + compilerErr.HelpText
	}

	var rng protocol.Range
	if pos.Line > 0 && sameFile(pos.Filename, path) {
		start := protocol.Position{
			Line:      uint32(pos.Line - 1),
			Character: uint32(pos.Column - 1),
		}
		rng = protocol.Range{
			Start: start,
			End: protocol.Position{
				Line:      start.Line,
				Character: start.Character + uint32(max(1, compilerErr.Length)),
			},
		}
	} else if pos.Filename != "" && !sameFile(pos.Filename, path) {
		message = pos.Filename + ": " + message
	}

	return protocol.Diagnostic{
		Range:    rng,
		Severity: ptrSeverity(severityOf(compilerErr.Level)),
		Code:     &protocol.IntegerOrString{Value: compilerErr.Code},
		Source:   ptrString("wiz"),
		Message:  strings.TrimSpace(message),
	}
}

func severityOf(level werrors.ErrorLevel) protocol.DiagnosticSeverity {
	switch level {
	case werrors.Warning:
		return protocol.DiagnosticSeverityWarning
	case werrors.Note, werrors.Help:
		return protocol.DiagnosticSeverityInformation
	default:
		return protocol.DiagnosticSeverityError
	}
}

func sameFile(a, b string) bool {
	return filepath.Clean(a) == filepath.Clean(b)
}

func ptrSeverity(s protocol.DiagnosticSeverity) *protocol.DiagnosticSeverity {
	return &s
}

func ptrString(s string) *string {
	return &s
}
