package errors

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"wiz/internal/ast"
)

// ErrorLevel represents the severity of an error
type ErrorLevel string

const (
	Error   ErrorLevel = "error"
	Warning ErrorLevel = "warning"
	Note    ErrorLevel = "note"
	Help    ErrorLevel = "help"
)

// CompilerError represents a structured error with suggestions and context
type CompilerError struct {
	Level       ErrorLevel
	Code        string       // Error code like E0110
	Message     string       // Primary error message
	Position    ast.Position // Location in source, including the file name
	Length      int          // Length of the problematic region
	Suggestions []Suggestion // Suggested fixes
	Notes       []string     // Additional context notes
	HelpText    string       // Help text for the error
}

// Suggestion represents a suggested fix
type Suggestion struct {
	Message     string
	Replacement string
}

// ErrorReporter formats errors against the source text of every file it
// has been given.
type ErrorReporter struct {
	sources map[string][]string
}

// NewErrorReporter creates a reporter with no sources registered.
func NewErrorReporter() *ErrorReporter {
	return &ErrorReporter{sources: make(map[string][]string)}
}

// AddSource registers the text of a file so errors in it show context.
func (er *ErrorReporter) AddSource(filename, source string) {
	er.sources[filename] = strings.Split(source, "\n")
}

// Format converts err into a CompilerError and formats it.
func (er *ErrorReporter) Format(err error) string {
	return er.FormatError(FromError(err))
}

// FormatError formats a compiler error with Rust-like styling and suggestions
func (er *ErrorReporter) FormatError(err CompilerError) string {
	var result strings.Builder

	levelColor := er.getLevelColor(err.Level)
	bold := color.New(color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	// Header: error[E0110]: message
	if err.Code != "" {
		result.WriteString(fmt.Sprintf("%s[%s]: %s\n",
			levelColor(string(err.Level)), err.Code, err.Message))
	} else {
		result.WriteString(fmt.Sprintf("%s: %s\n",
			levelColor(string(err.Level)), err.Message))
	}

	if err.Position.Line == 0 {
		// whole-file errors, e.g. an unreadable import, have no line
		if err.Position.Filename != "" {
			result.WriteString(fmt.Sprintf("%s %s\n", dim("-->"), err.Position.Filename))
		}
		er.writeTrailer(&result, err, "")
		return result.String()
	}

	lines := er.sources[err.Position.Filename]
	lineNumberWidth := er.getLineNumberWidth(err.Position.Line)
	indent := strings.Repeat(" ", lineNumberWidth)

	// Location line: --> filename:line:column
	result.WriteString(fmt.Sprintf("%s %s %s:%d:%d\n",
		indent, dim("-->"), err.Position.Filename, err.Position.Line, err.Position.Column))

	if len(lines) > 0 {
		result.WriteString(fmt.Sprintf("%s %s\n", indent, dim("│")))

		// Context line before, if available
		if err.Position.Line > 1 && err.Position.Line-1 < len(lines) {
			result.WriteString(fmt.Sprintf("%s %s %s\n",
				dim(fmt.Sprintf("%*d", lineNumberWidth, err.Position.Line-1)),
				dim("│"),
				lines[err.Position.Line-2]))
		}

		if err.Position.Line <= len(lines) {
			result.WriteString(fmt.Sprintf("%s %s %s\n",
				bold(fmt.Sprintf("%*d", lineNumberWidth, err.Position.Line)),
				dim("│"),
				lines[err.Position.Line-1]))

			marker := er.createMarker(err.Position.Column, err.Length, err.Level)
			result.WriteString(fmt.Sprintf("%s %s %s\n",
				indent, dim("│"), marker))
		}

		// Context line after, if available
		if err.Position.Line < len(lines) {
			result.WriteString(fmt.Sprintf("%s %s %s\n",
				dim(fmt.Sprintf("%*d", lineNumberWidth, err.Position.Line+1)),
				dim("│"),
				lines[err.Position.Line]))
		}
	}

	er.writeTrailer(&result, err, indent)
	return result.String()
}

func (er *ErrorReporter) writeTrailer(result *strings.Builder, err CompilerError, indent string) {
	dim := color.New(color.Faint).SprintFunc()

	if len(err.Suggestions) > 0 {
		result.WriteString(fmt.Sprintf("%s %s\n", indent, dim("│")))
		suggestionColor := color.New(color.FgCyan).SprintFunc()
		for i, suggestion := range err.Suggestions {
			if i == 0 {
				result.WriteString(fmt.Sprintf("%s %s %s: %s\n",
					indent, suggestionColor("help"), suggestionColor("try"), suggestion.Message))
			} else {
				result.WriteString(fmt.Sprintf("%s %s %s\n",
					indent, suggestionColor("    "), suggestion.Message))
			}

			if suggestion.Replacement != "" {
				result.WriteString(fmt.Sprintf("%s %s %s\n",
					indent, suggestionColor("│"), suggestionColor(suggestion.Replacement)))
			}
		}
	}

	noteColor := color.New(color.FgBlue).SprintFunc()
	for _, note := range err.Notes {
		result.WriteString(fmt.Sprintf("%s %s %s %s\n",
			indent, dim("│"), noteColor("note:"), note))
	}

	if err.HelpText != "" {
		helpColor := color.New(color.FgGreen).SprintFunc()
		result.WriteString(fmt.Sprintf("%s %s %s %s\n",
			indent, dim("│"), helpColor("help:"), err.HelpText))
	}

	result.WriteString("\n")
}

// getLevelColor returns the appropriate color function for an error level
func (er *ErrorReporter) getLevelColor(level ErrorLevel) func(...interface{}) string {
	switch level {
	case Warning:
		return color.New(color.FgYellow, color.Bold).SprintFunc()
	case Note:
		return color.New(color.FgBlue, color.Bold).SprintFunc()
	case Help:
		return color.New(color.FgGreen, color.Bold).SprintFunc()
	default:
		return color.New(color.FgRed, color.Bold).SprintFunc()
	}
}

// createMarker creates the underline marker for errors
func (er *ErrorReporter) createMarker(column, length int, level ErrorLevel) string {
	if length <= 0 {
		length = 1
	}

	spaces := strings.Repeat(" ", max(0, column-1))

	markerColor := color.New(color.FgRed, color.Bold).SprintFunc()
	if level == Warning {
		markerColor = color.New(color.FgYellow, color.Bold).SprintFunc()
	}

	return spaces + markerColor(strings.Repeat("^", length))
}

// getLineNumberWidth calculates the width needed for line numbers
func (er *ErrorReporter) getLineNumberWidth(line int) int {
	width := len(fmt.Sprintf("%d", line))
	if width < 3 {
		width = 3 // minimum width for visual alignment
	}
	return width
}
