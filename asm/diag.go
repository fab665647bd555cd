package asm

import (
	"fmt"
	"strings"
)

// DiagnosticKind classifies an assembly error for reporting.
type DiagnosticKind int

//go:generate go tool stringer -linecomment -type=DiagnosticKind
const (
	DIAG_LEXICAL         = DiagnosticKind(0) // Unexpected token
	DIAG_SYNTAX          = DiagnosticKind(1) // Syntax error
	DIAG_LABEL_DUPLICATE = DiagnosticKind(2) // Duplicate label
	DIAG_LABEL_MISSING   = DiagnosticKind(3) // Unknown label
	DIAG_REGISTER_ALIAS  = DiagnosticKind(4) // Invalid register alias
	DIAG_FIELD_OVERFLOW  = DiagnosticKind(5) // Field overflow
	DIAG_INTERNAL        = DiagnosticKind(6) // Internal error
	DIAG_OTHER           = DiagnosticKind(7) // Error
)

// Positioned is an error located in the source text.
type Positioned interface {
	error
	Position() (line, column int)
	Kind() DiagnosticKind
}

// Diagnostic is a single reportable error. Line is zero for errors not
// located in the source.
type Diagnostic struct {
	Line    int
	Column  int
	Kind    DiagnosticKind
	Message string
}

// Diagnostics flattens an error, including error lists, into diagnostics.
func Diagnostics(err error) (diags []Diagnostic) {
	if err == nil {
		return
	}

	diags = collect(err, diags)
	if len(diags) == 0 {
		diags = []Diagnostic{{Kind: DIAG_OTHER, Message: err.Error()}}
	}

	return
}

func collect(err error, diags []Diagnostic) []Diagnostic {
	switch e := err.(type) {
	case Positioned:
		line, column := e.Position()
		diags = append(diags, Diagnostic{
			Line:    line,
			Column:  column,
			Kind:    e.Kind(),
			Message: e.Error(),
		})
	case interface{ Unwrap() []error }:
		for _, inner := range e.Unwrap() {
			diags = collect(inner, diags)
		}
	case interface{ Unwrap() error }:
		diags = collect(e.Unwrap(), diags)
	}

	return diags
}

// Marker renders the diagnostic's source line with a caret under its
// column.
func (diag Diagnostic) Marker(src string) string {
	lines := strings.Split(src, "\n")
	if diag.Line < 1 || diag.Line > len(lines) {
		return diag.Message
	}

	prefix := fmt.Sprintf("line %d> ", diag.Line)
	text := strings.TrimRight(lines[diag.Line-1], "\r")
	padding := strings.Repeat(" ", max(diag.Column-1, 0)+len(prefix))

	return prefix + text + "\n" + padding + "^"
}

// Report renders every diagnostic of an error against the source, grouped
// by kind, with the message under each marker.
func Report(src string, err error) string {
	diags := Diagnostics(err)
	if len(diags) == 0 {
		return ""
	}

	var kinds []DiagnosticKind
	groups := map[DiagnosticKind][]Diagnostic{}
	for _, diag := range diags {
		if _, ok := groups[diag.Kind]; !ok {
			kinds = append(kinds, diag.Kind)
		}
		groups[diag.Kind] = append(groups[diag.Kind], diag)
	}

	var text strings.Builder
	text.WriteString(f("Assembler failed."))
	text.WriteString("\n")

	for _, kind := range kinds {
		group := groups[kind]
		title := kind.String()
		if len(group) > 1 {
			title += "s"
		}

		var description []string
		for _, diag := range group {
			entry := diag.Marker(src)
			if diag.Line != 0 {
				entry += "\n" + diag.Message
			}
			description = append(description, entry)
		}

		text.WriteString(title + ":\n")
		text.WriteString("    " + strings.ReplaceAll(strings.Join(description, "\n"), "\n", "\n    "))
		text.WriteString("\n")
	}

	return text.String()
}
