package asm

import "fmt"

// Diagnostic is a single user-facing error, carrying the offending source
// line's 1-based number and text.
type Diagnostic struct {
	LineNumber int
	LineText   string
	Message    string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("line %d: %s: %s", d.LineNumber, d.Message, d.LineText)
}

func diagFor(line SourceLine, message string) Diagnostic {
	return Diagnostic{LineNumber: line.LineNumber, LineText: line.RawText, Message: message}
}

// Label is a named address bound by a "name:" line.
type Label struct {
	Name    string
	Address uint32
	Line    int
}

func labelsToExprLabels(labels map[string]Label) Labels {
	out := make(Labels, len(labels))
	for name, l := range labels {
		out[name] = l.Address
	}
	return out
}
