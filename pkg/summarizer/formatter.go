// Package summarizer describes a finished postprocessing run for people
// (Markdown) or scripts (YAML).
package summarizer

import (
	"path/filepath"
	"strings"
)

// Formatter renders a Summary.
type Formatter interface {
	Format(summary *Summary) string
}

// FormatFunc lets a plain function act as a Formatter.
type FormatFunc func(summary *Summary) string

func (f FormatFunc) Format(summary *Summary) string { return f(summary) }

// FormatterFor picks a formatter from the file extension: YAML for .yaml
// and .yml, Markdown otherwise. opts only affect Markdown.
func FormatterFor(path string, opts ...MarkdownOption) Formatter {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return NewYAMLFormatter()
	default:
		return NewMarkdownFormatter(opts...)
	}
}
