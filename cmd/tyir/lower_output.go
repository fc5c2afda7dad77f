package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"tyir/internal/diagfmt"
	"tyir/internal/driver"
	"tyir/internal/hir"
	"tyir/internal/source"
	"tyir/internal/version"
)

type lowerFormat string

const (
	lowerFormatPretty lowerFormat = "pretty"
	lowerFormatDebug  lowerFormat = "debug"
	lowerFormatJSON   lowerFormat = "json"
	lowerFormatYAML   lowerFormat = "yaml"
)

func parseLowerFormat(s string) (lowerFormat, error) {
	switch f := lowerFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case lowerFormatPretty, lowerFormatDebug, lowerFormatJSON, lowerFormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format %q (expected pretty|debug|json|yaml)", s)
	}
}

// structured formats carry diagnostics inside the document
func (f lowerFormat) structured() bool {
	return f == lowerFormatJSON || f == lowerFormatYAML
}

type loweredDoc struct {
	Schema      uint16           `json:"schema" yaml:"schema"`
	ToolVersion string           `json:"tool_version" yaml:"tool_version"`
	Files       []loweredFileDoc `json:"files" yaml:"files"`
}

type loweredFileDoc struct {
	Path        string                   `json:"path" yaml:"path"`
	Cached      bool                     `json:"cached,omitempty" yaml:"cached,omitempty"`
	Error       string                   `json:"error,omitempty" yaml:"error,omitempty"`
	Aliases     []aliasDoc               `json:"aliases" yaml:"aliases"`
	Diagnostics []diagfmt.DiagnosticJSON `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
}

type aliasDoc struct {
	Name    string       `json:"name" yaml:"name"`
	Span    string       `json:"span" yaml:"span"`
	Display string       `json:"display" yaml:"display"`
	Type    hir.TypeNode `json:"type" yaml:"type"`
}

func buildLoweredDoc(results []driver.FileResult, opts diagfmt.JSONOpts) loweredDoc {
	doc := loweredDoc{
		Schema:      hir.SchemaVersion,
		ToolVersion: version.Version,
		Files:       make([]loweredFileDoc, 0, len(results)),
	}
	for _, r := range results {
		fd := loweredFileDoc{Path: r.Path, Aliases: []aliasDoc{}}
		if r.Err != nil {
			fd.Error = r.Err.Error()
			doc.Files = append(doc.Files, fd)
			continue
		}
		res := r.Result
		fd.Cached = res.Cached
		for _, a := range res.Aliases {
			fd.Aliases = append(fd.Aliases, aliasDoc{
				Name:    a.Name,
				Span:    spanText(res.FileSet, a.Span),
				Display: hir.Display(a.Type),
				Type:    hir.Encode(a.Type),
			})
		}
		if res.Bag.Len() > 0 {
			fd.Diagnostics = diagfmt.BuildDiagnosticsOutput(res.Bag, res.FileSet, opts).Diagnostics
		}
		doc.Files = append(doc.Files, fd)
	}
	return doc
}

func spanText(fs *source.FileSet, span source.Span) string {
	if fs == nil {
		return span.String()
	}
	start, end := fs.Resolve(span)
	return fmt.Sprintf("%d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
}

// writeLowered renders results; files that failed to load are skipped by the
// text formats, their errors are reported separately.
func writeLowered(w io.Writer, format lowerFormat, results []driver.FileResult) error {
	switch format {
	case lowerFormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(buildLoweredDoc(results, diagfmt.JSONOpts{IncludePositions: true, IncludeNotes: true}))
	case lowerFormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(buildLoweredDoc(results, diagfmt.JSONOpts{IncludePositions: true, IncludeNotes: true})); err != nil {
			return err
		}
		return enc.Close()
	}

	multi := len(results) > 1
	first := true
	for _, r := range results {
		if r.Result == nil {
			continue
		}
		if multi {
			if !first {
				fmt.Fprintln(w)
			}
			header := "// " + r.Path
			if r.Result.Cached {
				header += " (cached)"
			}
			fmt.Fprintln(w, header)
		}
		first = false
		for _, a := range r.Result.Aliases {
			var err error
			if format == lowerFormatDebug {
				_, err = fmt.Fprintf(w, "%s: %s\n", a.Name, hir.Debug(a.Type))
			} else {
				_, err = fmt.Fprintf(w, "type %s = %s;\n", a.Name, hir.Display(a.Type))
			}
			if err != nil {
				return err
			}
		}
	}
	return nil
}
