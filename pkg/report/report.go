// Package report renders review results for people and machines.
//
// Text output follows the layout of the classic sqlcheck tool: a banner per
// input, every offending statement followed by its findings, and a summary
// block at the end. JSON and YAML carry the same data as structured
// documents.
package report

import (
	"io"
	"strings"

	"github.com/pkg/errors"

	"github.com/nsxbet/sqlcheck/pkg/config"
	"github.com/nsxbet/sqlcheck/pkg/reviewer"
	"github.com/nsxbet/sqlcheck/pkg/types"
)

// Format selects the renderer.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat converts a format name into a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", errors.Wrapf(config.ErrInvalidOption, "output: unsupported format %q (want text, json or yaml)", s)
	}
}

// ColorMode controls styling of the text renderer.
type ColorMode string

const (
	// ColorAuto styles output only when the writer is a color terminal.
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// ParseColorMode converts a color mode name into a ColorMode.
func ParseColorMode(s string) (ColorMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return ColorAuto, nil
	case "always", "true", "on":
		return ColorAlways, nil
	case "never", "false", "off":
		return ColorNever, nil
	default:
		return "", errors.Wrapf(config.ErrInvalidOption, "color: unsupported mode %q (want auto, always or never)", s)
	}
}

// Source is the review result of one input.
type Source struct {
	// Name identifies the input, a file path or "stdin".
	Name   string
	Result *reviewer.ReviewResult
}

// Options configure rendering.
type Options struct {
	Format Format
	// Verbose adds each rule's full message.
	Verbose bool
	Color   ColorMode
	// MinimumSeverity is echoed in the text banner.
	MinimumSeverity types.Severity
}

// Write renders sources to w.
func Write(w io.Writer, sources []Source, opts Options) error {
	switch opts.Format {
	case FormatText, "":
		return writeText(w, sources, opts)
	case FormatJSON:
		return writeJSON(w, sources, opts)
	case FormatYAML:
		return writeYAML(w, sources, opts)
	default:
		return errors.Wrapf(config.ErrInvalidOption, "output: unsupported format %q", string(opts.Format))
	}
}

// Total merges the summaries of all sources.
func Total(sources []Source) reviewer.Summary {
	var total reviewer.Summary
	for _, src := range sources {
		if src.Result != nil {
			total.Add(src.Result.Summary)
		}
	}
	return total
}
