package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"dol/internal/diag"
	"dol/internal/driver"
	"dol/internal/source"
)

type palette struct {
	err, warn, info, note, code, gutter *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan),
		note:   color.New(color.FgCyan, color.Bold),
		code:   color.New(color.Bold),
		gutter: color.New(color.FgBlue),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.note, p.code, p.gutter} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики одного файла в человекочитаемый вид.
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с ^ под колонкой, затем Notes.
// sf may be nil for virtual input; the path is then "<input>".
func Pretty(w io.Writer, sf *source.File, fs *source.FileSet, diags []diag.Diagnostic, opts PrettyOpts) {
	pretty(w, displayPath(sf, fs, opts.PathMode), sf, diags, opts)
}

// PrettyPath prints diagnostics for a file that has no loaded content, such
// as one that failed to load. No context lines are shown.
func PrettyPath(w io.Writer, path string, diags []diag.Diagnostic, opts PrettyOpts) {
	pretty(w, path, nil, diags, opts)
}

// PrettyResult prints the merged diagnostics of one checked file.
func PrettyResult(w io.Writer, r driver.FileResult, fs *source.FileSet, opts PrettyOpts) {
	diags := r.Result.Diagnostics()
	if r.Err != nil || fs == nil {
		PrettyPath(w, r.Path, diags, opts)
		return
	}
	Pretty(w, fs.Get(r.FileID), fs, diags, opts)
}

func pretty(w io.Writer, path string, sf *source.File, diags []diag.Diagnostic, opts PrettyOpts) {
	pal := newPalette(opts.Color)
	for _, d := range diags {
		if d.Position.IsValid() {
			fmt.Fprintf(w, "%s:%s: ", path, d.Position)
		} else {
			fmt.Fprintf(w, "%s: ", path)
		}
		fmt.Fprintf(w, "%s %s: %s\n", pal.severity(d.Severity).Sprint(d.Severity.String()), pal.code.Sprint(d.Code.ID()), d.Message)
		writeContext(w, sf, d.Position, opts.Context, pal)

		if !opts.ShowNotes {
			continue
		}
		for _, n := range d.Notes {
			fmt.Fprintf(w, "  %s %s:%s: %s\n", pal.note.Sprint("note:"), path, n.Position, n.Msg)
			writeContext(w, sf, n.Position, 0, pal)
		}
	}
}

func writeContext(w io.Writer, sf *source.File, pos source.Position, context int8, pal palette) {
	if sf == nil || !pos.IsValid() {
		return
	}
	span := uint32(max(context, 0)) // #nosec G115 -- non-negative int8
	first := pos.Line - min(span, pos.Line-1)
	last := pos.Line + span
	width := len(fmt.Sprint(last))
	for ln := first; ln <= last; ln++ {
		line := strings.TrimRight(sf.GetLine(ln), "\r")
		if ln > pos.Line && line == "" {
			break
		}
		fmt.Fprintf(w, " %s %s\n", pal.gutter.Sprintf("%*d |", width, ln), line)
		if ln == pos.Line {
			pad := strings.Repeat(" ", int(pos.Column)-1)
			fmt.Fprintf(w, " %s %s%s\n", pal.gutter.Sprint(strings.Repeat(" ", width)+" |"), pad, pal.err.Sprint("^"))
		}
	}
}

func displayPath(sf *source.File, fs *source.FileSet, mode PathMode) string {
	if sf == nil {
		return "<input>"
	}
	base := ""
	if fs != nil {
		base = fs.BaseDir()
	}
	return sf.FormatPath(mode.mode(), base)
}

// Short prints the single-line form used by `--format short` and golden tests.
func Short(w io.Writer, path string, diags []diag.Diagnostic, includeNotes bool) {
	out := diag.FormatShortDiagnostics(path, diags, includeNotes)
	if out == "" {
		return
	}
	fmt.Fprintln(w, out)
}
