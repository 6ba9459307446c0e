// Package gridstruct extracts structural constructs (tables, matrices,
// key-value blocks, lists and trees) from spreadsheet sheets.
package gridstruct

import (
	"io"
	"log/slog"
	"runtime"

	"github.com/ukaji3/gridstruct-go/pkg/gridstruct/detect"
)

// Mode represents the extraction mode.
type Mode string

const (
	// ModeLight detects top-level constructs only: tree domains are bounded
	// but not parsed, and no cells or print areas are emitted.
	ModeLight Mode = "light"
	// ModeStandard parses tree domains recursively and includes print areas.
	ModeStandard Mode = "standard"
	// ModeVerbose additionally emits cell rows, hyperlinks and unclassified clusters.
	ModeVerbose Mode = "verbose"
)

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	switch m {
	case ModeLight, ModeStandard, ModeVerbose:
		return true
	}
	return false
}

// Options configures extraction behavior.
type Options struct {
	// Mode specifies the extraction mode (light, standard, verbose).
	Mode Mode
	// IncludeCells specifies whether to include cell rows.
	// If nil, defaults to true for verbose mode, false otherwise.
	IncludeCells *bool
	// IncludeLinks specifies whether to include cell hyperlinks with cell rows.
	// If nil, defaults to true for verbose mode, false otherwise.
	IncludeLinks *bool
	// IncludePrintAreas specifies whether to include print areas.
	// If nil, defaults to false for light mode, true otherwise.
	IncludePrintAreas *bool
	// Detection holds construct detection parameters.
	Detection detect.Params
	// Sheets restricts extraction to the named sheets. Empty means all.
	Sheets []string
	// Workers bounds the sheets detected in parallel. Zero means GOMAXPROCS.
	Workers int
	// Logger receives diagnostics. Nil discards them.
	Logger *slog.Logger
}

// DefaultOptions returns default extraction options.
func DefaultOptions() Options {
	return Options{
		Mode:      ModeStandard,
		Detection: detect.DefaultParams(),
	}
}

// ShouldIncludeCells returns whether to include cell rows.
func (o Options) ShouldIncludeCells() bool {
	if o.IncludeCells != nil {
		return *o.IncludeCells
	}
	return o.Mode == ModeVerbose
}

// ShouldIncludeLinks returns whether to include cell hyperlinks.
func (o Options) ShouldIncludeLinks() bool {
	if o.IncludeLinks != nil {
		return *o.IncludeLinks
	}
	return o.Mode == ModeVerbose
}

// ShouldIncludePrintAreas returns whether to include print areas.
func (o Options) ShouldIncludePrintAreas() bool {
	if o.IncludePrintAreas != nil {
		return *o.IncludePrintAreas
	}
	return o.Mode != ModeLight
}

// ShouldIncludeUnclassified returns whether to report clusters that are not
// constructs.
func (o Options) ShouldIncludeUnclassified() bool {
	return o.Mode == ModeVerbose
}

// DetectionParams returns the detection parameters adjusted for the mode.
func (o Options) DetectionParams() detect.Params {
	p := o.Detection
	if o.Mode == ModeLight {
		p.SkipNested = true
	}
	return p
}

func (o Options) workers() int {
	if o.Workers > 0 {
		return o.Workers
	}
	return runtime.GOMAXPROCS(0)
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Bool returns a pointer to b, for the optional fields of Options.
func Bool(b bool) *bool {
	return &b
}
