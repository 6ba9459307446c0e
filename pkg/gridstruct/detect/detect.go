// Package detect runs construct detection over a surface: it finds clusters,
// classifies and builds each one, and parses tree domains recursively.
package detect

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/ukaji3/gridstruct-go/pkg/gridstruct/classify"
	"github.com/ukaji3/gridstruct-go/pkg/gridstruct/cluster"
	"github.com/ukaji3/gridstruct-go/pkg/gridstruct/construct"
	"github.com/ukaji3/gridstruct-go/pkg/gridstruct/grid"
)

// DefaultMaxDepth is the default limit for nested domain parsing.
const DefaultMaxDepth = 32

// Params holds parameters for construct detection.
type Params struct {
	// MaxDepth bounds nested domain parsing. Top-level constructs are at
	// depth 0.
	MaxDepth int
	// SkipNested computes tree domains without parsing inside them.
	SkipNested bool
	// MinConfidence drops constructs scoring below it.
	MinConfidence float64
	// Connectivity selects the adjacency used to grow clusters.
	Connectivity cluster.Connectivity
	// IndentWidth is the number of leading spaces worth one tree level;
	// zero ignores indentation.
	IndentWidth int
}

// DefaultParams returns default detection parameters.
func DefaultParams() Params {
	return Params{
		MaxDepth:     DefaultMaxDepth,
		Connectivity: cluster.FourWay,
	}
}

// Unclassified describes a cluster that did not become a construct.
type Unclassified struct {
	Bounds    grid.Rect          `json:"bounds" yaml:"bounds"`
	Signature classify.Signature `json:"signature" yaml:"signature"`
	Reason    string             `json:"reason" yaml:"reason"`
}

// Report is the result of one detection pass.
type Report struct {
	// Constructs holds the top-level constructs in cluster order.
	Constructs []*construct.Construct
	// Unclassified holds the top-level clusters that are not constructs.
	Unclassified []Unclassified
	// Errors collects malformed clusters and depth-limited domains. None of
	// them aborts the pass.
	Errors []error
	// Truncated counts domains whose nested parse hit MaxDepth.
	Truncated int
}

// Counts returns the number of top-level constructs per type.
func (r *Report) Counts() map[classify.Type]int {
	out := make(map[classify.Type]int)
	for _, c := range r.Constructs {
		out[c.Type]++
	}
	return out
}

// Option configures a Detector.
type Option func(*Detector)

// WithLogger sets the diagnostics logger.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Detector) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithScope namespaces construct IDs, typically with the sheet name.
func WithScope(scope string) Option {
	return func(d *Detector) {
		d.scope = scope
	}
}

// Detector runs detection passes. It holds no per-pass state, so one
// Detector may serve concurrent passes over different surfaces.
type Detector struct {
	params Params
	logger *slog.Logger
	scope  string
}

// New creates a Detector.
func New(params Params, opts ...Option) *Detector {
	if params.MaxDepth < 0 {
		params.MaxDepth = 0
	}
	d := &Detector{
		params: params,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Params returns the detector's parameters.
func (d *Detector) Params() Params {
	return d.params
}

// Detect parses every cluster of s. Clusters that cannot be classified or
// built are recorded in the report and skipped.
func (d *Detector) Detect(s grid.Surface) *Report {
	rep := &Report{}
	rep.Constructs = d.detect(s, 0, rep)
	d.logger.Debug("detection finished",
		"scope", d.scope,
		"constructs", len(rep.Constructs),
		"unclassified", len(rep.Unclassified),
		"truncated", rep.Truncated)
	return rep
}

// DetectCluster classifies and builds a single cluster, resolving tree
// domains. It returns a nil construct when the cluster is not one, and an
// error when the cluster is malformed.
func (d *Detector) DetectCluster(c *cluster.Cluster, s grid.Surface) (*construct.Construct, *Report, error) {
	rep := &Report{}
	con, _, err := d.buildOne(c, s, 0, rep)
	if err != nil {
		return nil, rep, err
	}
	return con, rep, nil
}

func (d *Detector) detect(s grid.Surface, depth int, rep *Report) []*construct.Construct {
	finder := cluster.Finder{Connectivity: d.params.Connectivity}

	var out []*construct.Construct
	for _, c := range finder.Find(s) {
		con, res, err := d.buildOne(c, s, depth, rep)
		if err != nil {
			d.logger.Warn("skipping cluster", "bounds", c.Bounds.String(), "error", err)
			rep.Errors = append(rep.Errors, err)
			continue
		}
		if con == nil {
			if depth == 0 {
				rep.Unclassified = append(rep.Unclassified, Unclassified{
					Bounds:    c.Bounds,
					Signature: res.Signature,
					Reason:    unclassifiedReason(c, res),
				})
			}
			continue
		}
		out = append(out, con)
	}
	return out
}

// buildOne classifies and builds c. A nil construct with a nil error means c
// is not a construct (or scored below MinConfidence).
func (d *Detector) buildOne(c *cluster.Cluster, s grid.Surface, depth int, rep *Report) (*construct.Construct, classify.Result, error) {
	res, err := classify.Classify(c, s)
	if err != nil {
		return nil, res, err
	}
	d.logger.Debug("classified cluster",
		"bounds", c.Bounds.String(),
		"signature", res.Signature.String(),
		"type", res.Type.String(),
		"depth", depth)
	if !res.OK() {
		return nil, res, nil
	}

	con, err := construct.Build(c, s, res, construct.Options{
		Scope:       d.scopeAt(depth),
		IndentWidth: d.params.IndentWidth,
	})
	if err != nil {
		return nil, res, fmt.Errorf("build %s at %s: %w", res.Type, c.Bounds, err)
	}
	if con.Confidence < d.params.MinConfidence {
		d.logger.Debug("dropping low confidence construct",
			"bounds", c.Bounds.String(),
			"type", con.Type.String(),
			"confidence", con.Confidence)
		return nil, res, nil
	}
	if con.Tree != nil {
		d.resolveDomains(con.Tree, s, depth, rep)
	}
	return con, res, nil
}

func (d *Detector) scopeAt(depth int) string {
	if depth == 0 {
		return d.scope
	}
	return fmt.Sprintf("%s#%d", d.scope, depth)
}

func unclassifiedReason(c *cluster.Cluster, res classify.Result) string {
	switch {
	case res.Signature == classify.SignatureSingleCell:
		return "single cell"
	case res.Type != classify.TypeNone:
		return "below minimum confidence"
	case res.Signature.IsBinary():
		return fmt.Sprintf("corner key %d has no construct", int(res.Signature))
	}
	return fmt.Sprintf("no construct for %d cells", c.Len())
}
