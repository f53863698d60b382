package layout

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/kintree/pkg/core/family"
	"github.com/matzehuels/kintree/pkg/core/generation"
)

// Status classifies the outcome of Calculate.
type Status int

const (
	// StatusOK means every person received a position.
	StatusOK Status = iota
	// StatusEmpty means the graph was nil or had no people.
	StatusEmpty
	// StatusNotFound means the focus is not in the graph.
	StatusNotFound
	// StatusDegraded means placement failed; Positions holds only the focus
	// at the origin.
	StatusDegraded
)

// String returns the lower-case status name.
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusEmpty:
		return "empty"
	case StatusNotFound:
		return "not_found"
	case StatusDegraded:
		return "degraded"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// ErrDepthExceeded is reported in a degraded result when the descendant
// chain is deeper than Config.MaxDepth.
var ErrDepthExceeded = errors.New("family tree exceeds maximum depth")

// Point is a node center.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect is an axis-aligned bounding box.
type Rect struct {
	MinX, MinY, MaxX, MaxY float64
}

// Width returns the horizontal span of the rectangle.
func (r Rect) Width() float64 { return r.MaxX - r.MinX }

// Height returns the vertical span of the rectangle.
func (r Rect) Height() float64 { return r.MaxY - r.MinY }

// Result is the output of Calculate.
type Result struct {
	Status    Status
	Positions map[string]Point
	Config    Config
	// Err describes why the result is degraded. Nil otherwise.
	Err error
}

// OK reports whether the layout completed normally.
func (r Result) OK() bool { return r.Status == StatusOK }

// Bounds returns the extent of all positions padded by one node size on
// every side. It returns the zero Rect when there are no positions.
func (r Result) Bounds() Rect {
	if len(r.Positions) == 0 {
		return Rect{}
	}
	b := Rect{
		MinX: math.Inf(1), MinY: math.Inf(1),
		MaxX: math.Inf(-1), MaxY: math.Inf(-1),
	}
	for _, p := range r.Positions {
		b.MinX = min(b.MinX, p.X)
		b.MinY = min(b.MinY, p.Y)
		b.MaxX = max(b.MaxX, p.X)
		b.MaxY = max(b.MaxY, p.Y)
	}
	b.MinX -= r.Config.NodeWidth
	b.MaxX += r.Config.NodeWidth
	b.MinY -= r.Config.NodeHeight
	b.MaxY += r.Config.NodeHeight
	return b
}

// Option configures Calculate.
type Option func(*options)

type options struct {
	config Config
	logger *log.Logger
}

// WithConfig overrides the default dimensions.
func WithConfig(c Config) Option {
	return func(o *options) { o.config = c }
}

// WithLogger sets a logger for debug output and degraded-result warnings.
func WithLogger(l *log.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// Calculate lays out g around focus.
//
// Calculate never panics and never mutates g. Internal failures (an invalid
// Config, a tree deeper than Config.MaxDepth, or any panic during placement)
// produce a StatusDegraded result with the focus alone at the origin.
func Calculate(g *family.Graph, focus string, opts ...Option) (res Result) {
	o := options{
		config: DefaultConfig(),
		logger: log.NewWithOptions(io.Discard, log.Options{}),
	}
	for _, opt := range opts {
		opt(&o)
	}

	if g == nil || g.PersonCount() == 0 {
		return Result{Status: StatusEmpty, Positions: map[string]Point{}, Config: o.config}
	}
	if !g.Has(focus) {
		return Result{Status: StatusNotFound, Positions: map[string]Point{}, Config: o.config}
	}

	degraded := func(err error) Result {
		o.logger.Warn("layout degraded", "focus", focus, "err", err)
		return Result{
			Status:    StatusDegraded,
			Positions: map[string]Point{focus: {}},
			Config:    o.config,
			Err:       err,
		}
	}

	defer func() {
		if r := recover(); r != nil {
			res = degraded(fmt.Errorf("layout panic: %v", r))
		}
	}()

	if err := o.config.Validate(); err != nil {
		return degraded(fmt.Errorf("invalid config: %w", err))
	}

	gens, _ := generation.Resolve(g, focus)
	b := newBuilder(g, o.config, gens)
	if err := b.placeAll(rootOrder(g, focus)); err != nil {
		return degraded(err)
	}
	resolveCollisions(b.pos, gens, o.config)

	o.logger.Debug("layout complete", "focus", focus, "people", len(b.pos), "trees", b.trees)
	return Result{Status: StatusOK, Positions: b.pos, Config: o.config}
}
