package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/kintree/pkg/cache"
	"github.com/matzehuels/kintree/pkg/core/family"
	"github.com/matzehuels/kintree/pkg/core/kinship"
	"github.com/matzehuels/kintree/pkg/core/layout"
	kerrors "github.com/matzehuels/kintree/pkg/errors"
	"github.com/matzehuels/kintree/pkg/graph"
	"github.com/matzehuels/kintree/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different graphs.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Load reads a graph file and validates its structure.
func (r *Runner) Load(ctx context.Context, path string) (*family.Graph, error) {
	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, path)
	start := time.Now()

	g, err := r.load(path)
	people := 0
	if g != nil {
		people = g.PersonCount()
	}
	hooks.OnLoadComplete(ctx, path, people, time.Since(start), err)
	if err != nil {
		return nil, err
	}

	r.Logger.Info("loaded graph",
		"source", path,
		"people", g.PersonCount(),
		"edges", g.EdgeCount(),
		"duration", time.Since(start))
	return g, nil
}

func (r *Runner) load(path string) (*family.Graph, error) {
	if err := kerrors.ValidateGraphFilename(path); err != nil {
		return nil, err
	}
	g, err := graph.ReadGraphFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, kerrors.Wrap(kerrors.ErrCodeFileNotFound, err, "graph file not found: %s", path)
	}
	if errors.Is(err, family.ErrParentCycle) {
		return nil, kerrors.Wrap(kerrors.ErrCodeCycle, err, "read %s", path)
	}
	if err != nil {
		return nil, kerrors.Wrap(kerrors.ErrCodeInvalidGraph, err, "read %s", path)
	}
	if err := validateGraph(g); err != nil {
		return nil, err
	}
	return g, nil
}

// validateGraph checks every person ID and maps family validation failures
// to error codes.
func validateGraph(g *family.Graph) error {
	for _, id := range g.IDs() {
		if err := kerrors.ValidatePersonID(id); err != nil {
			return kerrors.Wrap(kerrors.ErrCodeInvalidGraph, err, "invalid graph")
		}
	}
	err := g.Validate()
	switch {
	case err == nil:
		return nil
	case errors.Is(err, family.ErrGraphHasCycle), errors.Is(err, family.ErrParentCycle):
		return kerrors.Wrap(kerrors.ErrCodeCycle, err, "invalid graph")
	default:
		return kerrors.Wrap(kerrors.ErrCodeInvalidGraph, err, "invalid graph")
	}
}

// Execute lays out and classifies g around opts.Focus, using the cache
// when a scene for the same graph, focus and dimensions exists.
func (r *Runner) Execute(ctx context.Context, g *family.Graph, opts Options) (*Result, error) {
	if g == nil {
		return nil, kerrors.New(kerrors.ErrCodeInvalidInput, "graph is required")
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	if err := validateGraph(g); err != nil {
		return nil, err
	}
	if !g.Has(opts.Focus) {
		return nil, kerrors.New(kerrors.ErrCodePersonNotFound, "focus %q is not in the graph", opts.Focus)
	}

	result := &Result{
		Stats: Stats{People: g.PersonCount(), Edges: g.EdgeCount()},
	}

	// Compute graph hash for the cache key
	graphData, err := graph.MarshalGraph(g, graph.FormatJSON)
	if err != nil {
		return nil, kerrors.Wrap(kerrors.ErrCodeInternal, err, "serialize graph")
	}
	result.GraphHash = cache.Hash(graphData)
	cacheKey := r.Keyer.SceneKey(result.GraphHash, opts.SceneKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if scene, err := graph.UnmarshalScene(data); err == nil && scene.Focus == opts.Focus {
				result.Scene = scene
				result.Status = statusFromString(scene.Status)
				for _, n := range scene.Nodes {
					if n.Degree != kinship.Unrelated {
						result.Stats.Related++
					}
				}
				result.CacheHit = true
				r.Logger.Debug("scene cache hit", "focus", opts.Focus, "key", cacheKey)
				return result, nil
			}
			// If deserialization fails, fall through to recompute
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 1: Layout
	res, dur := r.layout(ctx, g, opts)
	result.Status = res.Status
	result.Stats.LayoutTime = dur

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 2: Classify
	rels, dur, err := r.classify(ctx, g, opts.Focus)
	if err != nil {
		return nil, fmt.Errorf("classify: %w", err)
	}
	result.Stats.ClassifyTime = dur
	for _, rel := range rels {
		if rel.Related() {
			result.Stats.Related++
		}
	}

	result.Scene = graph.NewScene(g, opts.Focus, res, rels)

	// Degraded scenes are not cached so the next run retries the layout.
	if res.OK() {
		if data, err := graph.MarshalScene(result.Scene); err == nil {
			_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLScene)
		}
	}
	return result, nil
}

func (r *Runner) layout(ctx context.Context, g *family.Graph, opts Options) (layout.Result, time.Duration) {
	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, opts.Focus, g.PersonCount())
	start := time.Now()

	res := layout.Calculate(g, opts.Focus,
		layout.WithConfig(opts.Layout),
		layout.WithLogger(opts.Logger))

	dur := time.Since(start)
	hooks.OnLayoutComplete(ctx, opts.Focus, dur, res.Err)

	r.Logger.Info("computed layout",
		"status", res.Status,
		"positions", len(res.Positions),
		"duration", dur)
	return res, dur
}

func (r *Runner) classify(ctx context.Context, g *family.Graph, focus string) (map[string]kinship.Relationship, time.Duration, error) {
	hooks := observability.Pipeline()
	hooks.OnClassifyStart(ctx, focus, g.PersonCount())
	start := time.Now()

	c := kinship.New(g)
	rels := make(map[string]kinship.Relationship, g.PersonCount())
	var err error
	for _, id := range g.IDs() {
		if err = ctx.Err(); err != nil {
			break
		}
		rels[id] = c.Classify(focus, id)
	}

	dur := time.Since(start)
	hooks.OnClassifyComplete(ctx, focus, dur, err)
	if err != nil {
		return nil, dur, err
	}

	r.Logger.Info("classified relationships",
		"people", len(rels),
		"duration", dur)
	return rels, dur, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
