// Package pipeline provides the load → layout → classify pipeline for kintree.
//
// The CLI drives every command through a [Runner], so validation, caching,
// hooks and logging behave the same way regardless of which command asked
// for a scene.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Read a graph file in JSON, TOML or YAML
//  2. Layout: Position every person relative to the focus
//  3. Classify: Label every person's relationship to the focus and color it
//
// Stages 2 and 3 produce a [graph.Scene], which is cached by graph content,
// focus and layout dimensions.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	g, err := runner.Load(ctx, "family.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := runner.Execute(ctx, g, pipeline.Options{Focus: "seth"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Scene.Width, result.Scene.Height)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/kintree/pkg/cache"
	"github.com/matzehuels/kintree/pkg/core/layout"
	kerrors "github.com/matzehuels/kintree/pkg/errors"
	"github.com/matzehuels/kintree/pkg/graph"
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
type Options struct {
	// Focus is the person every position and relationship is relative to.
	Focus string `json:"focus"`

	// Layout holds node dimensions and spacing. The zero value means
	// layout.DefaultConfig().
	Layout layout.Config `json:"layout"`

	// Refresh skips the cache read but still stores the fresh scene.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Scene is the positioned and classified graph.
	Scene graph.Scene

	// GraphHash is the content hash of the input graph.
	GraphHash string

	// Status is the layout outcome. A cached scene reports the status it
	// was computed with.
	Status layout.Status

	// Stats contains timing and size information.
	Stats Stats

	// CacheHit is true when the scene came from the cache.
	CacheHit bool
}

// Stats contains pipeline execution statistics.
type Stats struct {
	People       int
	Edges        int
	Related      int // people with a finite degree to the focus, focus included
	LayoutTime   time.Duration
	ClassifyTime time.Duration
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := kerrors.ValidatePersonID(o.Focus); err != nil {
		return kerrors.Wrap(kerrors.ErrCodeInvalidInput, err, "focus")
	}
	if o.Layout == (layout.Config{}) {
		o.Layout = layout.DefaultConfig()
	}
	if err := o.Layout.Validate(); err != nil {
		return kerrors.Wrap(kerrors.ErrCodeInvalidConfig, err, "layout")
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// SceneKeyOpts returns cache key options for the scene.
func (o *Options) SceneKeyOpts() cache.SceneKeyOpts {
	return cache.SceneKeyOpts{
		Focus:  o.Focus,
		Config: o.Layout,
	}
}

// statusFromString maps a scene status back to a layout.Status.
func statusFromString(s string) layout.Status {
	for _, st := range []layout.Status{layout.StatusOK, layout.StatusEmpty, layout.StatusNotFound, layout.StatusDegraded} {
		if st.String() == s {
			return st
		}
	}
	return layout.StatusDegraded
}
