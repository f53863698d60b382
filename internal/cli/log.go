package cli

import (
	"context"
	"io"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/kintree/pkg/observability"
)

// newLogger creates a new logger with timestamp formatting.
// The logger writes to w and filters messages at the specified level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
// It is safe for sequential use by a single goroutine; concurrent calls to done will race.
type progress struct {
	logger *log.Logger
	start  time.Time
}

// newProgress creates a progress tracker that captures the current time as start.
func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// Example output: "Laid out 42 people (12ms)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

// =============================================================================
// Debug Hooks
// =============================================================================

// logHooks reports pipeline events and classifier cache counts at debug
// level.
type logHooks struct {
	logger *log.Logger
	hits   atomic.Int64
	misses atomic.Int64
}

// EnableDebugHooks routes pipeline and classifier events to the CLI logger.
// main calls it when --verbose is set.
func (c *CLI) EnableDebugHooks() {
	h := &logHooks{logger: c.Logger}
	observability.SetPipelineHooks(h)
	observability.SetClassifierHooks(h)
}

func (h *logHooks) OnLoadStart(_ context.Context, source string) {
	h.logger.Debug("load start", "source", source)
}

func (h *logHooks) OnLoadComplete(_ context.Context, source string, people int, d time.Duration, err error) {
	h.logger.Debug("load complete", "source", source, "people", people, "duration", d, "err", err)
}

func (h *logHooks) OnLayoutStart(_ context.Context, focus string, people int) {
	h.logger.Debug("layout start", "focus", focus, "people", people)
}

func (h *logHooks) OnLayoutComplete(_ context.Context, focus string, d time.Duration, err error) {
	h.logger.Debug("layout complete", "focus", focus, "duration", d, "err", err)
}

func (h *logHooks) OnClassifyStart(_ context.Context, focus string, people int) {
	h.hits.Store(0)
	h.misses.Store(0)
	h.logger.Debug("classify start", "focus", focus, "people", people)
}

func (h *logHooks) OnClassifyComplete(_ context.Context, focus string, d time.Duration, err error) {
	h.logger.Debug("classify complete",
		"focus", focus,
		"duration", d,
		"cache_hits", h.hits.Load(),
		"cache_misses", h.misses.Load(),
		"err", err)
}

func (h *logHooks) OnCacheHit(string)  { h.hits.Add(1) }
func (h *logHooks) OnCacheMiss(string) { h.misses.Add(1) }
