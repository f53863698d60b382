// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about pipeline stages and classifier cache behaviour.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Hooks are registered by main, not by libraries, so the core packages stay
// free of any observability framework.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetPipelineHooks(&myPipelineHooks{})
//	    observability.SetClassifierHooks(&myClassifierHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Pipeline().OnLayoutStart(ctx, focus, people)
//	// ... compute layout ...
//	observability.Pipeline().OnLayoutComplete(ctx, focus, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from the layout pipeline.
type PipelineHooks interface {
	// Load events
	OnLoadStart(ctx context.Context, source string)
	OnLoadComplete(ctx context.Context, source string, people int, duration time.Duration, err error)

	// Layout events
	OnLayoutStart(ctx context.Context, focus string, people int)
	OnLayoutComplete(ctx context.Context, focus string, duration time.Duration, err error)

	// Classification events
	OnClassifyStart(ctx context.Context, focus string, people int)
	OnClassifyComplete(ctx context.Context, focus string, duration time.Duration, err error)
}

// =============================================================================
// Classifier Hooks
// =============================================================================

// ClassifierHooks receives events from the relationship classifier's memo
// cache. Classification is synchronous and carries no context.
type ClassifierHooks interface {
	// OnCacheHit records a lookup answered from the cache. kind is one of
	// "ancestors", "link" or "relationship".
	OnCacheHit(kind string)

	// OnCacheMiss records a lookup that had to be computed.
	OnCacheMiss(kind string)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnLoadStart(context.Context, string)                               {}
func (NoopPipelineHooks) OnLoadComplete(context.Context, string, int, time.Duration, error) {}
func (NoopPipelineHooks) OnLayoutStart(context.Context, string, int)                        {}
func (NoopPipelineHooks) OnLayoutComplete(context.Context, string, time.Duration, error)    {}
func (NoopPipelineHooks) OnClassifyStart(context.Context, string, int)                      {}
func (NoopPipelineHooks) OnClassifyComplete(context.Context, string, time.Duration, error)  {}

// NoopClassifierHooks is a no-op implementation of ClassifierHooks.
type NoopClassifierHooks struct{}

func (NoopClassifierHooks) OnCacheHit(string)  {}
func (NoopClassifierHooks) OnCacheMiss(string) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	pipelineHooks   PipelineHooks   = NoopPipelineHooks{}
	classifierHooks ClassifierHooks = NoopClassifierHooks{}
	hooksMu         sync.RWMutex
)

// SetPipelineHooks registers custom pipeline hooks.
// This should be called once at application startup before any pipeline operations.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// SetClassifierHooks registers custom classifier hooks.
// This should be called once at application startup before any classification.
func SetClassifierHooks(h ClassifierHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		classifierHooks = h
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Classifier returns the registered classifier hooks.
func Classifier() ClassifierHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return classifierHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pipelineHooks = NoopPipelineHooks{}
	classifierHooks = NoopClassifierHooks{}
}
