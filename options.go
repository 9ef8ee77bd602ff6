package embedix

import (
	"log/slog"
	"runtime"

	"github.com/hupe1980/embedix/cache"
)

// DefaultCacheSize is the default maximum number of resident cache entries
// per index name.
const DefaultCacheSize = 1_000_000

// DefaultRegistry is the cache registry used when none is injected. Handles
// opened on the same index name through it share one cache within a process.
var DefaultRegistry = cache.NewRegistry()

type options struct {
	cacheSize       int
	registry        *cache.Registry
	logger          *Logger
	readOnly        bool
	compileWorkers  int
	compileProgress func(done int64)
}

// Option configures Create/Open behavior.
type Option func(*options)

// WithCacheSize sets the maximum number of resident cache entries for this
// index's name. The size binds when the name's cache is first created in the
// registry; re-opening the same name with a different size is a no-op (first
// caller's size wins). A size <= 0 disables caching.
func WithCacheSize(n int) Option {
	return func(o *options) {
		o.cacheSize = n
	}
}

// WithCacheRegistry injects the cache registry the handle resolves its cache
// from. Pass a dedicated registry to isolate a handle from the process-wide
// default.
func WithCacheRegistry(r *cache.Registry) Option {
	return func(o *options) {
		if r != nil {
			o.registry = r
		}
	}
}

// WithLogger configures structured logging for operations.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithReadOnly opens every table read-only. Insert and Compile fail on a
// read-only handle. Only meaningful for Open.
func WithReadOnly() Option {
	return func(o *options) {
		o.readOnly = true
	}
}

// WithCompileWorkers bounds the ingestion worker pool. Defaults to
// runtime.GOMAXPROCS(0).
func WithCompileWorkers(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.compileWorkers = n
		}
	}
}

// WithCompileProgress registers a callback invoked with the running count of
// ingested lines. Completion order is unordered; the count only ever grows.
// The callback may be invoked concurrently from multiple workers.
func WithCompileProgress(fn func(done int64)) Option {
	return func(o *options) {
		o.compileProgress = fn
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		cacheSize:      DefaultCacheSize,
		registry:       DefaultRegistry,
		logger:         NoopLogger(),
		compileWorkers: runtime.GOMAXPROCS(0),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
