// Package session drives one viewing session: it owns the directory listing,
// the decode cache and the sort state, and turns user actions into View
// snapshots for the GUI and TUI.
package session

import (
	"sync"

	"imgview/internal/cache"
	"imgview/internal/codec"
	"imgview/internal/config"
	"imgview/internal/listing"
	"imgview/internal/log"
	"imgview/internal/metrics"
	"imgview/internal/watch"
	"imgview/pkg/types"

	"golang.org/x/sync/singleflight"
)

// Listener receives a fresh View after every change. It is called without
// the controller lock held, possibly from a background goroutine.
type Listener func(View)

// Controller serialises every listing and sort mutation behind one mutex.
type Controller struct {
	cfg     *config.Config
	decoder cache.Decoder
	metrics *metrics.Metrics
	logger  *log.Logger

	mu         sync.Mutex
	listing    *listing.Listing
	cache      *cache.Cache
	sort       types.SortSpec
	defaultBy  types.SortField
	generation uint64
	inputPath  string
	current    string
	bitmap     *codec.Bitmap
	label      string
	listeners  []Listener

	flight  singleflight.Group
	watcher *watch.Watcher
	scans   sync.WaitGroup
	closed  chan struct{}
	once    sync.Once
}

// Option configures a Controller.
type Option func(*Controller)

// WithDecoder replaces the filesystem decoder.
func WithDecoder(d cache.Decoder) Option {
	return func(c *Controller) {
		if d != nil {
			c.decoder = d
		}
	}
}

// WithMetrics records cache and scan activity in m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Controller) {
		c.metrics = m
	}
}

// WithLogger sets the session logger.
func WithLogger(l *log.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewListing builds an empty listing honouring the listing section of cfg.
func NewListing(cfg *config.Config) *listing.Listing {
	return listing.New(
		listing.WithExtensions(codec.NewExtensionSet(cfg.Listing.ExtraExtensions...)),
		listing.WithExclude(cfg.Listing.Exclude...),
	)
}

// InitialSortSpec returns the sort state a session starts with: every field
// ascending except the configured default, which takes the configured
// direction. No field is active until the first scan completes.
func InitialSortSpec(cfg *config.Config) types.SortSpec {
	spec := types.DefaultSortSpec()
	field := cfg.SortField()
	if field != types.SortNone {
		spec.ResolveExplicit(field, cfg.Sort.Ascending)
		spec.Active = types.SortNone
	}
	return spec
}

// New creates a controller. When cfg enables watching, the active directory
// is rescanned whenever images in it change.
func New(cfg *config.Config, opts ...Option) (*Controller, error) {
	if cfg == nil {
		cfg = config.New()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Controller{
		cfg:       cfg,
		decoder:   codec.NewFileDecoder(),
		logger:    log.Default(),
		listing:   NewListing(cfg),
		sort:      InitialSortSpec(cfg),
		defaultBy: cfg.SortField(),
		closed:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.cache = cache.New(c.decoder,
		cache.WithWorkers(cfg.Cache.Workers),
		cache.WithMetrics(c.metrics),
		cache.WithLogger(c.logger),
	)

	if cfg.Watch.Enabled {
		if err := c.startWatcher(); err != nil {
			c.logger.WithError(err).Warn("directory watching disabled")
		}
	}
	return c, nil
}

// OnChange registers l to receive Views.
func (c *Controller) OnChange(l Listener) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, l)
}

// Config returns the configuration the controller was built with.
func (c *Controller) Config() *config.Config {
	return c.cfg
}

// CacheKeys returns the paths currently held by the decode cache.
func (c *Controller) CacheKeys() []string {
	return c.cache.Keys()
}

// WaitIdle blocks until background scans and decodes have finished.
func (c *Controller) WaitIdle() {
	c.scans.Wait()
	c.cache.Wait()
}

// Close stops the watcher and waits for background work.
func (c *Controller) Close() {
	c.once.Do(func() {
		close(c.closed)
		if c.watcher != nil {
			c.watcher.Stop()
		}
		c.WaitIdle()
	})
}

// notify hands the current View to every listener. c.mu must not be held.
func (c *Controller) notify() {
	c.mu.Lock()
	v := c.viewLocked()
	listeners := append([]Listener(nil), c.listeners...)
	c.mu.Unlock()

	for _, l := range listeners {
		l(v)
	}
}
