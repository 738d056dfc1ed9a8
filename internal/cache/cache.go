// Package cache holds decoded bitmaps keyed by file path. Every path has at
// most one decode in flight; entries stay until the caller drops them with
// RetainOnly or Clear.
package cache

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"imgview/internal/codec"
	serr "imgview/internal/errors"
	"imgview/internal/log"
	"imgview/internal/metrics"

	"golang.org/x/sync/semaphore"
)

// DefaultWorkers bounds concurrent background decodes.
const DefaultWorkers = 4

// Decoder turns a path into a bitmap.
type Decoder interface {
	Decode(path string) (*codec.Bitmap, error)
}

// DecoderFunc adapts a function to Decoder.
type DecoderFunc func(path string) (*codec.Bitmap, error)

// Decode calls f(path).
func (f DecoderFunc) Decode(path string) (*codec.Bitmap, error) {
	return f(path)
}

// handle is the task for one path: pending until done is closed, then
// bitmap is set and never changes.
type handle struct {
	done   chan struct{}
	bitmap *codec.Bitmap
}

func newHandle() *handle {
	return &handle{done: make(chan struct{})}
}

func readyHandle(bm *codec.Bitmap) *handle {
	h := &handle{done: make(chan struct{}), bitmap: bm}
	close(h.done)
	return h
}

func (h *handle) ready() bool {
	select {
	case <-h.done:
		return true
	default:
		return false
	}
}

// Cache is safe for concurrent use.
type Cache struct {
	decoder Decoder
	sem     *semaphore.Weighted
	metrics *metrics.Metrics
	logger  *log.Logger

	mu      sync.Mutex
	entries map[string]*handle
	wg      sync.WaitGroup
}

// Option configures a Cache.
type Option func(*Cache)

// WithWorkers limits concurrent decodes to n (minimum 1).
func WithWorkers(n int) Option {
	return func(c *Cache) {
		c.sem = semaphore.NewWeighted(int64(max(n, 1)))
	}
}

// WithMetrics records cache activity in m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Cache) {
		c.metrics = m
	}
}

// WithLogger sets the logger used for decode failures.
func WithLogger(l *log.Logger) Option {
	return func(c *Cache) {
		if l != nil {
			c.logger = l
		}
	}
}

// New returns an empty cache decoding with decoder.
func New(decoder Decoder, opts ...Option) *Cache {
	c := &Cache{
		decoder: decoder,
		entries: make(map[string]*handle),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.sem == nil {
		c.sem = semaphore.NewWeighted(DefaultWorkers)
	}
	if c.logger == nil {
		c.logger = log.Default()
	}
	return c
}

// Request starts decoding path in the background unless it is already
// cached or in flight. It never blocks on the decode.
func (c *Cache) Request(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.requestLocked(path)
}

// requestLocked inserts the pending handle before the decode starts, so a
// concurrent Request for the same path sees it. c.mu must be held.
func (c *Cache) requestLocked(path string) {
	if _, ok := c.entries[path]; ok {
		return
	}
	h := newHandle()
	c.entries[path] = h
	c.metrics.RecordRequest()
	c.metrics.SetCacheEntries(len(c.entries))

	c.wg.Add(1)
	go c.decode(path, h)
}

func (c *Cache) decode(path string, h *handle) {
	defer c.wg.Done()

	_ = c.sem.Acquire(context.Background(), 1)
	defer c.sem.Release(1)

	start := time.Now()
	bm, err := c.safeDecode(path)
	if err == nil && bm == nil {
		err = serr.NewDecodeError(path, "", fmt.Errorf("decoder returned no bitmap"))
	}
	if err != nil {
		c.logger.WithError(err).Warn("decode failed, using placeholder")
		bm = codec.Placeholder(path, err)
	}
	c.metrics.RecordDecode(err == nil, time.Since(start))

	h.bitmap = bm
	close(h.done)

	c.mu.Lock()
	evicted := c.entries[path] != h
	c.mu.Unlock()
	if evicted {
		c.metrics.RecordDiscarded()
		c.logger.With(log.F("path", path)).Debug("discarding decode of evicted entry")
	}
}

// safeDecode converts a decoder panic into an error so the handle always
// completes.
func (c *Cache) safeDecode(path string) (bm *codec.Bitmap, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = serr.NewDecodeError(path, "", fmt.Errorf("decoder panic: %v", r))
		}
	}()
	return c.decoder.Decode(path)
}

// Get blocks until path is decoded and returns its bitmap. A failed decode
// yields a placeholder. Calling Get for a path that was never requested (or
// was evicted) is a caller bug and panics.
func (c *Cache) Get(path string) *codec.Bitmap {
	h := c.lookup(path)
	if h == nil {
		panic(serr.Wrapf(serr.ErrNotRequested, "cache get %s", path))
	}
	c.metrics.RecordGet(h.ready())
	<-h.done
	return h.bitmap
}

// GetContext is Get with cancellation. Unknown paths return
// errors.ErrNotRequested instead of panicking.
func (c *Cache) GetContext(ctx context.Context, path string) (*codec.Bitmap, error) {
	h := c.lookup(path)
	if h == nil {
		return nil, serr.Wrapf(serr.ErrNotRequested, "cache get %s", path)
	}
	c.metrics.RecordGet(h.ready())
	select {
	case <-h.done:
		return h.bitmap, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (c *Cache) lookup(path string) *handle {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entries[path]
}

// Put installs an already decoded bitmap for path, replacing any entry.
// Callers still waiting on a replaced in-flight decode get that decode's
// result.
func (c *Cache) Put(path string, bm *codec.Bitmap) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[path] = readyHandle(bm)
	c.metrics.SetCacheEntries(len(c.entries))
}

// RetainOnly evicts every entry not in paths and requests the paths that
// are missing, in one critical section.
func (c *Cache) RetainOnly(paths []string) {
	keep := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		keep[p] = struct{}{}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	evicted := 0
	for p := range c.entries {
		if _, ok := keep[p]; !ok {
			delete(c.entries, p)
			evicted++
		}
	}
	c.metrics.RecordEvictions(evicted)

	for _, p := range paths {
		c.requestLocked(p)
	}
	c.metrics.SetCacheEntries(len(c.entries))
}

// Has reports whether path is cached or being decoded.
func (c *Cache) Has(path string) bool {
	return c.lookup(path) != nil
}

// Ready reports whether path is cached and its decode has finished.
func (c *Cache) Ready(path string) bool {
	h := c.lookup(path)
	return h != nil && h.ready()
}

// Len returns the number of entries, pending ones included.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Keys returns the cached paths in sorted order.
func (c *Cache) Keys() []string {
	c.mu.Lock()
	keys := make([]string, 0, len(c.entries))
	for p := range c.entries {
		keys = append(keys, p)
	}
	c.mu.Unlock()
	slices.Sort(keys)
	return keys
}

// Clear evicts every entry. In-flight decodes finish and are discarded.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.metrics.RecordEvictions(len(c.entries))
	c.entries = make(map[string]*handle)
	c.metrics.SetCacheEntries(0)
}

// Wait blocks until every decode started so far has finished.
func (c *Cache) Wait() {
	c.wg.Wait()
}
