package session

import (
	"time"

	serr "imgview/internal/errors"
	"imgview/internal/fsmeta"
	"imgview/internal/listing"
	"imgview/internal/log"
	"imgview/internal/watch"
	"imgview/pkg/types"
)

// Labels shown in place of an image.
const (
	LabelParsing     = "Parsing..."
	LabelNoImages    = "[No Images]"
	LabelUnsupported = "[Unsupported]"
)

// Open starts viewing path, a file or directory. Directory scans run in the
// background; Open returns the state reached before the scan.
func (c *Controller) Open(path string) listing.State {
	state, scan := c.begin(path)
	if scan != nil {
		c.scans.Add(1)
		go func() {
			defer c.scans.Done()
			scan()
		}()
	}
	c.notify()
	return state
}

// OpenSync is Open with the directory scan run on the calling goroutine.
func (c *Controller) OpenSync(path string) listing.State {
	_, scan := c.begin(path)
	if scan != nil {
		scan()
	}
	c.notify()
	return c.State()
}

// begin classifies path under the lock and returns the scan to run, if any.
func (c *Controller) begin(path string) (listing.State, func()) {
	path = fsmeta.LongPath(path)

	c.mu.Lock()
	defer c.mu.Unlock()

	state := c.listing.BeginPath(path)
	logger := c.logger.With(log.F("path", path), log.F("state", state.String()))

	switch state {
	case listing.NotExists:
		logger.Info("path does not exist")
		return state, nil

	case listing.Ready:
		c.label = ""
		c.showSelectedLocked()
		return state, nil

	case listing.Unsupported:
		c.inputPath = path
		c.label = ""
		c.showSelectedLocked()
		if c.bitmap.IsPlaceholder() {
			c.label = LabelUnsupported
			logger.WithError(serr.ErrUnsupportedFile).Info("cannot show file")
		}
		return state, nil

	case listing.Preview:
		c.inputPath = path
		c.label = ""
		c.showSelectedLocked()

	default:
		c.inputPath = path
		c.label = LabelParsing
		c.current = ""
		c.bitmap = nil
	}

	c.generation++
	gen := c.generation
	dir := c.listing.DirPath()
	logger.Debug("scheduling directory scan")
	return state, func() { c.scan(gen, dir) }
}

// scan lists dir off the lock and applies the result if it is still wanted.
func (c *Controller) scan(gen uint64, dir string) {
	start := time.Now()
	entries, err := c.listing.ScanEntries(dir)
	c.metrics.RecordScan(err == nil, len(entries), time.Since(start))

	c.mu.Lock()
	if gen != c.generation {
		c.mu.Unlock()
		c.logger.With(log.F("dir", dir)).Debug("discarding superseded scan")
		return
	}
	state := c.listing.ApplyScan(dir, entries, err)
	c.afterScanLocked(state)
	c.mu.Unlock()

	c.watch(dir)
	c.notify()
}

// afterScanLocked sorts a fresh scan and shows the selection.
func (c *Controller) afterScanLocked(state listing.State) {
	switch state {
	case listing.Ready:
		c.label = ""
		c.applySortLocked()
		c.showSelectedLocked()
	case listing.Empty:
		c.logger.With(log.F("dir", c.listing.DirPath())).WithError(serr.ErrEmptyDirectory).Info("nothing to show")
		c.label = LabelNoImages
		c.current = ""
		c.bitmap = nil
		c.cache.RetainOnly(nil)
	}
}

// applySortLocked re-applies the active field, or the configured default,
// in its remembered direction.
func (c *Controller) applySortLocked() {
	field := c.sort.Active
	if field == types.SortNone {
		field = c.defaultBy
	}
	if field == types.SortNone {
		return
	}
	asc := c.sort.ResolveExplicit(field, c.sort.Ascending(field))
	c.listing.SortBy(field, asc)
}

// Rescan re-reads the active directory, keeping the selection by name.
// Rescans requested while one is running share its result.
func (c *Controller) Rescan() {
	c.mu.Lock()
	dir := c.listing.DirPath()
	state := c.listing.State()
	c.mu.Unlock()
	if dir == "" || (state != listing.Ready && state != listing.Empty) {
		return
	}
	_, _, _ = c.flight.Do(dir, func() (interface{}, error) {
		c.reload(dir, nil)
		return nil, nil
	})
}

func (c *Controller) reload(dir string, changed []string) {
	c.mu.Lock()
	if dir != c.listing.DirPath() {
		c.mu.Unlock()
		return
	}
	if state := c.listing.State(); state != listing.Ready && state != listing.Empty {
		// The pending open scan reads the directory after these changes.
		c.evictLocked(changed)
		c.mu.Unlock()
		return
	}
	c.generation++
	gen := c.generation
	c.mu.Unlock()

	start := time.Now()
	entries, err := c.listing.ScanEntries(dir)
	c.metrics.RecordScan(err == nil, len(entries), time.Since(start))

	c.mu.Lock()
	if gen != c.generation {
		c.mu.Unlock()
		return
	}
	c.evictLocked(changed)
	state := c.listing.Reload(dir, entries, err)
	switch state {
	case listing.Ready:
		c.label = ""
		c.applySortLocked()
		c.showSelectedLocked()
	case listing.Empty:
		c.afterScanLocked(state)
	}
	c.mu.Unlock()

	c.notify()
}

// evictLocked drops changed paths from the cache so they decode afresh.
func (c *Controller) evictLocked(changed []string) {
	if len(changed) == 0 {
		return
	}
	drop := make(map[string]bool, len(changed))
	for _, p := range changed {
		drop[p] = true
	}
	var keep []string
	for _, k := range c.cache.Keys() {
		if !drop[k] {
			keep = append(keep, k)
		}
	}
	c.cache.RetainOnly(keep)
	if drop[c.current] {
		c.current = ""
	}
}

func (c *Controller) startWatcher() error {
	w, err := watch.New(
		watch.WithFilter(c.listing.Supports),
		watch.WithDebounce(time.Duration(c.cfg.Watch.DebounceMs)*time.Millisecond),
	)
	if err != nil {
		return err
	}
	if err := w.Start(); err != nil {
		w.Stop()
		return err
	}
	c.watcher = w

	go func() {
		for change := range w.Changes() {
			c.logger.With(log.F("dir", change.Dir), log.F("files", len(change.Paths))).Debug("directory changed")
			c.reload(change.Dir, change.Paths)
		}
	}()
	return nil
}

func (c *Controller) watch(dir string) {
	if c.watcher == nil {
		return
	}
	select {
	case <-c.closed:
		return
	default:
	}
	if err := c.watcher.SetDirectory(dir); err != nil {
		c.logger.WithError(err).Debug("cannot watch directory")
	}
}
