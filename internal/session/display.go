package session

import (
	"imgview/internal/codec"
	"imgview/internal/log"
)

// showSelectedLocked makes the selected entry the displayed bitmap and
// trims the cache to the neighbourhood of the selection.
func (c *Controller) showSelectedLocked() {
	path := c.listing.SelectedPath()
	if path == "" {
		c.current = ""
		c.bitmap = nil
		return
	}
	if path != c.current || c.bitmap == nil {
		c.bitmap = c.bitmapLocked(path)
		c.current = path
	}
	c.cacheNeighborsLocked()
}

// bitmapLocked returns the cached bitmap for path or decodes it on the
// calling goroutine. c.mu must be held so no RetainOnly runs between Has and
// Get.
func (c *Controller) bitmapLocked(path string) *codec.Bitmap {
	if c.cache.Has(path) {
		return c.cache.Get(path)
	}

	bm, err := c.decoder.Decode(path)
	if err != nil || bm == nil {
		c.logger.With(log.F("path", path)).WithError(err).Warn("cannot display image")
		bm = codec.Placeholder(path, err)
	}
	c.cache.Put(path, bm)
	return bm
}

// cacheNeighborsLocked keeps the configured window around the selection
// decoded and drops everything else.
func (c *Controller) cacheNeighborsLocked() {
	c.cache.RetainOnly(c.listing.NeighborPaths(c.cfg.Cache.Left, c.cfg.Cache.Right))
}
