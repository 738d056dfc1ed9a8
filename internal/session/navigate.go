package session

import (
	"imgview/internal/listing"
	"imgview/pkg/types"
)

// Next selects the following entry. It reports whether the selection moved.
func (c *Controller) Next() bool {
	return c.move((*listing.Listing).GoNext)
}

// Prev selects the preceding entry.
func (c *Controller) Prev() bool {
	return c.move((*listing.Listing).GoBack)
}

// First selects the first entry.
func (c *Controller) First() bool {
	return c.move((*listing.Listing).GoFirst)
}

// Last selects the last entry.
func (c *Controller) Last() bool {
	return c.move((*listing.Listing).GoLast)
}

// Select selects entry i.
func (c *Controller) Select(i int) bool {
	return c.move(func(l *listing.Listing) bool { return l.Select(i) })
}

func (c *Controller) move(step func(*listing.Listing) bool) bool {
	c.mu.Lock()
	moved := step(c.listing)
	if moved {
		c.showSelectedLocked()
	}
	c.mu.Unlock()

	if moved {
		c.notify()
	}
	return moved
}

// SortBy sorts by field. Asking for the active field again flips its
// direction. It returns the direction applied.
func (c *Controller) SortBy(field types.SortField) bool {
	c.mu.Lock()
	asc := c.listing.Sort(&c.sort, field)
	c.showSelectedLocked()
	c.mu.Unlock()

	c.notify()
	return asc
}

// SortByExplicit sorts by field in the given direction.
func (c *Controller) SortByExplicit(field types.SortField, asc bool) {
	c.mu.Lock()
	c.sort.ResolveExplicit(field, asc)
	c.listing.SortBy(field, asc)
	c.showSelectedLocked()
	c.mu.Unlock()

	c.notify()
}

// SortSpec returns a copy of the current sort state.
func (c *Controller) SortSpec() types.SortSpec {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sort
}

// State returns the listing state.
func (c *Controller) State() listing.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.listing.State()
}

// Entries returns a copy of the listed entries in display order.
func (c *Controller) Entries() []types.FileEntry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.listing.Entries()
}

// DirPath returns the active directory.
func (c *Controller) DirPath() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.listing.DirPath()
}
