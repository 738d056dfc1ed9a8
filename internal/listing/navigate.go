package listing

// IsFirst reports whether the cursor is on the first entry.
func (l *Listing) IsFirst() bool {
	return l.selected == 0
}

// IsLast reports whether the cursor is on the last entry. It is true for an
// empty listing.
func (l *Listing) IsLast() bool {
	if len(l.entries) == 0 {
		return true
	}
	return l.selected == len(l.entries)-1
}

// GoNext moves to the next entry and reports whether the cursor moved.
func (l *Listing) GoNext() bool {
	return l.move(func() int { return l.selected + 1 }, l.IsLast)
}

// GoBack moves to the previous entry.
func (l *Listing) GoBack() bool {
	return l.move(func() int { return l.selected - 1 }, l.IsFirst)
}

// GoFirst moves to the first entry.
func (l *Listing) GoFirst() bool {
	return l.move(func() int { return 0 }, l.IsFirst)
}

// GoLast moves to the last entry.
func (l *Listing) GoLast() bool {
	return l.move(func() int { return len(l.entries) - 1 }, l.IsLast)
}

// Select moves the cursor to index i. Out of range indexes are ignored.
func (l *Listing) Select(i int) bool {
	if i < 0 || i >= len(l.entries) || i == l.selected {
		return false
	}
	return l.move(func() int { return i }, func() bool { return false })
}

func (l *Listing) move(target func() int, atEdge func() bool) bool {
	l.enter()
	defer l.leave()

	if len(l.entries) == 0 || atEdge() {
		return false
	}
	l.selected = target()
	return true
}
