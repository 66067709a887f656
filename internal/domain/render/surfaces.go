// internal/domain/render/surfaces.go
package render

import "sync"

// MenuGrid mirrors the menu page's per-item quantity steppers. The
// decrement control is visible only while the item is in the cart.
type MenuGrid struct {
	mu    sync.RWMutex
	state map[string]map[int]int // session -> item id -> qty
}

// NewMenuGrid creates an empty menu grid surface
func NewMenuGrid() *MenuGrid {
	return &MenuGrid{state: make(map[string]map[int]int)}
}

// Refresh replaces the session's quantity state with the snapshot
func (g *MenuGrid) Refresh(snap Snapshot) {
	g.mu.Lock()
	defer g.mu.Unlock()

	quantities := make(map[int]int, len(snap.Quantities))
	for id, qty := range snap.Quantities {
		quantities[id] = qty
	}
	g.state[snap.SessionID] = quantities
}

// Quantity returns the displayed quantity for an item
func (g *MenuGrid) Quantity(sessionID string, itemID int) int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.state[sessionID][itemID]
}

// DecrementVisible reports whether the "–" control is shown for an item
func (g *MenuGrid) DecrementVisible(sessionID string, itemID int) bool {
	return g.Quantity(sessionID, itemID) > 0
}

// CartDrawer mirrors the slide-in cart: the line list and the totals
// block underneath it.
type CartDrawer struct {
	mu    sync.RWMutex
	state map[string]Snapshot
}

// NewCartDrawer creates an empty cart drawer surface
func NewCartDrawer() *CartDrawer {
	return &CartDrawer{state: make(map[string]Snapshot)}
}

// Refresh replaces the session's drawer contents with the snapshot
func (d *CartDrawer) Refresh(snap Snapshot) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.state[snap.SessionID] = snap
}

// Contents returns the drawer's current snapshot for a session
func (d *CartDrawer) Contents(sessionID string) (Snapshot, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	snap, ok := d.state[sessionID]
	return snap, ok
}
