// internal/domain/cart/ledger.go
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/asaskevich/EventBus"
	"github.com/sirupsen/logrus"

	"github.com/5spice-online/order.com/internal/domain/catalog"
	"github.com/5spice-online/order.com/internal/infrastructure/storage"
)

// ErrUnknownItem is returned when a quantity increase names an item id
// that does not resolve to any catalog item.
var ErrUnknownItem = errors.New("cart: item not found in catalog")

// Ledger is the authoritative mapping from item identity to quantity for
// a customer session. All mutations funnel through AdjustQuantity; every
// successful mutation is persisted (whole-value replace) before the
// change event is published and control returns to the caller.
//
// Mutations for a given session are expected to arrive one at a time;
// concurrent writers to the same session are not coordinated.
type Ledger struct {
	kv      storage.Store
	catalog *catalog.Store
	bus     EventBus.Bus
	log     *logrus.Logger
}

// NewLedger creates a cart ledger
func NewLedger(kv storage.Store, cat *catalog.Store, bus EventBus.Bus, log *logrus.Logger) *Ledger {
	return &Ledger{
		kv:      kv,
		catalog: cat,
		bus:     bus,
		log:     log,
	}
}

func cartKey(sessionID string) string {
	return fmt.Sprintf("cart:session:%s", sessionID)
}

// Lines returns the ordered line sequence for a session. A missing or
// unreadable cart degrades to an empty ledger.
func (l *Ledger) Lines(ctx context.Context, sessionID string) []Line {
	raw, err := l.kv.Get(ctx, cartKey(sessionID))
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			l.log.WithError(err).Warn("cart unavailable, treating as empty")
		}
		return []Line{}
	}

	var lines []Line
	if err := json.Unmarshal([]byte(raw), &lines); err != nil {
		l.log.WithError(err).Warn("persisted cart is malformed, treating as empty")
		return []Line{}
	}
	return lines
}

// AdjustQuantity is the single mutation entry point.
//
// If a line exists for the item, delta is added to its quantity and the
// line is removed entirely when the result drops to zero or below. If no
// line exists and delta is positive, a new line is created with quantity
// 1 regardless of delta's magnitude — a fresh add always starts at one,
// matching single-tap "+" semantics. A negative delta for an absent line
// is a no-op.
func (l *Ledger) AdjustQuantity(ctx context.Context, sessionID string, itemID, delta int) (Change, error) {
	lines := l.Lines(ctx, sessionID)
	change := Change{SessionID: sessionID, ItemID: itemID}

	idx := -1
	for i := range lines {
		if lines[i].ID == itemID {
			idx = i
			break
		}
	}

	switch {
	case idx >= 0:
		lines[idx].Qty += delta
		if lines[idx].Qty <= 0 {
			lines = append(lines[:idx], lines[idx+1:]...)
			change.Removed = true
		} else {
			change.Quantity = lines[idx].Qty
		}

	case delta > 0:
		item, ok := l.catalog.ItemByID(itemID)
		if !ok {
			return Change{}, ErrUnknownItem
		}
		lines = append(lines, Line{
			ID:       item.ID,
			Name:     item.Name,
			Price:    item.Price,
			Veg:      item.Veg,
			Category: item.Category,
			Qty:      1,
		})
		change.Quantity = 1
		change.Created = true

	default:
		// Decrement on an absent line: nothing to do, nothing to persist.
		return change, nil
	}

	if err := l.persist(ctx, sessionID, lines); err != nil {
		return Change{}, err
	}

	l.bus.Publish(ChangedTopic, sessionID)
	return change, nil
}

// GetQuantity returns the quantity for an item, 0 for absent lines.
// Pure read, no side effects.
func (l *Ledger) GetQuantity(ctx context.Context, sessionID string, itemID int) int {
	for _, line := range l.Lines(ctx, sessionID) {
		if line.ID == itemID {
			return line.Qty
		}
	}
	return 0
}

// TotalItems returns the summed quantity across all lines
func (l *Ledger) TotalItems(ctx context.Context, sessionID string) int {
	total := 0
	for _, line := range l.Lines(ctx, sessionID) {
		total += line.Qty
	}
	return total
}

// Clear empties the ledger, persists the empty state and notifies
func (l *Ledger) Clear(ctx context.Context, sessionID string) error {
	if err := l.kv.Delete(ctx, cartKey(sessionID)); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}

	l.bus.Publish(ChangedTopic, sessionID)
	return nil
}

// persist writes the full serialized ledger, replacing the prior value
func (l *Ledger) persist(ctx context.Context, sessionID string, lines []Line) error {
	data, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("failed to serialize cart: %w", err)
	}

	if err := l.kv.Set(ctx, cartKey(sessionID), string(data)); err != nil {
		return fmt.Errorf("failed to persist cart: %w", err)
	}
	return nil
}
