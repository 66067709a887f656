// internal/domain/render/hub.go
package render

import (
	"context"
	"sync"

	"github.com/asaskevich/EventBus"
	"github.com/sirupsen/logrus"

	"github.com/5spice-online/order.com/internal/domain/cart"
	"github.com/5spice-online/order.com/internal/domain/pricing"
)

// Snapshot is the full render state derived after every ledger change:
// the ordered line list, the id→quantity map for the menu grid, and the
// priced totals. Surfaces always receive the whole snapshot — never an
// incremental patch that could drift out of sync.
type Snapshot struct {
	SessionID  string        `json:"session_id"`
	Lines      []cart.Line   `json:"lines"`
	Quantities map[int]int   `json:"quantities"`
	Totals     pricing.Quote `json:"totals"`
}

// Surface is a visual surface that must reflect ledger state after every
// mutation: the menu grid's quantity steppers and the cart drawer.
type Surface interface {
	Refresh(snap Snapshot)
}

// Hub subscribes to the ledger change topic and pushes a freshly derived
// snapshot to every registered surface. EventBus publishes synchronously,
// so all surfaces are refreshed before the mutating call returns.
type Hub struct {
	ledger   *cart.Ledger
	engine   *pricing.Engine
	log      *logrus.Logger
	mu       sync.RWMutex
	surfaces []Surface
	cache    map[string]Snapshot
}

// NewHub creates a render hub and subscribes it to the change topic
func NewHub(ledger *cart.Ledger, engine *pricing.Engine, bus EventBus.Bus, log *logrus.Logger) (*Hub, error) {
	h := &Hub{
		ledger: ledger,
		engine: engine,
		log:    log,
		cache:  make(map[string]Snapshot),
	}

	if err := bus.Subscribe(cart.ChangedTopic, h.onChange); err != nil {
		return nil, err
	}
	return h, nil
}

// Register adds a surface to be refreshed on every ledger change
func (h *Hub) Register(s Surface) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.surfaces = append(h.surfaces, s)
}

// Snapshot returns the latest snapshot for a session, deriving one from
// the ledger when no change has been observed yet.
func (h *Hub) Snapshot(ctx context.Context, sessionID string) Snapshot {
	h.mu.RLock()
	snap, ok := h.cache[sessionID]
	h.mu.RUnlock()
	if ok {
		return snap
	}
	return h.derive(ctx, sessionID)
}

// onChange re-derives the full snapshot and pushes it to every surface.
// Runs synchronously inside the mutating call.
func (h *Hub) onChange(sessionID string) {
	snap := h.derive(context.Background(), sessionID)

	h.mu.RLock()
	surfaces := make([]Surface, len(h.surfaces))
	copy(surfaces, h.surfaces)
	h.mu.RUnlock()

	for _, s := range surfaces {
		s.Refresh(snap)
	}
}

func (h *Hub) derive(ctx context.Context, sessionID string) Snapshot {
	lines := h.ledger.Lines(ctx, sessionID)

	quantities := make(map[int]int, len(lines))
	for _, line := range lines {
		quantities[line.ID] = line.Qty
	}

	snap := Snapshot{
		SessionID:  sessionID,
		Lines:      lines,
		Quantities: quantities,
		Totals:     h.engine.Quote(lines),
	}

	h.mu.Lock()
	h.cache[sessionID] = snap
	h.mu.Unlock()

	return snap
}
