// internal/domain/cart/entity.go
package cart

// Line represents one cart entry for one distinct item. Price, name and
// category are snapshotted at add time; at most one line exists per item
// id and a line is removed entirely once its quantity reaches zero.
type Line struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Veg      bool    `json:"veg"`
	Category string  `json:"category"`
	Qty      int     `json:"qty"`
}

// Change describes the outcome of a single ledger mutation
type Change struct {
	SessionID string `json:"session_id"`
	ItemID    int    `json:"item_id"`
	Quantity  int    `json:"quantity"` // quantity after the mutation, 0 when removed
	Created   bool   `json:"created"`
	Removed   bool   `json:"removed"`
}

// ChangedTopic is the event bus topic published after every successful
// ledger mutation. Subscribers re-pull a full snapshot; the payload is
// only the session id of the mutated ledger.
const ChangedTopic = "cart:changed"
