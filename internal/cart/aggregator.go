// Package cart maintains the price-inquiry cart: a mapping of cart-line
// identity to product, variant and quantity, persisted write-through to
// the key-value store.
package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/asb-digital/storefront-engine/internal/catalogue"
	"github.com/asb-digital/storefront-engine/internal/kvstore"
	"github.com/asb-digital/storefront-engine/internal/observability"
)

// DefaultStoreKey is the key the serialized line list is persisted under.
// The contact identity helper uses its own key; the two must not collide.
const DefaultStoreKey = "price-inquiry-cart"

// Line is one row of the cart, keyed by product+variant identity. The
// embedded catalogue and variant are snapshots, not live references.
type Line struct {
	ID          string                        `json:"id"`
	CatalogueID string                        `json:"catalogueId"`
	Catalogue   catalogue.CatalogueRecord     `json:"catalogue"`
	Variant     *catalogue.VariantCombination `json:"variant,omitempty"`
	Quantity    int                           `json:"quantity"`
	AddedAt     time.Time                     `json:"addedAt"`
}

// LineID derives the cart-line identity for a product and optional
// variant. Adding the same pair twice always resolves to the same line.
func LineID(catalogueID string, variant *catalogue.VariantCombination) string {
	if variant != nil {
		return catalogueID + "-" + variant.CombinationID
	}
	return "catalogue-" + catalogueID
}

// Aggregator owns the cart state for one session. All mutating
// operations persist the full line list before returning. The line map
// is guarded so concurrent adds to the same line never lose updates.
type Aggregator struct {
	mu     sync.RWMutex
	lines  map[string]*Line
	store  kvstore.Client
	logger *observability.Logger
	key    string
	now    func() time.Time
}

// New creates an aggregator and loads prior state from the store. A
// missing or unparsable entry starts an empty cart; load problems are
// logged, never fatal.
func New(ctx context.Context, store kvstore.Client, logger *observability.Logger, key string) *Aggregator {
	if key == "" {
		key = DefaultStoreKey
	}
	a := &Aggregator{
		lines:  make(map[string]*Line),
		store:  store,
		logger: logger,
		key:    key,
		now:    time.Now,
	}
	a.load(ctx)
	return a
}

func (a *Aggregator) load(ctx context.Context) {
	data, err := a.store.Get(ctx, a.key)
	if err != nil {
		if err != kvstore.ErrNotFound {
			a.logger.Warn().Err(err).Str("key", a.key).Msg("Cart state unreadable, starting empty")
		}
		return
	}

	var lines []Line
	if err := json.Unmarshal(data, &lines); err != nil {
		a.logger.Warn().Err(err).Str("key", a.key).Msg("Cart state corrupt, starting empty")
		return
	}

	for i := range lines {
		line := lines[i]
		a.lines[line.ID] = &line
	}
}

// Add inserts the (product, variant) pair or increments its existing
// line's quantity. The returned line is a copy.
func (a *Aggregator) Add(ctx context.Context, rec catalogue.CatalogueRecord, variant *catalogue.VariantCombination) (Line, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	id := LineID(rec.ID, variant)
	line, ok := a.lines[id]
	if ok {
		line.Quantity++
	} else {
		line = &Line{
			ID:          id,
			CatalogueID: rec.ID,
			Catalogue:   rec.Clone(),
			Quantity:    1,
			AddedAt:     a.now(),
		}
		if variant != nil {
			snapshot := variant.Clone()
			line.Variant = &snapshot
		}
		a.lines[id] = line
	}

	if err := a.persist(ctx); err != nil {
		return Line{}, err
	}
	return *line, nil
}

// Remove deletes the line if present; removing an unknown line is a no-op.
func (a *Aggregator) Remove(ctx context.Context, lineID string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, ok := a.lines[lineID]; !ok {
		return nil
	}
	delete(a.lines, lineID)
	return a.persist(ctx)
}

// SetQuantity overwrites the line's quantity; a quantity of zero or less
// removes the line. Unknown lines are a no-op.
func (a *Aggregator) SetQuantity(ctx context.Context, lineID string, quantity int) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	line, ok := a.lines[lineID]
	if !ok {
		return nil
	}
	if quantity <= 0 {
		delete(a.lines, lineID)
	} else {
		line.Quantity = quantity
	}
	return a.persist(ctx)
}

// Clear deletes all lines.
func (a *Aggregator) Clear(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.lines = make(map[string]*Line)
	return a.persist(ctx)
}

// Count returns the sum of quantities across all lines.
func (a *Aggregator) Count() int {
	a.mu.RLock()
	defer a.mu.RUnlock()

	total := 0
	for _, line := range a.lines {
		total += line.Quantity
	}
	return total
}

// Lines returns copies of all lines, oldest first.
func (a *Aggregator) Lines() []Line {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.snapshot()
}

// snapshot copies lines in AddedAt order; callers must hold the lock.
func (a *Aggregator) snapshot() []Line {
	out := make([]Line, 0, len(a.lines))
	for _, line := range a.lines {
		out = append(out, *line)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].AddedAt.Equal(out[j].AddedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].AddedAt.Before(out[j].AddedAt)
	})
	return out
}

// persist writes the full line list through to the store; callers must
// hold the lock.
func (a *Aggregator) persist(ctx context.Context) error {
	data, err := json.Marshal(a.snapshot())
	if err != nil {
		return fmt.Errorf("marshal cart state: %w", err)
	}
	if err := a.store.Set(ctx, a.key, data, 0); err != nil {
		return fmt.Errorf("persist cart state: %w", err)
	}
	return nil
}
