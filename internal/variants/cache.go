package variants

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"

	"github.com/asb-digital/storefront-engine/internal/catalogue"
)

// Options bundles both derived option views of a variant list.
type Options struct {
	Chassis  []ChassisOption     `json:"chassisOptions"`
	Variants map[string][]string `json:"variantOptions"`
}

// OptionCache memoizes derived options per variant list. Entries are
// keyed by a fingerprint of the list, so a changed list never serves a
// stale entry.
type OptionCache struct {
	mu         sync.Mutex
	entries    map[string]Options
	maxEntries int
}

// NewOptionCache creates an option cache holding at most maxEntries
// derived option sets.
func NewOptionCache(maxEntries int) *OptionCache {
	if maxEntries <= 0 {
		maxEntries = 1000
	}
	return &OptionCache{
		entries:    make(map[string]Options),
		maxEntries: maxEntries,
	}
}

// Options returns the derived chassis and variant options for the given
// combinations, computing and caching them on first sight.
func (c *OptionCache) Options(combinations []catalogue.VariantCombination) Options {
	key := fingerprint(combinations)

	c.mu.Lock()
	if opts, ok := c.entries[key]; ok {
		c.mu.Unlock()
		return opts
	}
	c.mu.Unlock()

	opts := Options{
		Chassis:  ChassisOptions(combinations),
		Variants: VariantOptions(combinations),
	}

	c.mu.Lock()
	if len(c.entries) >= c.maxEntries {
		// Bound reached: drop everything rather than track LRU.
		c.entries = make(map[string]Options)
	}
	c.entries[key] = opts
	c.mu.Unlock()

	return opts
}

// fingerprint hashes the identity of a variant list: the combination ids
// in order plus each variant's chassis key.
func fingerprint(combinations []catalogue.VariantCombination) string {
	h := sha256.New()
	for _, v := range combinations {
		h.Write([]byte(v.CombinationID))
		h.Write([]byte{'|'})
		h.Write([]byte(ChassisKey(v.ChassisData)))
		h.Write([]byte{'\n'})
	}
	return hex.EncodeToString(h.Sum(nil)[:16])
}
