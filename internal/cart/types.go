// Package cart implements the device-scoped shopping cart and the
// checkout flow that turns cart lines into purchase records.
package cart

import (
	"github.com/literllyHimm/Cinewave/internal/catalog"
)

// Line is a single cart entry. The payload keeps the full catalog item so
// the cart can render without refetching upstream.
type Line struct {
	ItemID    int64             `json:"item_id"`
	MediaType catalog.MediaType `json:"media_type"`
	Item      catalog.Item      `json:"item"`
}

// Cart is the full device cart as mirrored in the cache.
type Cart struct {
	Lines []Line `json:"lines"`
}

// Contains reports whether the cart already holds the item.
func (c Cart) Contains(itemID int64) bool {
	for _, line := range c.Lines {
		if line.ItemID == itemID {
			return true
		}
	}
	return false
}
