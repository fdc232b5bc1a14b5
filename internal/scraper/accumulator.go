package scraper

import "github.com/law-makers/grabfood/pkg/models"

// Accumulator collects listings across snapshots for a single run. Later
// snapshots re-contain earlier listings; duplicates are removed at save time.
type Accumulator struct {
	listings []models.Listing
}

// NewAccumulator returns an empty Accumulator.
func NewAccumulator() *Accumulator {
	return &Accumulator{}
}

// Add appends listings in order.
func (a *Accumulator) Add(listings ...models.Listing) {
	a.listings = append(a.listings, listings...)
}

// Listings returns a copy of everything accumulated so far.
func (a *Accumulator) Listings() []models.Listing {
	out := make([]models.Listing, len(a.listings))
	copy(out, a.listings)
	return out
}

// Len reports the number of accumulated listings, duplicates included.
func (a *Accumulator) Len() int {
	return len(a.listings)
}
