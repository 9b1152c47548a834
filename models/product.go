package models

import "time"

// RawResult holds one unprocessed search result as returned by a provider.
// This is written to CSV before any extraction or scoring.
type RawResult struct {
	Title     string
	RawPrice  string
	Rating    string
	Reviews   string
	Snippet   string
	Link      string
	ImageURL  string
	Source    string
	FetchedAt time.Time
}

// Listing is one cleaned product observation from one source, ready for
// comparison. Price is 0 when no plausible price could be extracted; the
// same sentinel applies to Rating and Reviews.
type Listing struct {
	ID       int64
	Name     string
	Source   string
	RawPrice string
	Price    float64
	Rating   float64
	Reviews  int
	Link     string
	ImageURL string
	Specs    *PhoneSpecs
	ItemKey  string
}

// PhoneSpecs carries the fixed spec fields used by the head-to-head phone
// comparison. Values are best-effort estimates when scraped pages do not
// expose them directly.
type PhoneSpecs struct {
	BatteryMAh   float64
	CameraMP     float64
	StorageGB    float64
	ProcessorGHz float64
}

// ScoredListing augments a Listing with its per-feature normalized values
// and the final weighted score. Recomputed whenever the comparison set or
// the weight vector changes; never persisted as-is.
type ScoredListing struct {
	Listing
	Normalized map[string]float64
	FinalScore float64
}

// Recommendation is the flat projection of the top-scoring listing.
type Recommendation struct {
	Name     string
	Source   string
	Price    float64
	RawPrice string
	Rating   float64
	Reviews  int
	Link     string
	Score    float64
	ImageURL string
}

// PhoneData groups the per-platform listings for one phone, as returned by
// the phone provider. Either platform pointer may be nil when the phone was
// not found there.
type PhoneData struct {
	Name        string
	Flipkart    *Listing
	Amazon      *Listing
	LastScraped time.Time
}

// Platforms returns the non-nil platform listings in a stable order.
func (p *PhoneData) Platforms() []*Listing {
	var out []*Listing
	if p.Flipkart != nil {
		out = append(out, p.Flipkart)
	}
	if p.Amazon != nil {
		out = append(out, p.Amazon)
	}
	return out
}
