package services

import (
	"product-comparator/models"
	"product-comparator/utils"
)

// Assembler gathers raw records from one or more sources into a single
// ordered comparison set. Source order is preserved, and within a source the
// provider's result order is preserved.
type Assembler struct {
	logger    *utils.Logger
	extractor *Extractor
}

// NewAssembler creates an Assembler backed by the given extractor.
func NewAssembler(logger *utils.Logger, extractor *Extractor) *Assembler {
	return &Assembler{logger: logger, extractor: extractor}
}

// Assemble merges per-source raw results into one cleaned comparison set.
// Sources that returned nothing simply contribute nothing — a provider
// failure upstream surfaces here as an empty slice, never as an error.
func (a *Assembler) Assemble(resultsBySource map[string][]*models.RawResult, sourceOrder []string) []*models.Listing {
	var raw []*models.RawResult
	for _, source := range sourceOrder {
		results := resultsBySource[source]
		if len(results) == 0 {
			a.logger.Warn("[assemble] Source %s contributed no results", source)
			continue
		}
		raw = append(raw, results...)
	}

	listings := a.extractor.Extract(raw)
	a.logger.Info("[assemble] Comparison set ready: %d listings from %d sources",
		len(listings), len(sourceOrder))
	return listings
}

// RepresentativePolicy picks the single listing that stands for one logical
// item when it is offered by more than one source. Policies are deliberately
// small named functions so a different tie-break can be swapped in without
// touching the normalizer or scorer.
type RepresentativePolicy func(a, b *models.Listing) *models.Listing

// ValueHeuristic is the default representative policy for head-to-head
// comparison: value = rating*2 − price/10000, higher wins. A side with no
// price data loses to a priced side.
func ValueHeuristic(a, b *models.Listing) *models.Listing {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	case a.Price > 0 && b.Price > 0:
		if listingValue(a) > listingValue(b) {
			return a
		}
		return b
	case a.Price > 0:
		return a
	case b.Price > 0:
		return b
	default:
		return a
	}
}

func listingValue(l *models.Listing) float64 {
	return l.Rating*2 - l.Price/10000
}

// BestDeal is the policy used to pick the platform to actually buy the
// winning phone on: deal = rating*20 − price/1000 over priced listings only.
func BestDeal(listings []*models.Listing) *models.Listing {
	var best *models.Listing
	var bestScore float64

	for _, l := range listings {
		if l == nil || l.Price <= 0 {
			continue
		}
		score := l.Rating*20 - l.Price/1000
		if best == nil || score > bestScore {
			best = l
			bestScore = score
		}
	}
	return best
}

// Representative applies the policy to one phone's platform listings.
// Both sides missing yields nil: the comparison is unavailable for that item
// and the caller must not proceed to scoring with it.
func Representative(p *models.PhoneData, policy RepresentativePolicy) *models.Listing {
	if p == nil {
		return nil
	}
	return policy(p.Flipkart, p.Amazon)
}
