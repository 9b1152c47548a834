package services

import (
	"math"

	"product-comparator/models"
	"product-comparator/utils"
)

// Feature names shared by weight vectors, normalized maps and config.
const (
	FeaturePrice     = "price"
	FeatureRating    = "rating"
	FeatureReviews   = "reviews"
	FeatureBattery   = "battery"
	FeatureCamera    = "camera"
	FeatureStorage   = "storage"
	FeatureProcessor = "processor"
)

// WeightVector maps a feature name to its importance. Weights need not sum
// to 1; scores are divided by the total contributing weight.
type WeightVector map[string]float64

// DefaultProductWeights is the preset for the generic product comparator:
// price 40%, rating 40%, reviews 20%. Overridable via the "weights" block of
// config.json.
func DefaultProductWeights() WeightVector {
	return WeightVector{
		FeaturePrice:   0.4,
		FeatureRating:  0.4,
		FeatureReviews: 0.2,
	}
}

// WeightedScore combines normalized feature values into a single score in
// [0,1]. Only features present in both maps with a positive weight and a
// defined (non-NaN) value contribute.
//
// A total contributing weight of 0 returns 0. That 0 means "no opinion" —
// with all-zero weights every item scores 0 and the set is a global tie, it
// does not mean the items are the worst possible.
func WeightedScore(normalized map[string]float64, weights WeightVector) float64 {
	var score, totalWeight float64

	for feature, weight := range weights {
		if weight <= 0 {
			continue
		}
		value, ok := normalized[feature]
		if !ok || math.IsNaN(value) {
			continue
		}
		score += value * weight
		totalWeight += weight
	}

	if totalWeight == 0 {
		return 0
	}
	return score / totalWeight
}

// ProductScorer ranks a generic multi-source comparison set on price, rating
// and review count. It carries its own degraded-information policy, distinct
// from the phone comparator's zero-weight rule: with a single valid-price
// record that record scores a perfect 1.0, and with none every record scores
// the 0.5 tie marker.
type ProductScorer struct {
	logger  *utils.Logger
	weights WeightVector
}

// NewProductScorer creates a ProductScorer. A nil or empty weight vector
// falls back to DefaultProductWeights.
func NewProductScorer(logger *utils.Logger, weights WeightVector) *ProductScorer {
	if len(weights) == 0 {
		weights = DefaultProductWeights()
	}
	return &ProductScorer{logger: logger, weights: weights}
}

// Weights returns the active weight vector.
func (s *ProductScorer) Weights() WeightVector { return s.weights }

// Score computes normalized features and final scores for the set. The input
// order is preserved. An empty set yields an empty result.
func (s *ProductScorer) Score(listings []*models.Listing) []*models.ScoredListing {
	scored := make([]*models.ScoredListing, len(listings))
	for i, l := range listings {
		scored[i] = &models.ScoredListing{Listing: *l}
	}
	if len(listings) == 0 {
		return scored
	}

	var valid []int
	for i, l := range listings {
		if l.Price > 0 {
			valid = append(valid, i)
		}
	}

	switch len(valid) {
	case 0:
		// No price information anywhere: an even tie, deliberately 0.5
		// rather than 0 so "insufficient information" is distinguishable
		// from "scored worst".
		s.logger.Warn("[score] No listings with a valid price — marking all %d as 0.5 tie", len(listings))
		for _, sc := range scored {
			fillNeutral(sc)
		}
	case 1:
		// A single priced record has nothing to be compared against; it
		// wins outright and the rest stay at the neutral fill.
		only := scored[valid[0]]
		only.Normalized = map[string]float64{
			FeaturePrice:  1.0,
			FeatureRating: only.Rating / 5.0,
		}
		if only.Reviews > 0 {
			only.Normalized[FeatureReviews] = 1.0
		} else {
			only.Normalized[FeatureReviews] = 0.0
		}
		only.FinalScore = 1.0
		for i, sc := range scored {
			if i != valid[0] {
				fillNeutral(sc)
			}
		}
	default:
		s.scoreValid(scored, valid)
	}

	return scored
}

// scoreValid runs the full min-max pipeline over the priced subset. Records
// without a price are left at the neutral fill and never influence the
// normalization ranges.
func (s *ProductScorer) scoreValid(scored []*models.ScoredListing, valid []int) {
	prices := make([]float64, len(valid))
	ratings := make([]float64, len(valid))
	reviews := make([]float64, len(valid))
	for j, i := range valid {
		prices[j] = scored[i].Price
		ratings[j] = missingAsNaN(scored[i].Rating)
		reviews[j] = missingAsNaN(float64(scored[i].Reviews))
	}

	priceN := Normalize(prices, true)
	ratingN := Normalize(ratings, false)
	reviewsN := Normalize(reviews, false)

	for j, i := range valid {
		sc := scored[i]
		sc.Normalized = map[string]float64{
			FeaturePrice:   priceN[j],
			FeatureRating:  ratingN[j],
			FeatureReviews: reviewsN[j],
		}
		sc.FinalScore = WeightedScore(sc.Normalized, s.weights)
	}

	for i, sc := range scored {
		if sc.Normalized == nil {
			s.logger.Debug("[score] %q has no valid price — neutral fill", scored[i].Name)
			fillNeutral(sc)
		}
	}
}

// fillNeutral applies the 0.5 "insufficient information" marker.
func fillNeutral(sc *models.ScoredListing) {
	sc.Normalized = map[string]float64{
		FeaturePrice:   0.5,
		FeatureRating:  0.5,
		FeatureReviews: 0.5,
	}
	sc.FinalScore = 0.5
}

// missingAsNaN maps the 0 "unknown" sentinel to NaN so the normalizer treats
// it as missing instead of as a genuine minimum.
func missingAsNaN(v float64) float64 {
	if v == 0 {
		return math.NaN()
	}
	return v
}

// PhoneScorer is the head-to-head comparator strategy. It scores one phone's
// normalized feature row under user weights (typically 1–5 sliders). Unlike
// ProductScorer it has no price-count degradation: a zero total weight simply
// scores 0 for every phone, which ties the comparison.
type PhoneScorer struct {
	weights WeightVector
}

// NewPhoneScorer creates a PhoneScorer with the given weight vector.
func NewPhoneScorer(weights WeightVector) *PhoneScorer {
	return &PhoneScorer{weights: weights}
}

// Score combines one phone's normalized features under the configured weights.
func (s *PhoneScorer) Score(normalized map[string]float64) float64 {
	return WeightedScore(normalized, s.weights)
}
