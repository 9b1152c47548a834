package services

import (
	"fmt"
	"math"
	"strings"

	"product-comparator/models"
	"product-comparator/utils"
)

// PhoneComparison holds the outcome of a head-to-head comparison between two
// phones, each possibly listed on several platforms.
type PhoneComparison struct {
	Phone1, Phone2 *models.PhoneData
	Rep1, Rep2     *models.Listing
	Score1, Score2 float64
	Weights        WeightVector
}

// PhoneComparator runs the head-to-head pipeline: pick a representative per
// phone, min-max normalize every platform row of both phones together, then
// score the representatives under the user's weights.
type PhoneComparator struct {
	logger *utils.Logger
	scorer *PhoneScorer
	policy RepresentativePolicy
}

// NewPhoneComparator creates a comparator with the given weights and
// representative policy. A nil policy defaults to ValueHeuristic.
func NewPhoneComparator(logger *utils.Logger, weights WeightVector, policy RepresentativePolicy) *PhoneComparator {
	if policy == nil {
		policy = ValueHeuristic
	}
	return &PhoneComparator{
		logger: logger,
		scorer: NewPhoneScorer(weights),
		policy: policy,
	}
}

// Compare scores two phones against each other. It fails when either phone
// has no platform data at all — scoring must never run with zero valid
// records for a side.
func (c *PhoneComparator) Compare(p1, p2 *models.PhoneData, weights WeightVector) (*PhoneComparison, error) {
	rep1 := Representative(p1, c.policy)
	rep2 := Representative(p2, c.policy)
	if rep1 == nil {
		return nil, fmt.Errorf("no platform data for %q — comparison unavailable", p1.Name)
	}
	if rep2 == nil {
		return nil, fmt.Errorf("no platform data for %q — comparison unavailable", p2.Name)
	}

	rows := append(p1.Platforms(), p2.Platforms()...)
	normalized := normalizePhoneRows(rows)

	scorer := c.scorer
	if weights != nil {
		scorer = NewPhoneScorer(weights)
	}

	cmp := &PhoneComparison{
		Phone1:  p1,
		Phone2:  p2,
		Rep1:    rep1,
		Rep2:    rep2,
		Score1:  scorer.Score(normalized[rep1]),
		Score2:  scorer.Score(normalized[rep2]),
		Weights: scorer.weights,
	}

	c.logger.Info("[phones] %q %.3f vs %q %.3f",
		p1.Name, cmp.Score1, p2.Name, cmp.Score2)
	return cmp, nil
}

// normalizePhoneRows min-max rescales every comparable feature across all
// platform rows of both phones. Price is inverted; missing spec blocks
// become NaN so they drop out of the weighted score.
func normalizePhoneRows(rows []*models.Listing) map[*models.Listing]map[string]float64 {
	column := func(get func(*models.Listing) float64) []float64 {
		vals := make([]float64, len(rows))
		for i, r := range rows {
			vals[i] = get(r)
		}
		return vals
	}
	spec := func(get func(*models.PhoneSpecs) float64) func(*models.Listing) float64 {
		return func(l *models.Listing) float64 {
			if l.Specs == nil {
				return math.NaN()
			}
			return get(l.Specs)
		}
	}

	normalizedCols := map[string][]float64{
		FeaturePrice:     Normalize(column(func(l *models.Listing) float64 { return missingAsNaN(l.Price) }), true),
		FeatureRating:    Normalize(column(func(l *models.Listing) float64 { return missingAsNaN(l.Rating) }), false),
		FeatureBattery:   Normalize(column(spec(func(s *models.PhoneSpecs) float64 { return s.BatteryMAh })), false),
		FeatureCamera:    Normalize(column(spec(func(s *models.PhoneSpecs) float64 { return s.CameraMP })), false),
		FeatureStorage:   Normalize(column(spec(func(s *models.PhoneSpecs) float64 { return s.StorageGB })), false),
		FeatureProcessor: Normalize(column(spec(func(s *models.PhoneSpecs) float64 { return s.ProcessorGHz })), false),
	}

	out := make(map[*models.Listing]map[string]float64, len(rows))
	for i, r := range rows {
		features := make(map[string]float64, len(normalizedCols))
		for name, col := range normalizedCols {
			features[name] = col[i]
		}
		out[r] = features
	}
	return out
}

// Winner returns the higher-scoring phone's data, its score and the margin.
// A nil first return means the comparison is a tie.
func (cmp *PhoneComparison) Winner() (*models.PhoneData, float64, float64) {
	switch {
	case cmp.Score1 > cmp.Score2:
		return cmp.Phone1, cmp.Score1, cmp.Score1 - cmp.Score2
	case cmp.Score2 > cmp.Score1:
		return cmp.Phone2, cmp.Score2, cmp.Score2 - cmp.Score1
	default:
		return nil, cmp.Score1, 0
	}
}

// Verdict translates the score margin into a one-line judgement.
func (cmp *PhoneComparison) Verdict() string {
	winner, _, diff := cmp.Winner()
	if winner == nil {
		return "It's a tie — both phones score the same under your priorities."
	}
	switch {
	case diff > 0.2:
		return "Strong recommendation — it clearly outperforms the other under your priorities."
	case diff > 0.1:
		return "Good choice — it performs better according to your preferences."
	default:
		return "Slight edge — the phones are very close, but this one is ahead."
	}
}

// Print renders the platform view, the representatives and the verdict.
func (cmp *PhoneComparison) Print() {
	sep := strings.Repeat("═", 70)
	thin := strings.Repeat("─", 70)

	fmt.Printf("\n\033[1;35m%s\033[0m\n", sep)
	fmt.Printf("\033[1;35m  📱 PHONE HEAD-TO-HEAD\033[0m\n")
	fmt.Printf("\033[1;35m%s\033[0m\n\n", sep)

	for _, p := range []*models.PhoneData{cmp.Phone1, cmp.Phone2} {
		fmt.Printf("\033[1;33m  %s\033[0m\n", p.Name)
		fmt.Printf("  %s\n", thin)
		for _, l := range p.Platforms() {
			fmt.Printf("  %-10s ₹%-10.0f %.1f ★  (%d reviews)\n",
				l.Source, l.Price, l.Rating, l.Reviews)
			if l.Specs != nil {
				fmt.Printf("             %.0f mAh | %.0f MP | %.0f GB | %.1f GHz\n",
					l.Specs.BatteryMAh, l.Specs.CameraMP, l.Specs.StorageGB, l.Specs.ProcessorGHz)
			}
		}
		fmt.Println()
	}

	fmt.Printf("\033[1;33m  Weighted Scores\033[0m\n")
	fmt.Printf("  %s\n", thin)
	fmt.Printf("  %-40s \033[1;32m%.3f\033[0m  (via %s)\n", cmp.Phone1.Name, cmp.Score1, cmp.Rep1.Source)
	fmt.Printf("  %-40s \033[1;32m%.3f\033[0m  (via %s)\n", cmp.Phone2.Name, cmp.Score2, cmp.Rep2.Source)
	fmt.Println()

	winner, score, diff := cmp.Winner()
	fmt.Printf("\033[1;33m  Recommendation\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if winner == nil {
		fmt.Printf("  %s\n", cmp.Verdict())
	} else {
		fmt.Printf("  🏆 \033[1m%s\033[0m — score %.3f (+%.3f)\n", winner.Name, score, diff)
		fmt.Printf("  %s\n", cmp.Verdict())
		if deal := BestDeal(winner.Platforms()); deal != nil {
			fmt.Printf("  Best platform: \033[1m%s\033[0m at ₹%.0f (%.1f ★, %d reviews)\n",
				deal.Source, deal.Price, deal.Rating, deal.Reviews)
		}
	}

	fmt.Printf("\n\033[1;35m%s\033[0m\n\n", sep)
}
