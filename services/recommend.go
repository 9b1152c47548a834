package services

import "product-comparator/models"

// Recommend returns the flat projection of the top-scoring listing, or nil
// for an empty set. Ties go to the first-encountered record, so selection is
// stable with respect to assembly order.
func Recommend(scored []*models.ScoredListing) *models.Recommendation {
	if len(scored) == 0 {
		return nil
	}

	best := scored[0]
	for _, sc := range scored[1:] {
		if sc.FinalScore > best.FinalScore {
			best = sc
		}
	}

	return &models.Recommendation{
		Name:     best.Name,
		Source:   best.Source,
		Price:    best.Price,
		RawPrice: best.RawPrice,
		Rating:   best.Rating,
		Reviews:  best.Reviews,
		Link:     best.Link,
		Score:    best.FinalScore,
		ImageURL: best.ImageURL,
	}
}
