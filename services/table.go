package services

import (
	"fmt"
	"sort"
	"strings"

	"product-comparator/models"
)

// ComparisonTable is the uniform tabular shape handed to the scorer and the
// presentation layer: Name, Source, Price, Rating, Reviews per row, plus the
// normalized and score columns once NormalizeAndScore has run.
type ComparisonTable struct {
	Query string
	Rows  []*models.ScoredListing
}

// BuildComparisonTable wraps a cleaned comparison set into the table shape.
// Scores are zero until NormalizeAndScore is called.
func BuildComparisonTable(query string, listings []*models.Listing) *ComparisonTable {
	rows := make([]*models.ScoredListing, len(listings))
	for i, l := range listings {
		rows[i] = &models.ScoredListing{Listing: *l}
	}
	return &ComparisonTable{Query: query, Rows: rows}
}

// NormalizeAndScore recomputes the normalized-feature and final-score columns
// from scratch using the given scorer. Earlier scores are discarded: the
// table never assumes a previous normalization is still valid.
func (t *ComparisonTable) NormalizeAndScore(scorer *ProductScorer) {
	listings := make([]*models.Listing, len(t.Rows))
	for i, row := range t.Rows {
		listings[i] = &row.Listing
	}
	t.Rows = scorer.Score(listings)
}

// Recommendation returns the top-scoring row as a flat projection, or nil
// when the table is empty.
func (t *ComparisonTable) Recommendation() *models.Recommendation {
	return Recommend(t.Rows)
}

// SortedByScore returns the rows ordered by final score, best first. The
// sort is stable so assembly order still breaks ties.
func (t *ComparisonTable) SortedByScore() []*models.ScoredListing {
	sorted := make([]*models.ScoredListing, len(t.Rows))
	copy(sorted, t.Rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].FinalScore > sorted[j].FinalScore
	})
	return sorted
}

// Print renders the ranked comparison and the recommendation to stdout.
func (t *ComparisonTable) Print() {
	sep := strings.Repeat("═", 70)
	thin := strings.Repeat("─", 70)

	fmt.Printf("\n\033[1;35m%s\033[0m\n", sep)
	fmt.Printf("\033[1;35m  🛒 PRODUCT COMPARISON — %q\033[0m\n", t.Query)
	fmt.Printf("\033[1;35m%s\033[0m\n\n", sep)

	if len(t.Rows) == 0 {
		fmt.Printf("  No products to display\n\n")
		return
	}

	fmt.Printf("  %-38s %-14s %-12s %-7s %-9s %s\n",
		"Product", "Source", "Price", "Rating", "Reviews", "Score")
	fmt.Printf("  %s\n", thin)

	for _, row := range t.SortedByScore() {
		price := row.RawPrice
		if price == "" || price == "0" {
			price = "—"
		}
		fmt.Printf("  %-38s %-14s %-12s %-7.1f %-9d \033[1;32m%.3f\033[0m\n",
			truncate(row.Name, 36), row.Source, truncate(price, 12),
			row.Rating, row.Reviews, row.FinalScore)
	}
	fmt.Println()

	if rec := t.Recommendation(); rec != nil {
		fmt.Printf("\033[1;33m  Best Pick\033[0m\n")
		fmt.Printf("  %s\n", thin)
		fmt.Printf("  %s\n", truncate(rec.Name, 66))
		fmt.Printf("  Source : %s\n", rec.Source)
		fmt.Printf("  Price  : \033[1;32m%s\033[0m\n", rec.RawPrice)
		fmt.Printf("  Rating : %.1f ★ (%d reviews)\n", rec.Rating, rec.Reviews)
		fmt.Printf("  Score  : \033[1m%.3f\033[0m\n", rec.Score)
		if rec.Link != "" {
			fmt.Printf("  Link   : %s\n", rec.Link)
		}
	}

	fmt.Printf("\n\033[1;35m%s\033[0m\n\n", sep)
}

// truncate shortens s to max characters. Counting runes, not bytes: scraped
// text carries ₹ and ★, and slicing those mid-sequence would print mojibake.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
