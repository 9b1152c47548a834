package services

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"product-comparator/models"
	"product-comparator/utils"
)

// minPlausiblePrice rejects bare numbers that are more likely model numbers
// ("iPhone 15") or storage sizes than prices.
const minPlausiblePrice = 1000

var (
	// commaPriceRegexps match currency-marked amounts that contain at least
	// one comma group. Comma-separated numbers are far more reliably prices
	// than bare digit runs, so these are tried first.
	commaPriceRegexps = []*regexp.Regexp{
		regexp.MustCompile(`[₹$€£]\s*\d+(?:,\d+)+(?:\.\d+)?`),
		regexp.MustCompile(`INR\s*\d+(?:,\d+)+(?:\.\d+)?`),
		regexp.MustCompile(`Rs\.\s*\d+(?:,\d+)+(?:\.\d+)?`),
	}
	// simplePriceRegexp is the fallback: a currency symbol followed by a run
	// of at least 4 digits, no comma grouping required.
	simplePriceRegexp = regexp.MustCompile(`[₹$€£]\s*\d{4,}(?:\.\d+)?`)

	// ratingKeywordRegexps capture a decimal next to a rating indicator.
	ratingKeywordRegexps = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(\d+\.\d+)\s*(?:stars?|★|rating|out of 5)`),
		regexp.MustCompile(`(?i)rating:\s*(\d+\.\d+)`),
	}
	bareDecimalRegexp = regexp.MustCompile(`\b(\d+\.\d+)\b`)

	reviewsRegexp = regexp.MustCompile(`(?i)(\d+(?:,\d+)*)\s*(?:reviews?|ratings?)`)

	nonPriceCharsRegexp = regexp.MustCompile(`[^\d.,]`)
)

// Extractor converts free-form scraped text into numeric listing fields.
// All methods degrade to the 0 sentinel on malformed input; none panic.
type Extractor struct {
	logger *utils.Logger
}

// NewExtractor creates an Extractor with the given logger.
func NewExtractor(logger *utils.Logger) *Extractor {
	return &Extractor{logger: logger}
}

// Extract turns raw search results into cleaned Listings, deduplicating by
// link. Results without any usable title are dropped.
func (e *Extractor) Extract(raw []*models.RawResult) []*models.Listing {
	seen := make(map[string]struct{})
	result := make([]*models.Listing, 0, len(raw))

	for _, r := range raw {
		title := normaliseText(r.Title)
		if title == "" {
			e.logger.Warn("[extract] Dropping result with empty title from %s", r.Source)
			continue
		}

		link := strings.TrimSpace(r.Link)
		if link != "" {
			if _, dup := seen[link]; dup {
				e.logger.Debug("[extract] Duplicate link skipped: %s", link)
				continue
			}
			seen[link] = struct{}{}
		}

		priceText := strings.TrimSpace(r.RawPrice)
		if priceText == "" || priceText == "0" {
			// Price not in the dedicated field — mine the snippet, then the title.
			priceText = ExtractPriceText(r.Snippet)
			if priceText == "0" {
				priceText = ExtractPriceText(r.Title)
			}
		}

		// Providers that expose rating/reviews as dedicated fields deliver
		// plain numbers; everything else goes through the text extractors.
		rating := parseDirectRating(r.Rating)
		if rating == 0 {
			rating = ExtractRating(r.Rating)
		}
		if rating == 0 {
			rating = ExtractRating(r.Snippet)
		}
		reviews := parseDirectCount(r.Reviews)
		if reviews == 0 {
			reviews = ExtractReviews(r.Reviews)
		}
		if reviews == 0 {
			reviews = ExtractReviews(r.Snippet)
		}

		result = append(result, &models.Listing{
			Name:     title,
			Source:   normaliseSource(r.Source),
			RawPrice: priceText,
			Price:    ParsePrice(priceText),
			Rating:   rating,
			Reviews:  reviews,
			Link:     link,
			ImageURL: strings.TrimSpace(r.ImageURL),
		})
	}

	e.logger.Info("[extract] Extracted %d → %d listings (dropped %d)",
		len(raw), len(result), len(raw)-len(result))
	return result
}

// ExtractPriceText scans a text fragment for the most plausible price
// substring. Comma-grouped currency amounts win over bare digit runs, and
// anything parsing below minPlausiblePrice is discarded as a false positive.
// Returns "0" when nothing qualifies.
func ExtractPriceText(text string) string {
	if text == "" {
		return "0"
	}

	for _, re := range commaPriceRegexps {
		for _, match := range re.FindAllString(text, -1) {
			if ParsePrice(match) >= minPlausiblePrice {
				return match
			}
		}
	}

	for _, match := range simplePriceRegexp.FindAllString(text, -1) {
		if ParsePrice(match) >= minPlausiblePrice {
			return match
		}
	}

	return "0"
}

// ParsePrice converts a price string to its numeric value.
// Separator disambiguation:
//
//	"60,000.50"  → dot is rightmost, commas are thousands → 60000.50
//	"60.000,50"  → comma is rightmost, dots are thousands → 60000.50
//	"1,299"      → trailing group of 3 digits → thousands → 1299
//	"12,5"       → trailing group of 1 digit → decimal → 12.5
//	"1.234.567"  → multiple dots → all thousands → 1234567
//
// Any parse failure yields 0.
func ParsePrice(raw string) float64 {
	cleaned := nonPriceCharsRegexp.ReplaceAllString(raw, "")
	// Currency prefixes like "Rs." leave their punctuation behind; a stray
	// leading dot would otherwise flip the separator disambiguation.
	cleaned = strings.Trim(cleaned, ".,")
	if cleaned == "" {
		return 0
	}

	hasComma := strings.Contains(cleaned, ",")
	hasDot := strings.Contains(cleaned, ".")

	switch {
	case hasComma && hasDot:
		if strings.LastIndex(cleaned, ".") > strings.LastIndex(cleaned, ",") {
			cleaned = strings.ReplaceAll(cleaned, ",", "")
		} else {
			cleaned = strings.ReplaceAll(cleaned, ".", "")
			cleaned = strings.ReplaceAll(cleaned, ",", ".")
		}
	case hasComma:
		tail := cleaned[strings.LastIndex(cleaned, ",")+1:]
		if len(tail) == 2 || len(tail) == 3 {
			cleaned = strings.ReplaceAll(cleaned, ",", "")
		} else {
			cleaned = strings.ReplaceAll(cleaned, ",", ".")
		}
	case strings.Count(cleaned, ".") > 1:
		cleaned = strings.ReplaceAll(cleaned, ".", "")
	}

	val, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return val
}

// ExtractRating finds a 0–5 rating in a text fragment. Decimals adjacent to
// rating keywords are preferred; a bare decimal in [1,5] is the fallback.
func ExtractRating(text string) float64 {
	if text == "" {
		return 0
	}

	for _, re := range ratingKeywordRegexps {
		if m := re.FindStringSubmatch(text); len(m) >= 2 {
			if val, err := strconv.ParseFloat(m[1], 64); err == nil && val <= 5 {
				return val
			}
		}
	}

	for _, m := range bareDecimalRegexp.FindAllStringSubmatch(text, -1) {
		val, err := strconv.ParseFloat(m[1], 64)
		if err == nil && val >= 1 && val <= 5 {
			return val
		}
	}

	return 0
}

// ExtractReviews finds a review or rating count in a text fragment.
func ExtractReviews(text string) int {
	if text == "" {
		return 0
	}

	m := reviewsRegexp.FindStringSubmatch(text)
	if len(m) < 2 {
		return 0
	}

	digits := strings.ReplaceAll(m[1], ",", "")
	val, err := strconv.Atoi(digits)
	if err != nil || val < 0 {
		return 0
	}
	return val
}

// parseDirectRating accepts a bare numeric rating field in (0,5].
func parseDirectRating(s string) float64 {
	val, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || val <= 0 || val > 5 {
		return 0
	}
	return val
}

// parseDirectCount accepts a bare numeric count field, comma groups allowed.
func parseDirectCount(s string) int {
	digits := strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	val, err := strconv.Atoi(digits)
	if err != nil || val < 0 {
		return 0
	}
	return val
}

// normaliseText strips leading/trailing whitespace and collapses internal whitespace.
func normaliseText(s string) string {
	s = strings.TrimSpace(s)
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return unicode.IsSpace(r)
	})
	return strings.Join(fields, " ")
}

func normaliseSource(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
