package serp

import (
	"fmt"
	"hash/fnv"
	"strings"
	"time"

	"product-comparator/models"
)

// Mock result variants appended to the query to mimic how retail titles
// differ across listings of the same product.
var mockVariants = []string{
	"(128 GB, Black)",
	"(256 GB, Blue) with Offer",
	"- Renewed, 128 GB",
	"(512 GB, Titanium)",
	"(128 GB, Silver) + Exchange",
}

// mockResults produces deterministic pseudo search results for offline use.
// The same (query, site) pair always yields the same records: prices share a
// per-query base so cross-site comparison stays meaningful, and every field
// goes through the same raw-text shape a real provider would deliver.
func (c *Client) mockResults(query, site string, limit int) []*models.RawResult {
	if limit <= 0 {
		limit = len(mockVariants)
	}
	if limit > len(mockVariants) {
		limit = len(mockVariants)
	}

	base := 10000 + hashOf(strings.ToLower(query))%80000
	now := time.Now()

	results := make([]*models.RawResult, 0, limit)
	for i := 0; i < limit; i++ {
		h := hashOf(fmt.Sprintf("%s|%s|%d", strings.ToLower(query), site, i))

		price := int64(base) + int64(h%12000) - 6000
		if price < 1000 {
			price = 1000 + int64(h%500)
		}
		rating := 3.5 + float64(h%12)/10.0 // 3.5–4.6
		reviews := 500 + h%25000

		results = append(results, &models.RawResult{
			Title:    fmt.Sprintf("%s %s", query, mockVariants[i]),
			RawPrice: "₹" + groupThousands(price),
			Rating:   fmt.Sprintf("%.1f", rating),
			Reviews:  fmt.Sprintf("%d", reviews),
			Snippet: fmt.Sprintf("Buy %s online at ₹%s. Rated %.1f stars with %s reviews.",
				query, groupThousands(price), rating, groupThousands(int64(reviews))),
			Link:      fmt.Sprintf("https://%s/product/%s-%d", site, slugify(query), i+1),
			ImageURL:  fmt.Sprintf("https://%s/images/%s-%d.jpg", site, slugify(query), i+1),
			Source:    site,
			FetchedAt: now,
		})
	}

	c.logger.Info("[serp] %s: generated %d mock results for %q", site, len(results), query)
	return results
}

func hashOf(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return h.Sum64()
}

// groupThousands renders 1234567 as "1,234,567".
func groupThousands(n int64) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	return s + "," + strings.Join(parts, ",")
}

func slugify(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "-")
}
