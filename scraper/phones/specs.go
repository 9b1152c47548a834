package phones

import (
	"fmt"
	"hash/fnv"
	"strings"

	"product-comparator/models"
)

// EstimateSpecs derives plausible hardware specs from name patterns. Used
// whenever the scraped page does not expose the real spec sheet.
func EstimateSpecs(name string) *models.PhoneSpecs {
	lower := strings.ToLower(name)

	specs := &models.PhoneSpecs{
		BatteryMAh:   4000,
		CameraMP:     48,
		StorageGB:    128,
		ProcessorGHz: 2.8,
	}

	switch {
	case containsAny(lower, "pro max", "ultra", "note"):
		specs.BatteryMAh = 5000
	case containsAny(lower, "pro", "plus"):
		specs.BatteryMAh = 4500
	}

	if containsAny(lower, "pro", "ultra") {
		specs.CameraMP = 108
	}

	switch {
	case containsAny(lower, "512gb", "512 gb"):
		specs.StorageGB = 512
	case containsAny(lower, "256gb", "256 gb"):
		specs.StorageGB = 256
	case containsAny(lower, "64gb", "64 gb"):
		specs.StorageGB = 64
	}

	switch {
	case containsAny(lower, "15 pro", "14 pro", "s24 ultra"):
		specs.ProcessorGHz = 3.8
	case containsAny(lower, "15", "14", "s24"):
		specs.ProcessorGHz = 3.2
	}

	return specs
}

// EstimateBasePrice buckets a phone into a price tier by name.
func EstimateBasePrice(name string) float64 {
	lower := strings.ToLower(name)
	switch {
	case containsAny(lower, "15 pro", "14 pro", "s24 ultra", "ultra"):
		return 100000
	case containsAny(lower, "15", "14", "s24", "pro"):
		return 70000
	case containsAny(lower, "pixel 8", "oneplus", "xiaomi"):
		return 50000
	default:
		return 30000
	}
}

// mockListing builds a realistic platform listing for a phone. Output is
// deterministic per (name, platform) so repeated runs and tests see stable
// prices; platforms deviate from the shared base price in different
// directions, mirroring how real marketplaces undercut each other.
func (p *Provider) mockListing(name, platform, link string) *models.Listing {
	h := hashOf(strings.ToLower(name) + "|" + platform)
	base := EstimateBasePrice(name)

	var price, rating float64
	var reviews int
	if platform == platformFlipkart {
		price = base + float64(int64(h%8000)) - 5000 // -5000..+3000
		rating = 3.8 + float64(h%10)/10.0            // 3.8–4.7
		reviews = 5000 + int(h%45000)
	} else {
		price = base + float64(int64(h%8000)) - 3000 // -3000..+5000
		rating = 3.9 + float64(h%8)/10.0             // 3.9–4.6
		reviews = 3000 + int(h%37000)
	}
	if price < 10000 {
		price = 10000
	}

	return &models.Listing{
		Name:     name,
		Source:   platform,
		Price:    price,
		RawPrice: fmt.Sprintf("₹%.0f", price),
		Rating:   rating,
		Reviews:  reviews,
		Link:     link,
		ImageURL: "https://via.placeholder.com/300x400/007ACC/FFFFFF?text=Phone+Image",
		Specs:    EstimateSpecs(name),
		ItemKey:  strings.ToLower(name),
	}
}

func containsAny(s string, needles ...string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}

func hashOf(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return h.Sum64()
}
