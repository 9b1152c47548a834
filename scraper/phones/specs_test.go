package phones

import (
	"testing"
)

func TestEstimateSpecs(t *testing.T) {
	tests := []struct {
		name      string
		battery   float64
		camera    float64
		storage   float64
		processor float64
	}{
		{"iPhone 15 Pro Max", 5000, 108, 128, 3.8},
		{"Samsung Galaxy S24 Ultra", 5000, 108, 128, 3.8},
		{"iPhone 15 Pro", 4500, 108, 128, 3.8},
		{"iPhone 15", 4000, 48, 128, 3.2},
		{"OnePlus 12 256GB", 4500, 48, 256, 2.8},
		{"Xiaomi 13T 256GB", 4000, 48, 256, 2.8},
		{"Budget Phone", 4000, 48, 128, 2.8},
	}

	for _, tt := range tests {
		specs := EstimateSpecs(tt.name)
		if specs.BatteryMAh != tt.battery {
			t.Errorf("%s battery: got %v, want %v", tt.name, specs.BatteryMAh, tt.battery)
		}
		if specs.CameraMP != tt.camera {
			t.Errorf("%s camera: got %v, want %v", tt.name, specs.CameraMP, tt.camera)
		}
		if specs.StorageGB != tt.storage {
			t.Errorf("%s storage: got %v, want %v", tt.name, specs.StorageGB, tt.storage)
		}
		if specs.ProcessorGHz != tt.processor {
			t.Errorf("%s processor: got %v, want %v", tt.name, specs.ProcessorGHz, tt.processor)
		}
	}
}

func TestEstimateBasePrice(t *testing.T) {
	tests := []struct {
		name string
		want float64
	}{
		{"iPhone 15 Pro", 100000},
		{"Samsung Galaxy S24 Ultra", 100000},
		{"Xiaomi 14 Ultra", 100000},
		{"iPhone 15", 70000},
		{"Nothing Phone 2 Pro", 70000},
		{"Google Pixel 8", 50000},
		{"OnePlus 11", 50000},
		{"Nokia 3310", 30000},
	}

	for _, tt := range tests {
		if got := EstimateBasePrice(tt.name); got != tt.want {
			t.Errorf("EstimateBasePrice(%q) = %v; want %v", tt.name, got, tt.want)
		}
	}
}

func TestMockListingDeterministic(t *testing.T) {
	p := &Provider{}

	a := p.mockListing("iPhone 15", platformFlipkart, "https://f/x")
	b := p.mockListing("iPhone 15", platformFlipkart, "https://f/x")

	if a.Price != b.Price || a.Rating != b.Rating || a.Reviews != b.Reviews {
		t.Errorf("same (name, platform) must yield identical listings: %+v vs %+v", a, b)
	}
}

func TestMockListingPlausibleRanges(t *testing.T) {
	p := &Provider{}

	for _, name := range []string{"iPhone 15 Pro", "Samsung Galaxy S24", "OnePlus 12", "Budget Phone"} {
		for _, platform := range []string{platformFlipkart, platformAmazon} {
			l := p.mockListing(name, platform, "https://x")

			if l.Price < 10000 {
				t.Errorf("%s/%s price %v below floor", name, platform, l.Price)
			}
			if l.Rating < 3.5 || l.Rating > 5.0 {
				t.Errorf("%s/%s rating %v out of range", name, platform, l.Rating)
			}
			if l.Reviews <= 0 {
				t.Errorf("%s/%s reviews %d must be positive", name, platform, l.Reviews)
			}
			if l.Specs == nil {
				t.Errorf("%s/%s missing spec block", name, platform)
			}
			if l.Source != platform {
				t.Errorf("%s/%s source: got %q", name, platform, l.Source)
			}
		}
	}
}

func TestMockListingPlatformsDiverge(t *testing.T) {
	p := &Provider{}

	fk := p.mockListing("Google Pixel 8 Pro", platformFlipkart, "https://f/x")
	az := p.mockListing("Google Pixel 8 Pro", platformAmazon, "https://a/x")

	if fk.Price == az.Price && fk.Rating == az.Rating && fk.Reviews == az.Reviews {
		t.Error("platforms should not produce byte-identical listings")
	}
}
