package services

import (
	"strings"
	"testing"

	"product-comparator/models"
)

func phoneFixture(name string, price, rating float64, specs models.PhoneSpecs) *models.PhoneData {
	s1, s2 := specs, specs
	return &models.PhoneData{
		Name: name,
		Flipkart: &models.Listing{
			Name: name, Source: "flipkart", Price: price, Rating: rating, Reviews: 1000, Specs: &s1,
		},
		Amazon: &models.Listing{
			Name: name, Source: "amazon", Price: price + 2000, Rating: rating - 0.1, Reviews: 800, Specs: &s2,
		},
	}
}

func allOnesWeights() WeightVector {
	return WeightVector{
		FeaturePrice: 1, FeatureBattery: 1, FeatureCamera: 1,
		FeatureStorage: 1, FeatureProcessor: 1, FeatureRating: 1,
	}
}

func TestPhoneComparatorDominatingPhoneWins(t *testing.T) {
	p1 := phoneFixture("Alpha", 60000, 4.6, models.PhoneSpecs{BatteryMAh: 5000, CameraMP: 108, StorageGB: 256, ProcessorGHz: 3.2})
	p2 := phoneFixture("Beta", 80000, 4.0, models.PhoneSpecs{BatteryMAh: 4000, CameraMP: 48, StorageGB: 128, ProcessorGHz: 2.8})

	c := NewPhoneComparator(newTestLogger(), allOnesWeights(), nil)
	cmp, err := c.Compare(p1, p2, nil)
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}

	if cmp.Score1 <= cmp.Score2 {
		t.Errorf("Alpha dominates on every feature and must score higher: %v vs %v", cmp.Score1, cmp.Score2)
	}

	winner, _, diff := cmp.Winner()
	if winner != p1 {
		t.Errorf("winner: got %v, want Alpha", winner)
	}
	if diff <= 0.2 {
		t.Errorf("a clean sweep should leave a margin above 0.2, got %v", diff)
	}
	if !strings.HasPrefix(cmp.Verdict(), "Strong recommendation") {
		t.Errorf("verdict for margin %v: got %q", diff, cmp.Verdict())
	}
}

func TestPhoneComparatorRepresentativeIsBestValueListing(t *testing.T) {
	p1 := phoneFixture("Alpha", 60000, 4.6, models.PhoneSpecs{BatteryMAh: 5000, CameraMP: 108, StorageGB: 256, ProcessorGHz: 3.2})
	p2 := phoneFixture("Beta", 80000, 4.0, models.PhoneSpecs{BatteryMAh: 4000, CameraMP: 48, StorageGB: 128, ProcessorGHz: 2.8})

	c := NewPhoneComparator(newTestLogger(), allOnesWeights(), nil)
	cmp, err := c.Compare(p1, p2, nil)
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}

	// value = rating*2 − price/10000: the flipkart listing wins for both.
	if cmp.Rep1 != p1.Flipkart {
		t.Errorf("Rep1: got %v, want the flipkart listing", cmp.Rep1)
	}
	if cmp.Rep2 != p2.Flipkart {
		t.Errorf("Rep2: got %v, want the flipkart listing", cmp.Rep2)
	}
}

func TestPhoneComparatorIdenticalPhonesTie(t *testing.T) {
	specs := models.PhoneSpecs{BatteryMAh: 4500, CameraMP: 50, StorageGB: 128, ProcessorGHz: 3.0}
	p1 := phoneFixture("Twin A", 50000, 4.3, specs)
	p2 := phoneFixture("Twin B", 50000, 4.3, specs)

	c := NewPhoneComparator(newTestLogger(), allOnesWeights(), nil)
	cmp, err := c.Compare(p1, p2, nil)
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}

	if !almostEqual(cmp.Score1, cmp.Score2) {
		t.Errorf("identical phones must tie: %v vs %v", cmp.Score1, cmp.Score2)
	}
	if winner, _, _ := cmp.Winner(); winner != nil {
		t.Errorf("tie must have no winner, got %v", winner)
	}
	if !strings.HasPrefix(cmp.Verdict(), "It's a tie") {
		t.Errorf("tie verdict: got %q", cmp.Verdict())
	}
}

func TestPhoneComparatorMissingSideFails(t *testing.T) {
	p1 := phoneFixture("Alpha", 60000, 4.6, models.PhoneSpecs{BatteryMAh: 5000})
	empty := &models.PhoneData{Name: "Ghost"}

	c := NewPhoneComparator(newTestLogger(), allOnesWeights(), nil)
	if _, err := c.Compare(p1, empty, nil); err == nil {
		t.Error("expected an error when one side has no platform data")
	}
	if _, err := c.Compare(empty, p1, nil); err == nil {
		t.Error("expected an error when the first side has no platform data")
	}
}

func TestPhoneComparatorPerCallWeightsOverride(t *testing.T) {
	// Alpha is cheaper, Beta has the bigger battery. Which one wins depends
	// entirely on which weight vector is in effect.
	p1 := phoneFixture("Alpha", 50000, 4.2, models.PhoneSpecs{BatteryMAh: 4000, CameraMP: 50, StorageGB: 128, ProcessorGHz: 3.0})
	p2 := phoneFixture("Beta", 70000, 4.2, models.PhoneSpecs{BatteryMAh: 5500, CameraMP: 50, StorageGB: 128, ProcessorGHz: 3.0})

	c := NewPhoneComparator(newTestLogger(), WeightVector{FeaturePrice: 5}, nil)

	priceCmp, err := c.Compare(p1, p2, nil)
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}
	if w, _, _ := priceCmp.Winner(); w != p1 {
		t.Errorf("price-only weights: got winner %v, want Alpha", w)
	}

	batteryCmp, err := c.Compare(p1, p2, WeightVector{FeatureBattery: 5})
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}
	if w, _, _ := batteryCmp.Winner(); w != p2 {
		t.Errorf("battery-only override: got winner %v, want Beta", w)
	}
}
