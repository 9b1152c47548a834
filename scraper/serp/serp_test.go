package serp

import (
	"context"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"product-comparator/config"
	"product-comparator/utils"
)

func testClient() *Client {
	cfg := &config.Config{
		MockMode:       true,
		NumProducts:    5,
		MaxRetries:     1,
		CacheTTLMin:    60,
		MaxConcurrency: 3,
	}
	return New(cfg, config.DefaultCatalog(), utils.NewLogger())
}

func TestMockResultsDeterministic(t *testing.T) {
	c := testClient()

	a := c.mockResults("iPhone 15", "amazon.in", 3)
	b := c.mockResults("iPhone 15", "amazon.in", 3)

	if len(a) != 3 || len(b) != 3 {
		t.Fatalf("expected 3 results each, got %d and %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Title != b[i].Title || a[i].RawPrice != b[i].RawPrice || a[i].Rating != b[i].Rating {
			t.Errorf("result %d differs across identical calls: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestMockResultsShareQueryBaseAcrossSites(t *testing.T) {
	c := testClient()

	amazon := c.mockResults("Galaxy S24", "amazon.in", 5)
	flipkart := c.mockResults("Galaxy S24", "flipkart.com", 5)

	// Sites vary around a shared per-query base of at most ±6000, so
	// cross-site prices must stay within one band of each other.
	for i := range amazon {
		pa := parseMockPrice(t, amazon[i].RawPrice)
		pf := parseMockPrice(t, flipkart[i].RawPrice)
		if diff := pa - pf; diff > 12000 || diff < -12000 {
			t.Errorf("result %d: cross-site spread %v too wide (%v vs %v)", i, diff, pa, pf)
		}
	}
}

func parseMockPrice(t *testing.T, raw string) int64 {
	t.Helper()
	cleaned := strings.NewReplacer("₹", "", ",", "").Replace(raw)
	var n int64
	for _, r := range cleaned {
		if r < '0' || r > '9' {
			t.Fatalf("unexpected price format %q", raw)
		}
		n = n*10 + int64(r-'0')
	}
	return n
}

func TestMockResultsLimit(t *testing.T) {
	c := testClient()

	if got := len(c.mockResults("iPhone 15", "amazon.in", 2)); got != 2 {
		t.Errorf("limit 2: got %d results", got)
	}
	if got := len(c.mockResults("iPhone 15", "amazon.in", 50)); got != len(mockVariants) {
		t.Errorf("oversized limit must cap at %d variants, got %d", len(mockVariants), got)
	}
	if got := len(c.mockResults("iPhone 15", "amazon.in", 0)); got != len(mockVariants) {
		t.Errorf("limit 0 must mean all variants, got %d", got)
	}
}

func TestFetchProductsUsesCache(t *testing.T) {
	c := testClient()
	ctx := context.Background()

	first, err := c.FetchProducts(ctx, "iPhone 15", "amazon.in", 3)
	if err != nil {
		t.Fatalf("FetchProducts failed: %v", err)
	}
	second, err := c.FetchProducts(ctx, "iPhone 15", "amazon.in", 3)
	if err != nil {
		t.Fatalf("FetchProducts failed: %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("cached call changed result count: %d vs %d", len(first), len(second))
	}
	// The cache stores the slice itself, so the second call must return the
	// exact same backing records.
	if first[0] != second[0] {
		t.Error("expected the cached slice, got a re-generated one")
	}
}

func TestGroupThousands(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{999, "999"},
		{1000, "1,000"},
		{74999, "74,999"},
		{1234567, "1,234,567"},
	}

	for _, tt := range tests {
		if got := groupThousands(tt.n); got != tt.want {
			t.Errorf("groupThousands(%d) = %q; want %q", tt.n, got, tt.want)
		}
	}
}

func TestSlugify(t *testing.T) {
	if got := slugify("  iPhone 15 Pro Max "); got != "iphone-15-pro-max" {
		t.Errorf("slugify: got %q", got)
	}
}

func TestParseSearchPage(t *testing.T) {
	html := `
	<html><body>
		<div class="result">
			<a href="/product/iphone-15-128gb-black">Apple iPhone 15 (128 GB, Black)</a>
			<span>₹65,999 · 4.4 stars · 1,203 reviews</span>
		</div>
		<div class="result">
			<a href="https://cdn.example/other"><img src="x.jpg"></a>
			<a href="#top">Back to top with padding text here</a>
			<a href="/product/iphone-15-128gb-black">Apple iPhone 15 (128 GB, Black)</a>
		</div>
		<div class="result">
			<a href="/product/iphone-15-256gb-blue">Apple iPhone 15 (256 GB, Blue) with Offer</a>
		</div>
	</body></html>`

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatal(err)
	}

	results := ParseSearchPage(doc, "flipkart.com", 10)
	if len(results) != 2 {
		t.Fatalf("expected 2 results (short anchors, fragments and duplicates dropped), got %d", len(results))
	}

	first := results[0]
	if first.Title != "Apple iPhone 15 (128 GB, Black)" {
		t.Errorf("title: got %q", first.Title)
	}
	if first.Link != "https://flipkart.com/product/iphone-15-128gb-black" {
		t.Errorf("relative link must be absolutized: got %q", first.Link)
	}
	if !strings.Contains(first.Snippet, "₹65,999") {
		t.Errorf("snippet must carry the enclosing block text, got %q", first.Snippet)
	}
	if first.Source != "flipkart.com" {
		t.Errorf("source: got %q", first.Source)
	}
}

func TestParseSearchPageHonorsLimit(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("<html><body>")
	for i := 0; i < 8; i++ {
		sb.WriteString(`<div><a href="/p/` + string(rune('a'+i)) + `">Sufficiently long product title `)
		sb.WriteString(string(rune('a' + i)))
		sb.WriteString("</a></div>")
	}
	sb.WriteString("</body></html>")

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(sb.String()))
	if err != nil {
		t.Fatal(err)
	}

	if got := len(ParseSearchPage(doc, "amazon.in", 3)); got != 3 {
		t.Errorf("limit 3: got %d results", got)
	}
}
