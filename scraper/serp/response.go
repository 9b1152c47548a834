package serp

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"product-comparator/models"
)

// searchResponse is the slice of the SerpAPI payload this client cares
// about. Everything else in the response is ignored.
type searchResponse struct {
	OrganicResults []organicResult `json:"organic_results"`
}

type organicResult struct {
	Title       string       `json:"title"`
	Link        string       `json:"link"`
	Snippet     string       `json:"snippet"`
	Price       flexScalar   `json:"price"`
	Rating      flexScalar   `json:"rating"`
	Reviews     flexScalar   `json:"reviews"`
	Thumbnail   string       `json:"thumbnail"`
	Image       string       `json:"image"`
	RichSnippet *richSnippet `json:"rich_snippet"`
}

type richSnippet struct {
	Top struct {
		DetectedExtensions struct {
			Rating  float64 `json:"rating"`
			Reviews int     `json:"reviews"`
		} `json:"detected_extensions"`
	} `json:"top"`
}

// flexScalar tolerates fields the API serves as either a JSON number or a
// string ("4.5" vs 4.5, "₹61,999"). It keeps the raw text form; downstream
// extractors own the numeric interpretation.
type flexScalar string

func (f *flexScalar) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = flexScalar(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*f = flexScalar(n.String())
		return nil
	}
	// Null or an unexpected shape: treat as absent rather than failing the
	// whole payload.
	*f = ""
	return nil
}

func (f flexScalar) String() string { return string(f) }

func (f flexScalar) empty() bool {
	s := strings.TrimSpace(string(f))
	return s == "" || s == "0"
}

// toRaw flattens one organic result into the provider-agnostic RawResult.
// Rating and review count fall back to the rich-snippet extensions when the
// dedicated fields are absent; the text extractors downstream handle the
// rest.
func (r organicResult) toRaw(site string, fetchedAt time.Time) *models.RawResult {
	rating := r.Rating.String()
	reviews := r.Reviews.String()

	if r.RichSnippet != nil {
		ext := r.RichSnippet.Top.DetectedExtensions
		if r.Rating.empty() && ext.Rating > 0 {
			rating = strconv.FormatFloat(ext.Rating, 'f', 1, 64)
		}
		if r.Reviews.empty() && ext.Reviews > 0 {
			reviews = strconv.Itoa(ext.Reviews)
		}
	}

	image := r.Thumbnail
	if image == "" {
		image = r.Image
	}

	return &models.RawResult{
		Title:     r.Title,
		RawPrice:  r.Price.String(),
		Rating:    rating,
		Reviews:   reviews,
		Snippet:   r.Snippet,
		Link:      r.Link,
		ImageURL:  image,
		Source:    site,
		FetchedAt: fetchedAt,
	}
}
