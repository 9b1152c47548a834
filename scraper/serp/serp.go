package serp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"product-comparator/config"
	"product-comparator/models"
	"product-comparator/utils"
)

const baseURL = "https://serpapi.com/search.json"

// Client fetches product search results per retail site. Three strategies,
// in order of preference: the SerpAPI JSON endpoint when a key is
// configured, a direct fetch of the site's search page parsed with goquery,
// and a deterministic offline mock (the default for demos and tests).
//
// Results are cached per (site, query) with the configured TTL. Failures are
// logged and surface to the caller as an empty result set.
type Client struct {
	cfg     *config.Config
	catalog *config.Catalog
	logger  *utils.Logger
	http    *http.Client
	retry   *utils.RetryConfig
	cache   *utils.QueryCache
}

// New creates a ready-to-use search Client.
func New(cfg *config.Config, catalog *config.Catalog, logger *utils.Logger) *Client {
	return &Client{
		cfg:     cfg,
		catalog: catalog,
		logger:  logger,
		http:    &http.Client{Timeout: 20 * time.Second},
		retry: &utils.RetryConfig{
			MaxAttempts: cfg.MaxRetries,
			BaseDelay:   2 * time.Second,
			Logger:      logger,
		},
		cache: utils.NewQueryCache(time.Duration(cfg.CacheTTLMin) * time.Minute),
	}
}

// FetchProducts returns up to limit raw results for query on one site.
func (c *Client) FetchProducts(ctx context.Context, query, site string, limit int) ([]*models.RawResult, error) {
	cacheKey := site + "|" + query
	if cached, ok := c.cache.Get(cacheKey); ok {
		c.logger.Debug("[serp] Cache hit for %s", cacheKey)
		return cached.([]*models.RawResult), nil
	}

	var (
		results []*models.RawResult
		err     error
	)
	switch {
	case c.cfg.MockMode:
		results = c.mockResults(query, site, limit)
	case c.cfg.SerpAPIKey != "":
		results, err = c.searchAPI(ctx, query, site, limit)
	default:
		results, err = c.scrapeSite(ctx, query, site, limit)
	}
	if err != nil {
		c.logger.Error("[serp] %s search for %q failed: %v", site, query, err)
		return nil, err
	}

	c.cache.Set(cacheKey, results)
	return results, nil
}

// searchAPI queries the SerpAPI Google engine scoped to one site. The query
// is decorated with "price" to bias results toward listings that carry
// pricing information.
func (c *Client) searchAPI(ctx context.Context, query, site string, limit int) ([]*models.RawResult, error) {
	params := url.Values{}
	params.Set("engine", "google")
	params.Set("q", fmt.Sprintf("%s price site:%s", query, site))
	params.Set("api_key", c.cfg.SerpAPIKey)

	var payload searchResponse
	err := c.retry.Do("serpapi-"+site, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"?"+params.Encode(), nil)
		if err != nil {
			return fmt.Errorf("build request: %w", err)
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return fmt.Errorf("request: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("serpapi returned %s", resp.Status)
		}
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	organic := payload.OrganicResults
	if len(organic) > limit {
		organic = organic[:limit]
	}

	results := make([]*models.RawResult, 0, len(organic))
	now := time.Now()
	for _, r := range organic {
		results = append(results, r.toRaw(site, now))
	}

	c.logger.Info("[serp] %s: %d results for %q", site, len(results), query)
	return results, nil
}

// scrapeSite fetches the site's own search page and mines product links from
// the HTML. Best effort only: retail markup shifts constantly, so anything
// that does not parse simply drops out.
func (c *Client) scrapeSite(ctx context.Context, query, site string, limit int) ([]*models.RawResult, error) {
	tmpl := ""
	for _, s := range c.catalog.Sites {
		if s.Key == site {
			tmpl = s.SearchURL
			break
		}
	}
	if tmpl == "" {
		return nil, fmt.Errorf("no search URL configured for site %s", site)
	}
	pageURL := fmt.Sprintf(tmpl, url.QueryEscape(query))

	var doc *goquery.Document
	err := c.retry.Do("scrape-"+site, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
		if err != nil {
			return fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 "+
			"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")

		resp, err := c.http.Do(req)
		if err != nil {
			return fmt.Errorf("request: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("%s returned %s", site, resp.Status)
		}

		doc, err = goquery.NewDocumentFromReader(resp.Body)
		if err != nil {
			return fmt.Errorf("parse document: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	results := ParseSearchPage(doc, site, limit)
	c.logger.Info("[serp] %s: scraped %d candidate results for %q", site, len(results), query)
	return results, nil
}

// ParseSearchPage extracts product-looking anchors from a search results
// page: a long-enough link text is treated as the title, and the enclosing
// block's text is kept as the snippet for the price/rating extractors.
func ParseSearchPage(doc *goquery.Document, site string, limit int) []*models.RawResult {
	seen := utils.NewSeenSet()
	var results []*models.RawResult
	now := time.Now()

	doc.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		title := strings.TrimSpace(a.Text())
		if len(title) < 20 {
			return true
		}
		href, _ := a.Attr("href")
		if href == "" || strings.HasPrefix(href, "#") || !seen.Add(href) {
			return true
		}
		if strings.HasPrefix(href, "/") {
			href = "https://" + site + href
		}

		snippet := title
		if parent := a.Closest("div, li, article"); parent.Length() > 0 {
			snippet = strings.TrimSpace(parent.Text())
		}

		results = append(results, &models.RawResult{
			Title:     title,
			Snippet:   snippet,
			Link:      href,
			Source:    site,
			FetchedAt: now,
		})
		return len(results) < limit
	})

	return results
}
