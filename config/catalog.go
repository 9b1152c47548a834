package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Catalog describes the retail sources and the static popular-phone list.
// It is loaded from a YAML file so sources can be added without a rebuild.
type Catalog struct {
	Sites         []Site   `yaml:"sites"`
	PopularPhones []string `yaml:"popular_phones"`
}

// Site is one retail source: the site key used in search queries, its
// display label and an optional direct search URL template (%s is the
// url-escaped query).
type Site struct {
	Key       string `yaml:"key"`
	Label     string `yaml:"label"`
	SearchURL string `yaml:"search_url"`
}

// Label resolves a site key to its display label, falling back to the key.
func (c *Catalog) Label(key string) string {
	for _, s := range c.Sites {
		if s.Key == key {
			return s.Label
		}
	}
	return key
}

// LoadCatalog reads the YAML catalog from path. A missing file yields the
// built-in default catalog; a malformed one is an error.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return DefaultCatalog(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("catalog: read %q: %w", path, err)
	}

	var cat Catalog
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("catalog: parse %q: %w", path, err)
	}
	if len(cat.Sites) == 0 {
		cat.Sites = DefaultCatalog().Sites
	}
	if len(cat.PopularPhones) == 0 {
		cat.PopularPhones = DefaultCatalog().PopularPhones
	}
	return &cat, nil
}

// DefaultCatalog returns the built-in sources and popular phones.
func DefaultCatalog() *Catalog {
	return &Catalog{
		Sites: []Site{
			{Key: "amazon.in", Label: "Amazon India", SearchURL: "https://www.amazon.in/s?k=%s"},
			{Key: "flipkart.com", Label: "Flipkart", SearchURL: "https://www.flipkart.com/search?q=%s"},
			{Key: "reliancedigital.in", Label: "Reliance Digital", SearchURL: "https://www.reliancedigital.in/search?q=%s"},
			{Key: "snapdeal.com", Label: "Snapdeal", SearchURL: "https://www.snapdeal.com/search?keyword=%s"},
		},
		PopularPhones: []string{
			"iPhone 15 Pro",
			"iPhone 15",
			"Samsung Galaxy S24 Ultra",
			"Samsung Galaxy S24",
			"Google Pixel 8 Pro",
			"Google Pixel 8",
			"OnePlus 12",
			"OnePlus 11",
			"Xiaomi 14 Ultra",
			"Xiaomi 13T Pro",
			"Nothing Phone 2",
			"Realme GT 5 Pro",
		},
	}
}
