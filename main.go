package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sync"

	"product-comparator/config"
	"product-comparator/models"
	"product-comparator/scraper/phones"
	"product-comparator/scraper/serp"
	"product-comparator/services"
	"product-comparator/storage"
	"product-comparator/utils"
)

func main() {
	var (
		query      = flag.String("query", "", "product to compare across retail sites")
		numResults = flag.Int("n", 0, "results per site (0 = config default)")
		phone1     = flag.String("phone1", "", "first phone for head-to-head mode")
		phone2     = flag.String("phone2", "", "second phone for head-to-head mode")
		listPhones = flag.Bool("list-phones", false, "print the popular phone list and exit")
		topStored  = flag.Int("top", 0, "print the N best stored rows across all queries and exit")
		history    = flag.String("history", "", "print the stored snapshot for a past query and exit")

		wPrice     = flag.Int("wprice", 3, "price importance 1-5 (phone mode, lower price wins)")
		wBattery   = flag.Int("wbattery", 3, "battery importance 1-5 (phone mode)")
		wCamera    = flag.Int("wcamera", 3, "camera importance 1-5 (phone mode)")
		wStorage   = flag.Int("wstorage", 3, "storage importance 1-5 (phone mode)")
		wProcessor = flag.Int("wprocessor", 3, "processor importance 1-5 (phone mode)")
		wRating    = flag.Int("wrating", 3, "rating importance 1-5 (phone mode)")
	)
	flag.Parse()

	logger := utils.NewLogger()
	cfg := config.Load()

	catalog, err := config.LoadCatalog(cfg.CatalogPath)
	if err != nil {
		logger.Error("Failed to load catalog: %v", err)
		os.Exit(1)
	}

	logger.Info("=== Product Comparison System starting ===")
	logger.Info("Config — sites: %d | results/site: %d | concurrency: %d | rate: %dms | mock: %v",
		len(cfg.Sites), cfg.NumProducts, cfg.MaxConcurrency, cfg.RateLimitMs, cfg.MockMode)

	switch {
	case *listPhones:
		provider := phones.New(cfg, catalog, logger)
		for _, name := range provider.PopularPhones() {
			fmt.Println(name)
		}
	case *topStored > 0:
		printStored(cfg, logger, func(pw *storage.PostgresWriter) ([]*models.ScoredListing, error) {
			return pw.FetchTop(uint64(*topStored))
		})
	case *history != "":
		printStored(cfg, logger, func(pw *storage.PostgresWriter) ([]*models.ScoredListing, error) {
			return pw.FetchByQuery(*history)
		})
	case *phone1 != "" && *phone2 != "":
		weights := services.WeightVector{
			services.FeaturePrice:     float64(*wPrice),
			services.FeatureBattery:   float64(*wBattery),
			services.FeatureCamera:    float64(*wCamera),
			services.FeatureStorage:   float64(*wStorage),
			services.FeatureProcessor: float64(*wProcessor),
			services.FeatureRating:    float64(*wRating),
		}
		runPhoneComparison(cfg, catalog, logger, *phone1, *phone2, weights)
	case *query != "":
		n := *numResults
		if n <= 0 {
			n = cfg.NumProducts
		}
		runProductComparison(cfg, catalog, logger, *query, n)
	default:
		fmt.Fprintln(os.Stderr, "usage: product-comparator -query \"iPhone 15\" | -phone1 \"iPhone 15 Pro\" -phone2 \"Samsung Galaxy S24\"")
		flag.PrintDefaults()
		os.Exit(2)
	}
}

// runProductComparison drives the generic multi-source pipeline: fan out the
// search per site, assemble one comparison set, score it and report.
func runProductComparison(cfg *config.Config, catalog *config.Catalog, logger *utils.Logger, query string, perSite int) {
	client := serp.New(cfg, catalog, logger)
	pool := utils.NewWorkerPool(cfg.MaxConcurrency, cfg.RateLimitMs)
	ctx := context.Background()

	var mu sync.Mutex
	resultsBySource := make(map[string][]*models.RawResult)

	for _, site := range cfg.Sites {
		site := site
		pool.Submit(func() {
			results, err := client.FetchProducts(ctx, query, site, perSite)
			if err != nil {
				// Degrades to an empty contribution from this site.
				logger.Warn("%s contributed no results: %v", catalog.Label(site), err)
				return
			}
			mu.Lock()
			resultsBySource[site] = results
			mu.Unlock()
		})
	}
	pool.Wait()

	var allRaw []*models.RawResult
	for _, site := range cfg.Sites {
		allRaw = append(allRaw, resultsBySource[site]...)
	}
	if len(allRaw) == 0 {
		logger.Error("No results from any site for %q. Exiting.", query)
		os.Exit(1)
	}

	if csvWriter, err := storage.NewCSVWriter(cfg.CSVOutputPath); err != nil {
		logger.Error("Failed to create CSV writer: %v", err)
	} else {
		if err := csvWriter.WriteRaw(allRaw); err != nil {
			logger.Error("CSV write failed: %v", err)
		} else {
			logger.Info("Raw results saved to %s", cfg.CSVOutputPath)
		}
		_ = csvWriter.Close()
	}

	extractor := services.NewExtractor(logger)
	assembler := services.NewAssembler(logger, extractor)
	listings := assembler.Assemble(resultsBySource, cfg.Sites)
	if len(listings) == 0 {
		logger.Error("All results were dropped during extraction. Exiting.")
		os.Exit(1)
	}

	table := services.BuildComparisonTable(query, listings)
	scorer := services.NewProductScorer(logger, services.WeightVector(cfg.ProductWeights))
	table.NormalizeAndScore(scorer)
	table.Print()

	persistSnapshot(cfg, logger, query, table.Rows)
}

// persistSnapshot stores the scored set. Storage trouble is reported but
// never aborts a comparison that already succeeded.
func persistSnapshot(cfg *config.Config, logger *utils.Logger, query string, rows []*models.ScoredListing) {
	pgWriter, err := storage.NewPostgresWriter(cfg.DSN())
	if err != nil {
		logger.Warn("PostgreSQL unavailable — snapshot not stored: %v", err)
		return
	}
	defer pgWriter.Close()

	if err := pgWriter.Write(query, rows); err != nil {
		logger.Error("PostgreSQL write failed: %v", err)
		return
	}
	logger.Info("Scored snapshot stored in PostgreSQL (table: comparisons)")
}

// printStored renders persisted snapshot rows, best score first.
func printStored(cfg *config.Config, logger *utils.Logger, fetch func(*storage.PostgresWriter) ([]*models.ScoredListing, error)) {
	pgWriter, err := storage.NewPostgresWriter(cfg.DSN())
	if err != nil {
		logger.Error("PostgreSQL unavailable: %v", err)
		os.Exit(1)
	}
	defer pgWriter.Close()

	rows, err := fetch(pgWriter)
	if err != nil {
		logger.Error("Failed to read stored comparisons: %v", err)
		os.Exit(1)
	}
	if len(rows) == 0 {
		fmt.Println("No stored comparisons yet.")
		return
	}

	for _, r := range rows {
		price := r.RawPrice
		if price == "" || price == "0" {
			price = "—"
		}
		fmt.Printf("%.3f  %-14s %-12s %s\n", r.FinalScore, r.Source, price, r.Name)
	}
}

// runPhoneComparison drives the head-to-head pipeline for two phones.
func runPhoneComparison(cfg *config.Config, catalog *config.Catalog, logger *utils.Logger, name1, name2 string, weights services.WeightVector) {
	if name1 == name2 {
		logger.Error("Pick two different phones to compare.")
		os.Exit(1)
	}

	provider := phones.New(cfg, catalog, logger)
	ctx := context.Background()

	data1, err1 := provider.GetPhoneData(ctx, name1)
	data2, err2 := provider.GetPhoneData(ctx, name2)
	if err1 != nil {
		logger.Error("Could not find data for %q: %v", name1, err1)
		os.Exit(1)
	}
	if err2 != nil {
		logger.Error("Could not find data for %q: %v", name2, err2)
		os.Exit(1)
	}

	logger.Info("Data last updated: %s", data1.LastScraped.Format("2006-01-02 15:04:05"))

	comparator := services.NewPhoneComparator(logger, weights, services.ValueHeuristic)
	cmp, err := comparator.Compare(data1, data2, nil)
	if err != nil {
		logger.Error("Comparison failed: %v", err)
		os.Exit(1)
	}

	cmp.Print()
}
