package storage

import "product-comparator/models"

// ResultWriter persists scored comparison snapshots.
type ResultWriter interface {
	Write(query string, scored []*models.ScoredListing) error
	Close() error
}

// RawResultWriter persists unprocessed provider output.
type RawResultWriter interface {
	WriteRaw(results []*models.RawResult) error
	Close() error
}
