package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"

	"product-comparator/models"
)

// PostgresWriter persists scored comparison snapshots to PostgreSQL, one row
// per listing per comparison run.
type PostgresWriter struct {
	db      *sql.DB
	builder sq.StatementBuilderType
}

// NewPostgresWriter opens a connection to PostgreSQL, runs schema migrations,
// and returns a ready-to-use PostgresWriter.
func NewPostgresWriter(dsn string) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	for i := 0; i < 10; i++ {
		if err = db.Ping(); err == nil {
			break
		}
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: ping failed after retries: %w", err)
	}

	pw := &PostgresWriter{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
	if err := pw.migrate(); err != nil {
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}

	return pw, nil
}

func (pw *PostgresWriter) migrate() error {
	_, err := pw.db.Exec(`
		CREATE TABLE IF NOT EXISTS comparisons (
			id         SERIAL PRIMARY KEY,
			query      TEXT          NOT NULL,
			name       TEXT          NOT NULL,
			source     VARCHAR(50)   NOT NULL,
			raw_price  TEXT          NOT NULL DEFAULT '',
			price      NUMERIC(12,2) NOT NULL DEFAULT 0,
			rating     NUMERIC(4,2)  NOT NULL DEFAULT 0,
			reviews    INTEGER       NOT NULL DEFAULT 0,
			link       TEXT          NOT NULL DEFAULT '',
			image_url  TEXT          NOT NULL DEFAULT '',
			score      NUMERIC(6,4)  NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ   NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_comparisons_query  ON comparisons(query);
		CREATE INDEX IF NOT EXISTS idx_comparisons_source ON comparisons(source);
		CREATE INDEX IF NOT EXISTS idx_comparisons_score  ON comparisons(score);
	`)
	return err
}

// Clear deletes earlier snapshots of the given query so a re-run replaces
// them instead of accumulating duplicates.
func (pw *PostgresWriter) Clear(query string) error {
	sqlStr, args, err := pw.builder.Delete("comparisons").
		Where(sq.Eq{"query": query}).ToSql()
	if err != nil {
		return fmt.Errorf("postgres: build clear: %w", err)
	}
	if _, err := pw.db.Exec(sqlStr, args...); err != nil {
		return fmt.Errorf("postgres: clear: %w", err)
	}
	return nil
}

// Write batch-inserts the scored set for one query, clearing that query's
// old snapshot first.
func (pw *PostgresWriter) Write(query string, scored []*models.ScoredListing) error {
	if len(scored) == 0 {
		return nil
	}

	if err := pw.Clear(query); err != nil {
		return err
	}

	const batchSize = 50
	for i := 0; i < len(scored); i += batchSize {
		end := i + batchSize
		if end > len(scored) {
			end = len(scored)
		}
		if err := pw.insertBatch(query, scored[i:end]); err != nil {
			return err
		}
	}
	return nil
}

func (pw *PostgresWriter) insertBatch(query string, batch []*models.ScoredListing) error {
	const cols = 10
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]interface{}, 0, len(batch)*cols)

	for idx, sc := range batch {
		base := idx * cols
		placeholders := make([]string, cols)
		for j := range placeholders {
			placeholders[j] = fmt.Sprintf("$%d", base+j+1)
		}
		valueStrings = append(valueStrings, "("+strings.Join(placeholders, ",")+")")
		valueArgs = append(valueArgs,
			query, sc.Name, sc.Source, sc.RawPrice, sc.Price,
			sc.Rating, sc.Reviews, sc.Link, sc.ImageURL, sc.FinalScore)
	}

	stmt := fmt.Sprintf(`
		INSERT INTO comparisons
			(query, name, source, raw_price, price, rating, reviews, link, image_url, score)
		VALUES %s
	`, strings.Join(valueStrings, ","))

	_, err := pw.db.Exec(stmt, valueArgs...)
	return err
}

// selectSnapshot is the shared base query for snapshot reads: every stored
// column, best score first, insertion order breaking ties.
func (pw *PostgresWriter) selectSnapshot() sq.SelectBuilder {
	return pw.builder.
		Select("id", "name", "source", "raw_price", "price", "rating", "reviews", "link", "image_url", "score").
		From("comparisons").
		OrderBy("score DESC", "id")
}

// FetchByQuery retrieves the stored snapshot for one query, best score first.
func (pw *PostgresWriter) FetchByQuery(query string) ([]*models.ScoredListing, error) {
	return pw.fetch(pw.selectSnapshot().Where(sq.Eq{"query": query}))
}

// FetchTop retrieves the best-scoring stored rows across all queries.
func (pw *PostgresWriter) FetchTop(limit uint64) ([]*models.ScoredListing, error) {
	return pw.fetch(pw.selectSnapshot().Limit(limit))
}

func (pw *PostgresWriter) fetch(q sq.SelectBuilder) ([]*models.ScoredListing, error) {
	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("postgres: build select: %w", err)
	}

	rows, err := pw.db.Query(sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("postgres: select: %w", err)
	}
	defer rows.Close()

	var out []*models.ScoredListing
	for rows.Next() {
		sc := &models.ScoredListing{}
		if err := rows.Scan(
			&sc.ID, &sc.Name, &sc.Source, &sc.RawPrice, &sc.Price,
			&sc.Rating, &sc.Reviews, &sc.Link, &sc.ImageURL, &sc.FinalScore,
		); err != nil {
			return nil, fmt.Errorf("postgres: scan row: %w", err)
		}
		out = append(out, sc)
	}
	return out, rows.Err()
}

// Close releases the database connection.
func (pw *PostgresWriter) Close() error {
	return pw.db.Close()
}
