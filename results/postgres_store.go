// Package results: PostgreSQL Store for persistent evaluation history.
package results

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

const defaultTableName = "eval_records"

// PostgresStore implements Store using a PostgreSQL table.
type PostgresStore struct {
	db        *sql.DB
	tableName string
}

// NewPostgresStore creates a store that uses the given *sql.DB (e.g. driver
// "postgres"). Table is created if it doesn't exist.
func NewPostgresStore(db *sql.DB, tableName string) (*PostgresStore, error) {
	if tableName == "" {
		tableName = defaultTableName
	}
	s := &PostgresStore{db: db, tableName: tableName}
	if err := s.migrate(context.Background()); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *PostgresStore) migrate(ctx context.Context) error {
	q := `CREATE TABLE IF NOT EXISTS ` + s.tableName + ` (
		id BIGSERIAL PRIMARY KEY,
		model TEXT NOT NULL,
		culture TEXT NOT NULL,
		scenario TEXT NOT NULL,
		trial INT NOT NULL DEFAULT 0,
		alignment DOUBLE PRECISION NOT NULL DEFAULT 0,
		stereotype DOUBLE PRECISION NOT NULL DEFAULT 0,
		low_confidence BOOLEAN NOT NULL DEFAULT false,
		at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	CREATE INDEX IF NOT EXISTS idx_eval_records_model_culture ON ` + s.tableName + ` (model, culture);
	CREATE INDEX IF NOT EXISTS idx_eval_records_at ON ` + s.tableName + ` (at);`
	_, err := s.db.ExecContext(ctx, q)
	return err
}

// Record implements Store.
func (s *PostgresStore) Record(ctx context.Context, r EvalRecord) error {
	if r.At.IsZero() {
		r.At = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO `+s.tableName+` (model, culture, scenario, trial, alignment, stereotype, low_confidence, at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		r.Model, r.Culture, r.Scenario, r.Trial, r.Alignment, r.Stereotype, r.LowConfidence, r.At)
	return err
}

// Query implements Store.
func (s *PostgresStore) Query(ctx context.Context, q Query) ([]Aggregate, error) {
	args := []interface{}{}
	where := "1=1"
	n := 1
	if q.Model != "" {
		args = append(args, q.Model)
		where += fmt.Sprintf(" AND model = $%d", n)
		n++
	}
	if q.Culture != "" {
		args = append(args, q.Culture)
		where += fmt.Sprintf(" AND culture = $%d", n)
		n++
	}
	if q.Scenario != "" {
		args = append(args, q.Scenario)
		where += fmt.Sprintf(" AND scenario = $%d", n)
		n++
	}
	if !q.From.IsZero() {
		args = append(args, q.From)
		where += fmt.Sprintf(" AND at >= $%d", n)
		n++
	}
	if !q.To.IsZero() {
		args = append(args, q.To)
		where += fmt.Sprintf(" AND at <= $%d", n)
		n++
	}

	groupCol := "'all'"
	switch q.GroupBy {
	case "model":
		groupCol = "model"
	case "culture":
		groupCol = "culture"
	case "scenario":
		groupCol = "scenario"
	case "model-culture":
		groupCol = "model || '@' || culture"
	case "day":
		groupCol = "date_trunc('day', at)::date::text"
	}
	limit := q.Limit
	if limit <= 0 {
		limit = 100
	}
	args = append(args, limit)
	limitPlaceholder := fmt.Sprintf("$%d", n)

	query := `SELECT ` + groupCol + ` AS key,
		COUNT(*)::bigint AS count,
		COALESCE(AVG(alignment), 0) AS mean_alignment,
		COALESCE(STDDEV_POP(alignment), 0) AS std_alignment,
		COALESCE(AVG(stereotype), 0) AS mean_stereotype,
		COUNT(*) FILTER (WHERE low_confidence)::bigint AS low_confidence
		FROM ` + s.tableName + `
		WHERE ` + where + `
		GROUP BY ` + groupCol + `
		ORDER BY count DESC
		LIMIT ` + limitPlaceholder

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Aggregate
	for rows.Next() {
		var a Aggregate
		var k sql.NullString
		if err := rows.Scan(&k, &a.Count, &a.MeanAlignment, &a.StdAlignment, &a.MeanStereotype, &a.LowConfidence); err != nil {
			return nil, err
		}
		if k.Valid {
			a.Key = k.String
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
