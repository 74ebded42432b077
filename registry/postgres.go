// Package registry PostgreSQL storage. Use: go get github.com/lib/pq and import _ "github.com/lib/pq".
package registry

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/kabiwabi/worldWiseAI/core"
)

// PostgresRegistry stores catalogs in PostgreSQL.
type PostgresRegistry struct {
	db    *sql.DB
	table string
}

// NewPostgresRegistry creates a registry. table defaults to "catalogs". If
// createTable is true, the table is created.
func NewPostgresRegistry(db *sql.DB, table string, createTable bool) (*PostgresRegistry, error) {
	if table == "" {
		table = "catalogs"
	}
	r := &PostgresRegistry{db: db, table: table}
	if createTable {
		if err := r.createTable(context.Background()); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *PostgresRegistry) createTable(ctx context.Context) error {
	q := `CREATE TABLE IF NOT EXISTS ` + r.table + ` (
		id VARCHAR(255) NOT NULL,
		version VARCHAR(64) NOT NULL,
		name VARCHAR(255),
		description TEXT,
		refs JSONB NOT NULL,
		exemplars JSONB NOT NULL,
		active BOOLEAN NOT NULL DEFAULT false,
		created_at TIMESTAMPTZ,
		updated_at TIMESTAMPTZ,
		PRIMARY KEY (id, version)
	)`
	if _, err := r.db.ExecContext(ctx, q); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx, `CREATE INDEX IF NOT EXISTS idx_`+r.table+`_id_active ON `+r.table+`(id, active)`)
	return err
}

func (r *PostgresRegistry) Store(ctx context.Context, catalog *core.Catalog) error {
	if catalog == nil {
		return fmt.Errorf("postgres registry: catalog is nil")
	}
	if err := catalog.Validate(); err != nil {
		return err
	}
	refs, _ := json.Marshal(catalog.References)
	exemplars, _ := json.Marshal(catalog.Exemplars)
	now := time.Now()
	created := catalog.CreatedAt
	if created.IsZero() {
		created = now
	}
	q := `INSERT INTO ` + r.table + ` (id, version, name, description, refs, exemplars, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, false, $7, $8)
		ON CONFLICT (id, version) DO UPDATE SET
			name = EXCLUDED.name, description = EXCLUDED.description,
			refs = EXCLUDED.refs, exemplars = EXCLUDED.exemplars,
			updated_at = EXCLUDED.updated_at`
	_, err := r.db.ExecContext(ctx, q,
		catalog.ID, catalog.Version, catalog.Name, catalog.Description,
		refs, exemplars, created, now)
	return err
}

func (r *PostgresRegistry) scanOne(row *sql.Row) (*core.Catalog, error) {
	var c core.Catalog
	var refs, exemplars []byte
	err := row.Scan(&c.ID, &c.Version, &c.Name, &c.Description, &refs, &exemplars, &c.CreatedAt, &c.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, core.ErrCatalogNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(refs, &c.References); err != nil {
		return nil, fmt.Errorf("postgres registry decode refs: %w", err)
	}
	if err := json.Unmarshal(exemplars, &c.Exemplars); err != nil {
		return nil, fmt.Errorf("postgres registry decode exemplars: %w", err)
	}
	return &c, nil
}

func (r *PostgresRegistry) Get(ctx context.Context, id, version string) (*core.Catalog, error) {
	q := `SELECT id, version, name, description, refs, exemplars, created_at, updated_at FROM ` + r.table + ` WHERE id = $1 AND version = $2`
	return r.scanOne(r.db.QueryRowContext(ctx, q, id, version))
}

func (r *PostgresRegistry) GetActive(ctx context.Context, id string) (*core.Catalog, error) {
	q := `SELECT id, version, name, description, refs, exemplars, created_at, updated_at FROM ` + r.table + ` WHERE id = $1 AND active LIMIT 1`
	return r.scanOne(r.db.QueryRowContext(ctx, q, id))
}

func (r *PostgresRegistry) List(ctx context.Context, filter Filter) ([]*core.Catalog, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 1000
	}
	q := `SELECT id, version, name, description, refs, exemplars, created_at, updated_at FROM ` + r.table + ` WHERE 1=1`
	args := []interface{}{}
	argNum := 1
	if len(filter.IDs) > 0 {
		q += ` AND id = ANY($` + fmt.Sprint(argNum) + `)`
		args = append(args, pq.Array(filter.IDs))
		argNum++
	}
	q += ` ORDER BY id, version OFFSET $` + fmt.Sprint(argNum) + ` LIMIT $` + fmt.Sprint(argNum+1)
	args = append(args, filter.Offset, limit)
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*core.Catalog
	for rows.Next() {
		var c core.Catalog
		var refs, exemplars []byte
		if err := rows.Scan(&c.ID, &c.Version, &c.Name, &c.Description, &refs, &exemplars, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(refs, &c.References); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(exemplars, &c.Exemplars); err != nil {
			return nil, err
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}

func (r *PostgresRegistry) ListVersions(ctx context.Context, id string) ([]VersionInfo, error) {
	q := `SELECT id, version, active, created_at, updated_at FROM ` + r.table + ` WHERE id = $1 ORDER BY version`
	rows, err := r.db.QueryContext(ctx, q, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var infos []VersionInfo
	for rows.Next() {
		var vi VersionInfo
		if err := rows.Scan(&vi.ID, &vi.Version, &vi.Active, &vi.CreatedAt, &vi.UpdatedAt); err != nil {
			return nil, err
		}
		infos = append(infos, vi)
	}
	return infos, rows.Err()
}

func (r *PostgresRegistry) Activate(ctx context.Context, id, version string) error {
	// Deactivate any currently active version of the same id first.
	_, _ = r.db.ExecContext(ctx, `UPDATE `+r.table+` SET active = false WHERE id = $1 AND active`, id)
	res, err := r.db.ExecContext(ctx, `UPDATE `+r.table+` SET active = true WHERE id = $1 AND version = $2`, id, version)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return core.ErrCatalogNotFound
	}
	return nil
}

func (r *PostgresRegistry) Delete(ctx context.Context, id, version string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM `+r.table+` WHERE id = $1 AND version = $2`, id, version)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return core.ErrCatalogNotFound
	}
	return nil
}
