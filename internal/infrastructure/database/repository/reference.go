package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/Fraud-stop/shield-wise-guard/internal/domain/models"
	"github.com/Fraud-stop/shield-wise-guard/internal/infrastructure/database"
)

const schema = `
CREATE TABLE IF NOT EXISTS reference_malicious (
	domain       TEXT PRIMARY KEY,
	report_count INTEGER,
	category     TEXT,
	description  TEXT,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE TABLE IF NOT EXISTS reference_legitimate (
	domain     TEXT PRIMARY KEY,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE TABLE IF NOT EXISTS reference_meta (
	id      BOOLEAN PRIMARY KEY DEFAULT TRUE CHECK (id),
	version TEXT NOT NULL
);`

// ReferenceRepository reads and writes the deny-list and allow-list tables
type ReferenceRepository struct {
	db database.DBTX
}

// NewReferenceRepository creates a new reference repository
func NewReferenceRepository(db database.DBTX) *ReferenceRepository {
	return &ReferenceRepository{db: db}
}

// EnsureSchema creates the reference tables when missing
func (r *ReferenceRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to create reference schema: %w", err)
	}
	return nil
}

// Load reads both lists. Normalization and overlap checks happen when the
// result is turned into a reference set.
func (r *ReferenceRepository) Load(ctx context.Context) (models.ReferenceData, error) {
	var data models.ReferenceData

	var version pgtype.Text
	err := r.db.QueryRow(ctx, `SELECT (SELECT version FROM reference_meta LIMIT 1)`).Scan(&version)
	if err != nil {
		return data, fmt.Errorf("failed to read reference version: %w", err)
	}
	data.Version = version.String

	rows, err := r.db.Query(ctx, `
		SELECT domain, report_count, category, description
		FROM reference_malicious
		ORDER BY domain`)
	if err != nil {
		return data, fmt.Errorf("failed to query malicious domains: %w", err)
	}
	for rows.Next() {
		var (
			e           models.ReferenceEntry
			count       pgtype.Int4
			category    pgtype.Text
			description pgtype.Text
		)
		if err := rows.Scan(&e.Domain, &count, &category, &description); err != nil {
			rows.Close()
			return data, fmt.Errorf("failed to scan malicious domain: %w", err)
		}
		if count.Valid {
			e.ReportCount = int(count.Int32)
		}
		e.Category = category.String
		e.Description = description.String
		data.KnownMalicious = append(data.KnownMalicious, e)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return data, fmt.Errorf("failed to read malicious domains: %w", err)
	}

	rows, err = r.db.Query(ctx, `SELECT domain FROM reference_legitimate ORDER BY domain`)
	if err != nil {
		return data, fmt.Errorf("failed to query legitimate domains: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var domain string
		if err := rows.Scan(&domain); err != nil {
			return data, fmt.Errorf("failed to scan legitimate domain: %w", err)
		}
		data.KnownLegitimate = append(data.KnownLegitimate, domain)
	}
	if err := rows.Err(); err != nil {
		return data, fmt.Errorf("failed to read legitimate domains: %w", err)
	}

	return data, nil
}

// Replace swaps both lists for data. Run it inside a transaction.
func (r *ReferenceRepository) Replace(ctx context.Context, data models.ReferenceData) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM reference_malicious`); err != nil {
		return fmt.Errorf("failed to clear malicious domains: %w", err)
	}
	if _, err := r.db.Exec(ctx, `DELETE FROM reference_legitimate`); err != nil {
		return fmt.Errorf("failed to clear legitimate domains: %w", err)
	}

	for _, e := range data.KnownMalicious {
		count := pgtype.Int4{Int32: int32(e.ReportCount), Valid: e.ReportCount > 0}
		_, err := r.db.Exec(ctx, `
			INSERT INTO reference_malicious (domain, report_count, category, description)
			VALUES ($1, $2, $3, $4)`,
			e.Domain, count, textOrNull(e.Category), textOrNull(e.Description))
		if err != nil {
			return fmt.Errorf("failed to insert malicious domain %s: %w", e.Domain, err)
		}
	}
	for _, d := range data.KnownLegitimate {
		if _, err := r.db.Exec(ctx, `INSERT INTO reference_legitimate (domain) VALUES ($1)`, d); err != nil {
			return fmt.Errorf("failed to insert legitimate domain %s: %w", d, err)
		}
	}

	_, err := r.db.Exec(ctx, `
		INSERT INTO reference_meta (id, version) VALUES (TRUE, $1)
		ON CONFLICT (id) DO UPDATE SET version = EXCLUDED.version`, data.Version)
	if err != nil {
		return fmt.Errorf("failed to store reference version: %w", err)
	}
	return nil
}

func textOrNull(s string) pgtype.Text {
	return pgtype.Text{String: s, Valid: s != ""}
}
