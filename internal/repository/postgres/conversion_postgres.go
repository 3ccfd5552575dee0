package postgres

import (
	"context"
	"database/sql"

	"marcapi/internal/model"
	"marcapi/internal/repository"
)

// ConversionPostgres is a PostgreSQL implementation of repository.ConversionRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type ConversionPostgres struct {
	db *sql.DB
}

// NewConversionPostgres creates a new ConversionPostgres repository.
func NewConversionPostgres(db *sql.DB) *ConversionPostgres {
	return &ConversionPostgres{db: db}
}

var _ repository.ConversionRepository = (*ConversionPostgres)(nil)

const conversionColumns = `id, base_url, record_id, format, status, error_code, bytes, duration_ms, created_at`

// Create inserts a conversion log row and returns the stored record.
func (r *ConversionPostgres) Create(ctx context.Context, c *model.Conversion) (*model.Conversion, error) {
	const q = `
		INSERT INTO conversions (` + conversionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + conversionColumns
	row := r.db.QueryRowContext(ctx, q,
		c.ID,
		c.BaseURL,
		c.RecordID,
		c.Format,
		c.Status,
		c.ErrorCode,
		c.Bytes,
		c.DurationMS,
		c.CreatedAt,
	)
	var out model.Conversion
	if err := scanConversion(row, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// List returns log rows using LIMIT/OFFSET pagination and a total count.
func (r *ConversionPostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Conversion], error) {
	const qCount = `SELECT COUNT(*) FROM conversions`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT ` + conversionColumns + `
		FROM conversions
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.QueryContext(ctx, qList, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Conversion, 0)
	for rows.Next() {
		var c model.Conversion
		if err := scanConversion(rows, &c); err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Conversion]{
		Items: items,
		Total: total,
	}, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanConversion(s scanner, c *model.Conversion) error {
	return s.Scan(
		&c.ID,
		&c.BaseURL,
		&c.RecordID,
		&c.Format,
		&c.Status,
		&c.ErrorCode,
		&c.Bytes,
		&c.DurationMS,
		&c.CreatedAt,
	)
}
