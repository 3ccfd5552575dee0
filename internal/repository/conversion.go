package repository

import (
	"context"

	"marcapi/internal/model"
)

// ConversionRepository persists the conversion log. Strictly persistence, no business logic.
type ConversionRepository interface {
	// Create inserts a log entry and returns the stored row.
	Create(ctx context.Context, c *model.Conversion) (*model.Conversion, error)

	// List returns a page of entries, newest first, and the total row count.
	List(ctx context.Context, pq PageQuery) (*PageResult[model.Conversion], error)
}

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// PageResult is a generic pagination result wrapper.
type PageResult[T any] struct {
	Items []T
	Total int
}

// NopConversionRepository is used when no database is configured: writes are dropped and
// listings are always empty.
type NopConversionRepository struct{}

var _ ConversionRepository = NopConversionRepository{}

func (NopConversionRepository) Create(_ context.Context, c *model.Conversion) (*model.Conversion, error) {
	return c, nil
}

func (NopConversionRepository) List(context.Context, PageQuery) (*PageResult[model.Conversion], error) {
	return &PageResult[model.Conversion]{Items: []model.Conversion{}}, nil
}
