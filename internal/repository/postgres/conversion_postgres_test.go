package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marcapi/internal/model"
	"marcapi/internal/repository"
)

var columns = []string{"id", "base_url", "record_id", "format", "status", "error_code", "bytes", "duration_ms", "created_at"}

func TestConversionPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewConversionPostgres(db)
	ctx := context.Background()

	now := time.Now().UTC()
	conv := &model.Conversion{
		ID:         "4b1c2f0e-2f55-4f3a-9d6c-3f7d1c0e9a11",
		BaseURL:    "https://lib.example.edu",
		RecordID:   42,
		Format:     "mrc",
		Status:     model.ConversionSucceeded,
		Bytes:      812,
		DurationMS: 37,
		CreatedAt:  now,
	}

	rows := sqlmock.NewRows(columns).
		AddRow(conv.ID, conv.BaseURL, conv.RecordID, conv.Format, conv.Status, "", conv.Bytes, conv.DurationMS, conv.CreatedAt)

	mock.ExpectQuery("INSERT INTO conversions").
		WithArgs(conv.ID, conv.BaseURL, conv.RecordID, conv.Format, conv.Status, "", conv.Bytes, conv.DurationMS, conv.CreatedAt).
		WillReturnRows(rows)

	result, err := repo.Create(ctx, conv)

	require.NoError(t, err)
	assert.Equal(t, *conv, *result)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConversionPostgres_CreateError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("INSERT INTO conversions").WillReturnError(errors.New("connection reset"))

	result, err := NewConversionPostgres(db).Create(context.Background(), &model.Conversion{})
	assert.EqualError(t, err, "connection reset")
	assert.Nil(t, result)
}

func TestConversionPostgres_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewConversionPostgres(db)
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM conversions").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

		rows := sqlmock.NewRows(columns).
			AddRow("b", "https://lib.example.edu", 7, "xml", model.ConversionFailed, "UPSTREAM_ERROR", 0, 120, time.Now()).
			AddRow("a", "https://lib.example.edu", 42, "mrc", model.ConversionSucceeded, "", 812, 37, time.Now())

		mock.ExpectQuery("SELECT (.+) FROM conversions ORDER BY").
			WithArgs(2, 0).
			WillReturnRows(rows)

		res, err := repo.List(ctx, repository.PageQuery{Limit: 2, Offset: 0})

		require.NoError(t, err)
		assert.Equal(t, 3, res.Total)
		require.Len(t, res.Items, 2)
		assert.Equal(t, "UPSTREAM_ERROR", res.Items[0].ErrorCode)
		assert.Equal(t, int64(42), res.Items[1].RecordID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("count error", func(t *testing.T) {
		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM conversions").
			WillReturnError(errors.New("boom"))

		res, err := repo.List(ctx, repository.PageQuery{Limit: 10})
		assert.Error(t, err)
		assert.Nil(t, res)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty page", func(t *testing.T) {
		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM conversions").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectQuery("SELECT (.+) FROM conversions ORDER BY").
			WithArgs(10, 20).
			WillReturnRows(sqlmock.NewRows(columns))

		res, err := repo.List(ctx, repository.PageQuery{Limit: 10, Offset: 20})
		require.NoError(t, err)
		assert.NotNil(t, res.Items)
		assert.Empty(t, res.Items)
	})
}
