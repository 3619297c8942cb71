// internal/store/history_store_test.go
package store

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	enginerrors "monetization-engine/internal/common/errors"
	"monetization-engine/internal/models"
)

func historyFactors() models.MonetizationFactors {
	return models.MonetizationFactors{
		MarketSize: 80, PaymentWillingness: 70, CompetitionLevel: 30,
		RevenueModels: 60, CustomerAcquisitionCost: 40, CustomerLifetimeValue: 75,
	}
}

func TestHistoryAppend(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO score_history").
		WithArgs(sqlmock.AnyArg(), "theme-1", 70.0, sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	s := NewPostgresHistoryStore(db)
	entry, err := s.Append(context.Background(), models.ScoreHistoryEntry{
		ThemeID: "theme-1",
		Score:   70,
		Factors: historyFactors(),
	})

	require.NoError(t, err)
	assert.NotEmpty(t, entry.ID)
	assert.False(t, entry.Timestamp.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHistoryAppendKeepsProvidedIdentity(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	ts := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectExec("INSERT INTO score_history").
		WithArgs("fixed-id", "theme-1", 70.0, sqlmock.AnyArg(), sqlmock.AnyArg(), ts.Format(time.RFC3339)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	s := NewPostgresHistoryStore(db)
	entry, err := s.Append(context.Background(), models.ScoreHistoryEntry{
		ID:        "fixed-id",
		ThemeID:   "theme-1",
		Score:     70,
		Factors:   historyFactors(),
		Timestamp: ts,
	})

	require.NoError(t, err)
	assert.Equal(t, "fixed-id", entry.ID)
	assert.Equal(t, ts, entry.Timestamp)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHistoryAppendInsertFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO score_history").WillReturnError(assert.AnError)

	s := NewPostgresHistoryStore(db)
	_, err = s.Append(context.Background(), models.ScoreHistoryEntry{ThemeID: "theme-1", Score: 70})

	require.Error(t, err)
	assert.Equal(t, enginerrors.ErrCodeHistoryAppendFailed, enginerrors.CodeOf(err))
	assert.True(t, enginerrors.IsRetryable(err))
}

func TestHistoryQuery(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	factorsJSON, err := json.Marshal(historyFactors())
	require.NoError(t, err)

	newer := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	older := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"id", "theme_id", "score", "factors", "metadata", "recorded_at"}).
		AddRow("e2", "theme-1", 72.0, factorsJSON, []byte(`{"source":"batch"}`), newer).
		AddRow("e1", "theme-1", 68.0, factorsJSON, []byte(`{}`), older)

	mock.ExpectQuery("SELECT id, theme_id, score, factors, metadata, recorded_at").
		WithArgs("theme-1").
		WillReturnRows(rows)

	s := NewPostgresHistoryStore(db)
	entries, err := s.Query(context.Background(), "theme-1", HistoryQuery{})

	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "e2", entries[0].ID)
	assert.Equal(t, 72.0, entries[0].Score)
	assert.Equal(t, historyFactors(), entries[0].Factors)
	assert.Equal(t, "batch", entries[0].Metadata["source"])
	assert.Equal(t, "e1", entries[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHistoryQueryWithWindowAndLimit(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT id, theme_id, score, factors, metadata, recorded_at").
		WithArgs("theme-1", 30, 5).
		WillReturnRows(sqlmock.NewRows([]string{"id", "theme_id", "score", "factors", "metadata", "recorded_at"}))

	s := NewPostgresHistoryStore(db)
	entries, err := s.Query(context.Background(), "theme-1", HistoryQuery{SinceDays: 30, Limit: 5})

	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHistoryQueryFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT id, theme_id, score, factors, metadata, recorded_at").
		WillReturnError(assert.AnError)

	s := NewPostgresHistoryStore(db)
	_, err = s.Query(context.Background(), "theme-1", HistoryQuery{})

	require.Error(t, err)
	assert.Equal(t, enginerrors.ErrCodeHistoryQueryFailed, enginerrors.CodeOf(err))
}

func TestHistoryDeleteOlderThan(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	cutoff := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectExec("DELETE FROM score_history").
		WithArgs(cutoff.Format(time.RFC3339)).
		WillReturnResult(sqlmock.NewResult(0, 17))

	s := NewPostgresHistoryStore(db)
	removed, err := s.DeleteOlderThan(context.Background(), cutoff)

	require.NoError(t, err)
	assert.Equal(t, 17, removed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHistoryDeleteOlderThanNothingQualifies(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("DELETE FROM score_history").
		WillReturnResult(sqlmock.NewResult(0, 0))

	s := NewPostgresHistoryStore(db)
	removed, err := s.DeleteOlderThan(context.Background(), time.Now())

	require.NoError(t, err)
	assert.Zero(t, removed)
}
