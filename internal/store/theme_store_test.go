// internal/store/theme_store_test.go
package store

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	enginerrors "monetization-engine/internal/common/errors"
	"monetization-engine/internal/common/logger"
	"monetization-engine/internal/models"
)

var themeRowColumns = []string{
	"id", "name", "category", "description", "market_size", "competition_level",
	"technical_difficulty", "estimated_revenue_min", "estimated_revenue_max",
	"data_sources", "monetization_score", "monetization_factors", "created_at", "updated_at",
}

func addThemeRow(rows *sqlmock.Rows, id string) *sqlmock.Rows {
	sources, _ := json.Marshal([]models.DataSource{{Source: "reddit"}})
	return rows.AddRow(
		id, "Theme "+id, "productivity", "A theme", 2_000_000.0, "medium",
		"intermediate", 10_000.0, 50_000.0,
		sources, nil, nil, "2026-01-01T00:00:00Z", "2026-01-02T00:00:00Z",
	)
}

func testRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	return mr, redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func TestThemeGetFromPostgres(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM themes WHERE id =").
		WithArgs("t1").
		WillReturnRows(addThemeRow(sqlmock.NewRows(themeRowColumns), "t1"))

	s := NewThemeStore(db, nil, time.Minute, logger.NewNoOpLogger())
	theme, err := s.Get(context.Background(), "t1")

	require.NoError(t, err)
	assert.Equal(t, "t1", theme.ID)
	assert.Equal(t, "Theme t1", theme.Name)
	assert.Equal(t, models.CompetitionMedium, theme.CompetitionLevel)
	assert.Equal(t, 2_000_000.0, theme.MarketSize)
	assert.Equal(t, models.EstimatedRevenue{Min: 10_000, Max: 50_000}, theme.EstimatedRevenue)
	require.Len(t, theme.DataSources, 1)
	assert.Nil(t, theme.MonetizationScore)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestThemeGetNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM themes WHERE id =").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(themeRowColumns))

	s := NewThemeStore(db, nil, time.Minute, logger.NewNoOpLogger())
	_, err = s.Get(context.Background(), "missing")

	require.Error(t, err)
	assert.Equal(t, enginerrors.ErrCodeThemeNotFound, enginerrors.CodeOf(err))
	assert.False(t, enginerrors.IsRetryable(err))
}

func TestThemeGetFillsAndHitsCache(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mr, rdb := testRedis(t)

	// Only one database round trip is expected across the two reads.
	mock.ExpectQuery("SELECT (.+) FROM themes WHERE id =").
		WithArgs("t1").
		WillReturnRows(addThemeRow(sqlmock.NewRows(themeRowColumns), "t1"))

	s := NewThemeStore(db, rdb, time.Minute, logger.NewNoOpLogger())

	first, err := s.Get(context.Background(), "t1")
	require.NoError(t, err)
	assert.True(t, mr.Exists("theme:t1"))

	second, err := s.Get(context.Background(), "t1")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestThemeGetCorruptCacheFallsThrough(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mr, rdb := testRedis(t)
	require.NoError(t, mr.Set("theme:t1", "not json"))

	mock.ExpectQuery("SELECT (.+) FROM themes WHERE id =").
		WithArgs("t1").
		WillReturnRows(addThemeRow(sqlmock.NewRows(themeRowColumns), "t1"))

	s := NewThemeStore(db, rdb, time.Minute, logger.NewNoOpLogger())
	theme, err := s.Get(context.Background(), "t1")

	require.NoError(t, err)
	assert.Equal(t, "t1", theme.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestThemeGetDownCacheNeverFailsReads(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mr, rdb := testRedis(t)
	mr.Close() // cache is unreachable from here on

	mock.ExpectQuery("SELECT (.+) FROM themes WHERE id =").
		WithArgs("t1").
		WillReturnRows(addThemeRow(sqlmock.NewRows(themeRowColumns), "t1"))

	s := NewThemeStore(db, rdb, time.Minute, logger.NewNoOpLogger())
	theme, err := s.Get(context.Background(), "t1")

	require.NoError(t, err)
	assert.Equal(t, "t1", theme.ID)
}

func TestThemeGetMany(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows(themeRowColumns)
	addThemeRow(rows, "t1")
	addThemeRow(rows, "t2")

	mock.ExpectQuery("SELECT (.+) FROM themes ORDER BY created_at DESC").
		WillReturnRows(rows)

	s := NewThemeStore(db, nil, time.Minute, logger.NewNoOpLogger())
	themes, err := s.GetMany(context.Background(), models.ThemeFilter{})

	require.NoError(t, err)
	require.Len(t, themes, 2)
	assert.Equal(t, "t1", themes[0].ID)
	assert.Equal(t, "t2", themes[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestThemeUpdateScore(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mr, rdb := testRedis(t)
	require.NoError(t, mr.Set("theme:t1", `{"id":"t1"}`))

	mock.ExpectExec("UPDATE themes").
		WithArgs("t1", 72.0, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	s := NewThemeStore(db, rdb, time.Minute, logger.NewNoOpLogger())
	err = s.UpdateScore(context.Background(), "t1", 72, models.MonetizationFactors{MarketSize: 80})

	require.NoError(t, err)
	// The stale cached copy is invalidated.
	assert.False(t, mr.Exists("theme:t1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestThemeUpdateScoreCacheInvalidationFailureIsNonFatal(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rdb, redisMock := redismock.NewClientMock()
	redisMock.ExpectDel("theme:t1").SetErr(assert.AnError)

	mock.ExpectExec("UPDATE themes").
		WillReturnResult(sqlmock.NewResult(0, 1))

	s := NewThemeStore(db, rdb, time.Minute, logger.NewNoOpLogger())
	err = s.UpdateScore(context.Background(), "t1", 72, models.MonetizationFactors{})

	// The write succeeded; a failed invalidation is only logged.
	require.NoError(t, err)
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestThemeUpdateScoreUnknownTheme(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("UPDATE themes").
		WillReturnResult(sqlmock.NewResult(0, 0))

	s := NewThemeStore(db, nil, time.Minute, logger.NewNoOpLogger())
	err = s.UpdateScore(context.Background(), "missing", 72, models.MonetizationFactors{})

	require.Error(t, err)
	assert.Equal(t, enginerrors.ErrCodeThemeNotFound, enginerrors.CodeOf(err))
}

func TestBuildThemeQuery(t *testing.T) {
	t.Run("no filter", func(t *testing.T) {
		query, args := buildThemeQuery(models.ThemeFilter{})
		assert.Contains(t, query, "FROM themes ORDER BY created_at DESC")
		assert.Empty(t, args)
	})

	t.Run("full filter", func(t *testing.T) {
		competition := models.CompetitionLow
		minScore := 60.0
		query, args := buildThemeQuery(models.ThemeFilter{
			Category:         "productivity",
			CompetitionLevel: &competition,
			MinScore:         &minScore,
			SortBy:           "monetizationScore",
			SortOrder:        "asc",
			Limit:            20,
			Offset:           40,
		})

		assert.Contains(t, query, "category = $1")
		assert.Contains(t, query, "competition_level = $2")
		assert.Contains(t, query, "monetization_score >= $3")
		assert.Contains(t, query, "ORDER BY monetization_score ASC")
		assert.Contains(t, query, "LIMIT $4")
		assert.Contains(t, query, "OFFSET $5")
		assert.Equal(t, []interface{}{"productivity", "low", 60.0, 20, 40}, args)
	})

	t.Run("unknown sort column falls back", func(t *testing.T) {
		query, _ := buildThemeQuery(models.ThemeFilter{SortBy: "evil; DROP TABLE themes"})
		assert.Contains(t, query, "ORDER BY created_at DESC")
	})
}
