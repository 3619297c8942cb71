// internal/store/theme_store.go
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	enginerrors "monetization-engine/internal/common/errors"
	"monetization-engine/internal/common/logger"
	"monetization-engine/internal/models"

	"github.com/redis/go-redis/v9"
)

// ThemeStore reads and writes theme records in Postgres with a Redis
// read-through cache on single-theme lookups.
type ThemeStore struct {
	db       *sql.DB
	redis    *redis.Client
	cacheTTL time.Duration
	logger   logger.Logger
}

func NewThemeStore(db *sql.DB, rdb *redis.Client, cacheTTL time.Duration, log logger.Logger) *ThemeStore {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &ThemeStore{db: db, redis: rdb, cacheTTL: cacheTTL, logger: log}
}

const themeColumns = `id, name, category, description, market_size, competition_level,
		technical_difficulty, estimated_revenue_min, estimated_revenue_max,
		data_sources, monetization_score, monetization_factors, created_at, updated_at`

// Get fetches one theme. Cache misses fall through to Postgres and refill the
// cache; a cold or failing cache never fails the read.
func (s *ThemeStore) Get(ctx context.Context, themeID string) (models.Theme, error) {
	cacheKey := "theme:" + themeID
	if s.redis != nil {
		if val, err := s.redis.Get(ctx, cacheKey).Result(); err == nil {
			var theme models.Theme
			if err := json.Unmarshal([]byte(val), &theme); err == nil {
				return theme, nil
			}
		}
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT `+themeColumns+`
		FROM themes WHERE id = $1`, themeID)

	theme, err := scanTheme(row)
	if err == sql.ErrNoRows {
		return models.Theme{}, enginerrors.NewThemeNotFoundError(themeID)
	}
	if err != nil {
		return models.Theme{}, enginerrors.NewStoreReadError("theme", err)
	}

	if s.redis != nil {
		if data, err := json.Marshal(theme); err == nil {
			s.redis.Set(ctx, cacheKey, data, s.cacheTTL)
		}
	}
	return theme, nil
}

// GetMany lists themes matching the filter. Filter criteria are passed
// through into the SQL as-is; the engine does not interpret them.
func (s *ThemeStore) GetMany(ctx context.Context, filter models.ThemeFilter) ([]models.Theme, error) {
	query, args := buildThemeQuery(filter)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, enginerrors.NewStoreReadError("themes", err)
	}
	defer rows.Close()

	themes := []models.Theme{}
	for rows.Next() {
		theme, err := scanTheme(rows)
		if err != nil {
			return nil, enginerrors.NewStoreReadError("themes", err)
		}
		themes = append(themes, theme)
	}
	if err := rows.Err(); err != nil {
		return nil, enginerrors.NewStoreReadError("themes", err)
	}
	return themes, nil
}

// UpdateScore persists the computed score and factors and invalidates the
// cached copy.
func (s *ThemeStore) UpdateScore(ctx context.Context, themeID string, score float64, factors models.MonetizationFactors) error {
	factorsJSON, err := json.Marshal(factors)
	if err != nil {
		return enginerrors.NewStoreWriteError("theme", err)
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE themes
		SET monetization_score = $2, monetization_factors = $3, updated_at = $4
		WHERE id = $1`,
		themeID, score, factorsJSON, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return enginerrors.NewStoreWriteError("theme", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return enginerrors.NewThemeNotFoundError(themeID)
	}

	if s.redis != nil {
		if err := s.redis.Del(ctx, "theme:"+themeID).Err(); err != nil {
			s.logger.Warn("theme cache invalidation failed", map[string]interface{}{
				"themeId": themeID,
				"error":   err,
			})
		}
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTheme(row rowScanner) (models.Theme, error) {
	var theme models.Theme
	var description sql.NullString
	var dataSources, factors []byte
	var score sql.NullFloat64
	var createdAt, updatedAt sql.NullString

	err := row.Scan(
		&theme.ID, &theme.Name, &theme.Category, &description, &theme.MarketSize,
		&theme.CompetitionLevel, &theme.TechnicalDifficulty,
		&theme.EstimatedRevenue.Min, &theme.EstimatedRevenue.Max,
		&dataSources, &score, &factors, &createdAt, &updatedAt,
	)
	if err != nil {
		return models.Theme{}, err
	}

	theme.Description = description.String
	theme.CreatedAt = createdAt.String
	theme.UpdatedAt = updatedAt.String

	if len(dataSources) > 0 {
		if err := json.Unmarshal(dataSources, &theme.DataSources); err != nil {
			theme.DataSources = nil
		}
	}
	if score.Valid {
		v := score.Float64
		theme.MonetizationScore = &v
	}
	if len(factors) > 0 {
		var f models.MonetizationFactors
		if err := json.Unmarshal(factors, &f); err == nil {
			theme.MonetizationFactors = &f
		}
	}
	return theme, nil
}

var themeSortColumns = map[string]string{
	"name":              "name",
	"marketSize":        "market_size",
	"monetizationScore": "monetization_score",
	"createdAt":         "created_at",
	"updatedAt":         "updated_at",
}

func buildThemeQuery(filter models.ThemeFilter) (string, []interface{}) {
	var sb strings.Builder
	sb.WriteString("SELECT " + themeColumns + " FROM themes")

	conditions := []string{}
	args := []interface{}{}
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Category != "" {
		conditions = append(conditions, "category = "+arg(filter.Category))
	}
	if filter.CompetitionLevel != nil {
		conditions = append(conditions, "competition_level = "+arg(string(*filter.CompetitionLevel)))
	}
	if filter.TechnicalDifficulty != nil {
		conditions = append(conditions, "technical_difficulty = "+arg(string(*filter.TechnicalDifficulty)))
	}
	if filter.MinScore != nil {
		conditions = append(conditions, "monetization_score >= "+arg(*filter.MinScore))
	}
	if filter.MaxScore != nil {
		conditions = append(conditions, "monetization_score <= "+arg(*filter.MaxScore))
	}
	if filter.MinMarketSize != nil {
		conditions = append(conditions, "market_size >= "+arg(*filter.MinMarketSize))
	}
	if filter.MaxMarketSize != nil {
		conditions = append(conditions, "market_size <= "+arg(*filter.MaxMarketSize))
	}
	if len(conditions) > 0 {
		sb.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}

	sortColumn := "created_at"
	if col, ok := themeSortColumns[filter.SortBy]; ok {
		sortColumn = col
	}
	order := "DESC"
	if strings.EqualFold(filter.SortOrder, "asc") {
		order = "ASC"
	}
	sb.WriteString(fmt.Sprintf(" ORDER BY %s %s", sortColumn, order))

	if filter.Limit > 0 {
		sb.WriteString(" LIMIT " + arg(filter.Limit))
	}
	if filter.Offset > 0 {
		sb.WriteString(" OFFSET " + arg(filter.Offset))
	}
	return sb.String(), args
}
