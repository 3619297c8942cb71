// internal/store/trend_store.go
package store

import (
	"context"
	"database/sql"
	"fmt"

	enginerrors "monetization-engine/internal/common/errors"
	"monetization-engine/internal/models"
)

// TrendStore reads raw signal rows from Postgres.
type TrendStore struct {
	db *sql.DB
}

func NewTrendStore(db *sql.DB) *TrendStore {
	return &TrendStore{db: db}
}

// GetForTheme returns the trend rows for a theme, newest first. The engine
// averages these, so ordering only matters for limited queries.
func (s *TrendStore) GetForTheme(ctx context.Context, themeID string, query models.TrendQuery) ([]models.TrendData, error) {
	sqlQuery := `
		SELECT theme_id, source, search_volume, growth_rate, recorded_at
		FROM trend_data
		WHERE theme_id = $1`
	args := []interface{}{themeID}

	if query.SinceDays > 0 {
		args = append(args, query.SinceDays)
		sqlQuery += fmt.Sprintf(" AND recorded_at >= NOW() - ($%d || ' days')::interval", len(args))
	}
	if query.Source != "" {
		args = append(args, query.Source)
		sqlQuery += fmt.Sprintf(" AND source = $%d", len(args))
	}
	sqlQuery += " ORDER BY recorded_at DESC"
	if query.Limit > 0 {
		args = append(args, query.Limit)
		sqlQuery += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := s.db.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, enginerrors.NewStoreReadError("trend_data", err)
	}
	defer rows.Close()

	trends := []models.TrendData{}
	for rows.Next() {
		var td models.TrendData
		if err := rows.Scan(&td.ThemeID, &td.Source, &td.SearchVolume, &td.GrowthRate, &td.Timestamp); err != nil {
			return nil, enginerrors.NewStoreReadError("trend_data", err)
		}
		trends = append(trends, td)
	}
	if err := rows.Err(); err != nil {
		return nil, enginerrors.NewStoreReadError("trend_data", err)
	}
	return trends, nil
}
