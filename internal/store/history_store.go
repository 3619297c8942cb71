// internal/store/history_store.go
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	enginerrors "monetization-engine/internal/common/errors"
	"monetization-engine/internal/models"

	"github.com/google/uuid"
)

// PostgresHistoryStore is the append-only score history log backed by the
// score_history table. Rows are never updated; retention cleanup is the only
// deletion path.
type PostgresHistoryStore struct {
	db *sql.DB
}

func NewPostgresHistoryStore(db *sql.DB) *PostgresHistoryStore {
	return &PostgresHistoryStore{db: db}
}

// Append inserts one immutable history row. The entry's ID and timestamp are
// assigned here when unset.
func (s *PostgresHistoryStore) Append(ctx context.Context, entry models.ScoreHistoryEntry) (models.ScoreHistoryEntry, error) {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}

	factorsJSON, err := json.Marshal(entry.Factors)
	if err != nil {
		return models.ScoreHistoryEntry{}, enginerrors.NewHistoryAppendError(entry.ThemeID, err)
	}
	metadataJSON := []byte("{}")
	if entry.Metadata != nil {
		if metadataJSON, err = json.Marshal(entry.Metadata); err != nil {
			return models.ScoreHistoryEntry{}, enginerrors.NewHistoryAppendError(entry.ThemeID, err)
		}
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO score_history (id, theme_id, score, factors, metadata, recorded_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		entry.ID, entry.ThemeID, entry.Score, factorsJSON, metadataJSON,
		entry.Timestamp.Format(time.RFC3339),
	)
	if err != nil {
		return models.ScoreHistoryEntry{}, enginerrors.NewHistoryAppendError(entry.ThemeID, err)
	}
	return entry, nil
}

// Query returns a theme's history rows, most recent first.
func (s *PostgresHistoryStore) Query(ctx context.Context, themeID string, query HistoryQuery) ([]models.ScoreHistoryEntry, error) {
	sqlQuery := `
		SELECT id, theme_id, score, factors, metadata, recorded_at
		FROM score_history
		WHERE theme_id = $1`
	args := []interface{}{themeID}

	if query.SinceDays > 0 {
		args = append(args, query.SinceDays)
		sqlQuery += fmt.Sprintf(" AND recorded_at >= NOW() - ($%d || ' days')::interval", len(args))
	}
	sqlQuery += " ORDER BY recorded_at DESC"
	if query.Limit > 0 {
		args = append(args, query.Limit)
		sqlQuery += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := s.db.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, enginerrors.NewHistoryQueryError(themeID, err)
	}
	defer rows.Close()

	entries := []models.ScoreHistoryEntry{}
	for rows.Next() {
		var entry models.ScoreHistoryEntry
		var factorsJSON, metadataJSON []byte
		if err := rows.Scan(&entry.ID, &entry.ThemeID, &entry.Score, &factorsJSON, &metadataJSON, &entry.Timestamp); err != nil {
			return nil, enginerrors.NewHistoryQueryError(themeID, err)
		}
		if err := json.Unmarshal(factorsJSON, &entry.Factors); err != nil {
			return nil, enginerrors.NewHistoryQueryError(themeID, err)
		}
		if len(metadataJSON) > 0 {
			_ = json.Unmarshal(metadataJSON, &entry.Metadata)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, enginerrors.NewHistoryQueryError(themeID, err)
	}
	return entries, nil
}

// DeleteOlderThan removes rows recorded before the cutoff and returns the
// count removed. Idempotent: a second run with the same cutoff removes 0.
func (s *PostgresHistoryStore) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM score_history WHERE recorded_at < $1`,
		cutoff.UTC().Format(time.RFC3339))
	if err != nil {
		return 0, enginerrors.NewStoreWriteError("score_history", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, enginerrors.NewStoreWriteError("score_history", err)
	}
	return int(n), nil
}
