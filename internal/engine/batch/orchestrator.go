// internal/engine/batch/orchestrator.go
package batch

import (
	"context"
	"sync"
	"time"

	enginerrors "monetization-engine/internal/common/errors"
	"monetization-engine/internal/common/logger"
	"monetization-engine/internal/common/metrics"
	"monetization-engine/internal/common/validation"
	"monetization-engine/internal/engine/scoring"
	"monetization-engine/internal/history"
	"monetization-engine/internal/models"
	"monetization-engine/internal/store"
)

// Orchestrator applies per-theme scoring across collections and coordinates
// the optional persistence that follows. Themes are processed independently:
// one theme's failure is recorded and never aborts the batch.
type Orchestrator struct {
	deriver     *scoring.Deriver
	calculator  *scoring.Calculator
	tracker     *history.Tracker
	writer      store.ThemeWriter
	concurrency int
	logger      logger.Logger
}

func NewOrchestrator(
	deriver *scoring.Deriver,
	calculator *scoring.Calculator,
	tracker *history.Tracker,
	writer store.ThemeWriter,
	concurrency int,
	log logger.Logger,
) *Orchestrator {
	if concurrency < 1 {
		concurrency = 1
	}
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Orchestrator{
		deriver:     deriver,
		calculator:  calculator,
		tracker:     tracker,
		writer:      writer,
		concurrency: concurrency,
		logger:      log,
	}
}

// ItemError records one theme's failure within a batch.
type ItemError struct {
	ThemeID string `json:"themeId"`
	Err     error  `json:"error"`
}

// Summary counts batch outcomes.
type Summary struct {
	Total      int `json:"total"`
	Successful int `json:"successful"`
	Failed     int `json:"failed"`
	Skipped    int `json:"skipped"`
}

// Result is the partial-success payload of a batch operation.
type Result struct {
	Themes  []models.Theme `json:"results"`
	Summary Summary        `json:"summary"`
	Errors  []ItemError    `json:"errors,omitempty"`
}

// Options tunes one batch calculation.
type Options struct {
	// Weights overrides the default factor weights for every theme in the
	// batch. Nil keeps the defaults.
	Weights *scoring.WeightInput
	// SaveHistory appends a score history entry for every successfully
	// scored theme.
	SaveHistory bool
}

// CalculateBatch derives factors and scores for every theme. Themes failing
// validation are returned unchanged with their error recorded; empty input
// yields an empty result.
func (o *Orchestrator) CalculateBatch(ctx context.Context, themes []models.Theme, trendByTheme map[string][]models.TrendData, opts Options) Result {
	started := time.Now()
	result := Result{
		Themes:  make([]models.Theme, 0, len(themes)),
		Summary: Summary{Total: len(themes)},
	}

	historyItems := make([]history.BatchRecordItem, 0, len(themes))

	for _, theme := range themes {
		if err := validation.ValidateTheme(theme); err != nil {
			result.Themes = append(result.Themes, theme)
			result.Errors = append(result.Errors, ItemError{ThemeID: theme.ID, Err: err})
			result.Summary.Failed++
			metrics.ThemesScored.WithLabelValues("invalid").Inc()
			metrics.BatchFailures.WithLabelValues("calculate", string(enginerrors.CodeOf(err))).Inc()
			o.logger.Warn("skipping invalid theme in batch", map[string]interface{}{
				"themeId": theme.ID,
				"error":   err,
			})
			continue
		}

		updated := o.deriver.UpdateThemeWithScore(theme, trendByTheme[theme.ID], opts.Weights)
		result.Themes = append(result.Themes, updated)
		result.Summary.Successful++
		metrics.ThemesScored.WithLabelValues("scored").Inc()

		if opts.SaveHistory {
			historyItems = append(historyItems, history.BatchRecordItem{
				ThemeID: updated.ID,
				Score:   *updated.MonetizationScore,
				Factors: *updated.MonetizationFactors,
				Metadata: map[string]interface{}{
					"source": "batch",
				},
			})
		}
	}

	if opts.SaveHistory && o.tracker != nil {
		recorded := o.tracker.RecordBatch(ctx, historyItems)
		for themeID, err := range recorded.Errors {
			result.Errors = append(result.Errors, ItemError{ThemeID: themeID, Err: err})
			metrics.BatchFailures.WithLabelValues("history", string(enginerrors.CodeOf(err))).Inc()
		}
	}

	metrics.ScoringDuration.WithLabelValues("calculate_batch").Observe(time.Since(started).Seconds())
	o.logger.Info("batch calculation finished", map[string]interface{}{
		"total":      result.Summary.Total,
		"successful": result.Summary.Successful,
		"failed":     result.Summary.Failed,
	})
	return result
}

// RecalculateWithNewWeights re-scores themes from their stored factors
// without re-deriving them. Themes lacking stored factors pass through
// unchanged and are counted as skipped.
func (o *Orchestrator) RecalculateWithNewWeights(themes []models.Theme, weights *scoring.WeightInput) Result {
	result := Result{
		Themes:  make([]models.Theme, 0, len(themes)),
		Summary: Summary{Total: len(themes)},
	}

	for _, theme := range themes {
		if theme.MonetizationFactors == nil {
			result.Themes = append(result.Themes, theme)
			result.Summary.Skipped++
			o.logger.Info("theme has no stored factors, skipping reweight", map[string]interface{}{
				"themeId": theme.ID,
			})
			continue
		}

		score := o.calculator.ScoreNormalized(*theme.MonetizationFactors, weights)
		updated := theme
		updated.MonetizationScore = &score
		result.Themes = append(result.Themes, updated)
		result.Summary.Successful++
	}
	return result
}

// SaveScores persists every scored theme's score and factors through the
// theme writer, fanning writes out across the configured concurrency. A slow
// or failing write for one theme never delays or fails the others.
func (o *Orchestrator) SaveScores(ctx context.Context, themes []models.Theme) Result {
	result := Result{Summary: Summary{Total: len(themes)}}

	var (
		mu  sync.Mutex
		wg  sync.WaitGroup
		sem = make(chan struct{}, o.concurrency)
	)

	for _, theme := range themes {
		if theme.MonetizationScore == nil || theme.MonetizationFactors == nil {
			mu.Lock()
			result.Summary.Skipped++
			mu.Unlock()
			continue
		}

		wg.Add(1)
		sem <- struct{}{}
		go func(theme models.Theme) {
			defer wg.Done()
			defer func() { <-sem }()

			err := o.writer.UpdateScore(ctx, theme.ID, *theme.MonetizationScore, *theme.MonetizationFactors)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Errors = append(result.Errors, ItemError{ThemeID: theme.ID, Err: err})
				result.Summary.Failed++
				metrics.BatchFailures.WithLabelValues("save", string(enginerrors.CodeOf(err))).Inc()
				o.logger.Error("theme score write failed", map[string]interface{}{
					"themeId": theme.ID,
					"error":   err,
				})
				return
			}
			result.Themes = append(result.Themes, theme)
			result.Summary.Successful++
		}(theme)
	}

	wg.Wait()
	return result
}
