// cmd/engine-manager/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"monetization-engine/internal/common/config"
	"monetization-engine/internal/common/database"
	"monetization-engine/internal/common/logger"
	"monetization-engine/internal/common/observability"
	"monetization-engine/internal/engine/batch"
	"monetization-engine/internal/engine/scoring"
	"monetization-engine/internal/history"
	"monetization-engine/internal/models"
	"monetization-engine/internal/store"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fallback := logger.New("info", "console")
		fallback.Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting monetization engine manager...")

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")
	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected")

	// --- Init Redis with retry ---
	var rdb *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		rdb, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return rdb.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")
	if err != nil {
		// Cache is optional: the theme store falls back to Postgres reads.
		zapLog.Warn("redis unavailable, continuing without cache", zap.Error(err))
		rdb = nil
	} else {
		defer rdb.Close()
		zapLog.Info("Redis connected")
	}

	// --- Wire the engine ---
	cacheTTL := time.Duration(cfg.Engine.CacheTTLSeconds) * time.Second
	var redisClient *redis.Client
	if rdb != nil {
		redisClient = rdb.GetClient()
	}

	themeStore := store.NewThemeStore(pg.GetDB(), redisClient, cacheTTL, log)
	historyStore := store.NewPostgresHistoryStore(pg.GetDB())
	trendStore := store.NewTrendStore(pg.GetDB())

	// When a search index is configured, batch runs page themes out of it
	// instead of the primary store. Scores are always written to Postgres.
	var lister themeLister = themeStore
	if len(cfg.Database.Elasticsearch.Addresses) > 0 {
		es, err := database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err == nil {
			err = es.Ping()
		}
		if err != nil {
			zapLog.Warn("elasticsearch unavailable, listing themes from postgres", zap.Error(err))
		} else {
			lister = store.NewThemeSearch(es.GetClient(), cfg.Database.Elasticsearch.ThemeIndex)
			zapLog.Info("Elasticsearch connected", zap.String("index", cfg.Database.Elasticsearch.ThemeIndex))
		}
	}

	calculator := scoring.NewCalculator(cfg.Engine.ScoreDecimals, log)
	deriver := scoring.NewDeriver(calculator, log)
	tracker := history.NewTracker(historyStore, log)
	orchestrator := batch.NewOrchestrator(deriver, calculator, tracker, themeStore, cfg.Batch.Concurrency, log)

	weights := weightOverrides(cfg.Engine.Weights)

	// --- Metrics and pprof endpoint ---
	if cfg.Metrics.Enabled {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
			})
			addr := fmt.Sprintf(":%d", cfg.Metrics.Port)
			zapLog.Info("metrics endpoint listening", zap.String("addr", addr))
			if err := http.ListenAndServe(addr, mux); err != nil {
				zapLog.Error("metrics server stopped", zap.Error(err))
			}
		}()
	}

	// --- Periodic batch scoring ---
	runBatch := func() {
		started := time.Now()
		status := "completed"
		if err := scoreAllThemes(ctx, cfg, log, lister, trendStore, tracker, orchestrator, weights); err != nil {
			status = "failed"
			log.Error("batch scoring run failed", map[string]interface{}{"error": err})
		}
		obs.RecordBatchRun(ctx, status)
		obs.RecordBatchDuration(ctx, time.Since(started), status)
	}

	if cfg.Batch.Enabled {
		runBatch()
		ticker := time.NewTicker(time.Duration(cfg.Batch.IntervalMinutes) * time.Minute)
		defer ticker.Stop()

		go func() {
			for {
				select {
				case <-ticker.C:
					runBatch()
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	zapLog.Info("engine manager running")

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	zapLog.Info("shutting down...")
	cancel()
}

// themeLister is the listing half of the theme port; both the Postgres store
// and the search adapter satisfy it.
type themeLister interface {
	GetMany(ctx context.Context, filter models.ThemeFilter) ([]models.Theme, error)
}

// scoreAllThemes pages through every theme, recomputes scores with fresh
// trend data, persists them and prunes expired history.
func scoreAllThemes(
	ctx context.Context,
	cfg *config.Config,
	log logger.Logger,
	lister themeLister,
	trendStore *store.TrendStore,
	tracker *history.Tracker,
	orchestrator *batch.Orchestrator,
	weights *scoring.WeightInput,
) error {
	offset := 0
	for {
		themes, err := lister.GetMany(ctx, models.ThemeFilter{
			Limit:  cfg.Batch.PageSize,
			Offset: offset,
		})
		if err != nil {
			return err
		}
		if len(themes) == 0 {
			break
		}

		trendByTheme := make(map[string][]models.TrendData, len(themes))
		for _, theme := range themes {
			trends, err := trendStore.GetForTheme(ctx, theme.ID, models.TrendQuery{
				SinceDays: cfg.Engine.TrendWindowDays,
			})
			if err != nil {
				log.Warn("trend fetch failed, scoring without trend data", map[string]interface{}{
					"themeId": theme.ID,
					"error":   err,
				})
				continue
			}
			trendByTheme[theme.ID] = trends
		}

		calcResult := orchestrator.CalculateBatch(ctx, themes, trendByTheme, batch.Options{
			Weights:     weights,
			SaveHistory: true,
		})
		saveResult := orchestrator.SaveScores(ctx, calcResult.Themes)

		log.Info("batch page scored", map[string]interface{}{
			"offset":     offset,
			"scored":     calcResult.Summary.Successful,
			"saved":      saveResult.Summary.Successful,
			"saveFailed": saveResult.Summary.Failed,
		})

		offset += cfg.Batch.PageSize
	}

	removed, err := tracker.Cleanup(ctx, cfg.Engine.HistoryRetentionDays)
	if err != nil {
		log.Warn("history cleanup failed", map[string]interface{}{"error": err})
	} else if removed > 0 {
		log.Info("history cleanup done", map[string]interface{}{"removed": removed})
	}
	return nil
}

// weightOverrides converts config weight overrides into the engine's partial
// weight input. Nil when the config carries no overrides.
func weightOverrides(overrides map[string]float64) *scoring.WeightInput {
	if len(overrides) == 0 {
		return nil
	}
	input := &scoring.WeightInput{}
	for name, value := range overrides {
		v := value
		switch name {
		case models.FactorMarketSize:
			input.MarketSize = &v
		case models.FactorPaymentWillingness:
			input.PaymentWillingness = &v
		case models.FactorCompetitionLevel:
			input.CompetitionLevel = &v
		case models.FactorRevenueModels:
			input.RevenueModels = &v
		case models.FactorCustomerAcquisitionCost:
			input.CustomerAcquisitionCost = &v
		case models.FactorCustomerLifetimeValue:
			input.CustomerLifetimeValue = &v
		}
	}
	return input
}
