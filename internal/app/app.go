package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"

	"factskill/internal/application"
	"factskill/internal/config"
	"factskill/internal/infrastructure/database"
	"factskill/internal/infrastructure/i18n"
	"factskill/internal/infrastructure/scoring"
	"factskill/internal/infrastructure/workerpool"
	"factskill/internal/ports/output"
)

// App holds the wired skill and the resources it owns.
type App struct {
	Skill *application.Pipeline

	pool   *workerpool.Pool
	db     *pgxpool.Pool
	cfg    *config.Config
	logger *slog.Logger
}

// Build wires the request pipeline from cfg. The recommendation service and
// the interaction journal are only wired when configured.
func Build(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	translator, err := newTranslator(cfg)
	if err != nil {
		return nil, err
	}
	logger.Debug("catalogs loaded",
		slog.String("default_locale", translator.DefaultLocale()),
		slog.Any("locales", translator.Locales()),
	)

	pool, err := workerpool.New(cfg.WorkerPoolSize, logger)
	if err != nil {
		return nil, err
	}
	a := &App{pool: pool, cfg: cfg, logger: logger}

	var scorer output.Scorer
	if cfg.RecommendationURL != "" {
		scorer = scoring.NewClient(cfg.RecommendationURL, cfg.RecommendationTimeout, nil)
		logger.Info("recommendation service enabled", slog.String("url", cfg.RecommendationURL))
	} else {
		logger.Info("recommendation service disabled, level stays fixed",
			slog.Int64("level", cfg.RecommendationDefaultLevel))
	}

	var repo output.InteractionRepository
	if cfg.JournalEnabled() {
		if err := database.RunMigrations(cfg.DatabaseURL, logger); err != nil {
			a.Close()
			return nil, err
		}
		a.db, err = database.NewPool(ctx, cfg.DatabaseURL, logger)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("journal database: %w", err)
		}
		repo = database.NewInteractionRepository(a.db)
	}

	cell := application.NewRecommendationCell(cfg.RecommendationDefaultLevel)
	recommender := application.NewRecommender(cell, scorer, pool, logger)

	dispatcher := application.NewDispatcher(application.DefaultHandlers(recommender, logger)...)
	logger.Debug("handlers registered", slog.Any("order", dispatcher.Names()))

	a.Skill = application.NewPipeline(
		translator,
		dispatcher,
		application.NewErrorInterceptor(translator, logger),
		application.NewJournal(repo, pool, cell, logger),
		logger,
	)
	return a, nil
}

func newTranslator(cfg *config.Config) (*i18n.Translator, error) {
	if cfg.LocalesDir == "" {
		return i18n.NewEmbeddedTranslator(cfg.DefaultLocale)
	}
	store, err := i18n.LoadFS(os.DirFS(cfg.LocalesDir))
	if err != nil {
		return nil, fmt.Errorf("load catalogs from %s: %w", cfg.LocalesDir, err)
	}
	return i18n.NewTranslator(store, cfg.DefaultLocale)
}

// Close drains background work, then releases the database pool.
func (a *App) Close() {
	if a.pool != nil {
		if n := a.pool.Running(); n > 0 {
			a.logger.Info("waiting for background tasks", slog.Int("running", n))
		}
		if err := a.pool.Shutdown(a.cfg.ShutdownTimeout); err != nil {
			a.logger.Warn("worker pool did not drain", slog.String("error", err.Error()))
		}
	}
	if a.db != nil {
		a.db.Close()
	}
}
