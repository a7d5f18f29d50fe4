package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/cubixparts/quotebuilder/internal/catalog"
	"github.com/cubixparts/quotebuilder/internal/config"
	"github.com/cubixparts/quotebuilder/internal/quote"
	"github.com/cubixparts/quotebuilder/internal/repository/mongodb"
	"github.com/cubixparts/quotebuilder/internal/scheduler"
	"github.com/cubixparts/quotebuilder/internal/server/handlers"
	"github.com/cubixparts/quotebuilder/internal/server/router"
	"github.com/cubixparts/quotebuilder/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	source, err := newCatalogSource(context.Background(), cfg.Catalog, baseLogger)
	if err != nil {
		baseLogger.Fatal("failed to init catalog source", zap.Error(err))
	}

	var archive mongodb.Repository
	if cfg.Archive.URI != "" {
		mongoRepo, err := mongodb.NewMongoDBRepository(context.Background(), cfg.Archive.URI, cfg.Archive.DBName)
		if err != nil {
			baseLogger.Fatal("failed to init mongodb archive", zap.Error(err))
		}
		defer func() {
			if err := mongoRepo.Close(context.Background()); err != nil {
				baseLogger.Error("failed to close mongodb connection", zap.Error(err))
			}
		}()
		archive = mongoRepo
		baseLogger.Info("quote export archive enabled")
	}

	builder := quote.NewBuilder(baseLogger.Named("quote"))
	quoteHandler := handlers.NewQuoteHandler(builder, archive, cfg.Catalog.SuggestionLimit, cfg.Export.Columns, baseLogger.Named("handlers.quote"))
	engine := router.New(quoteHandler, baseLogger.Named("router"))

	watcher := scheduler.NewWatcher(source, "", cfg.Watcher.CronSchedule, baseLogger.Named("scheduler"))
	defer watcher.Stop()

	// The catalog load runs in the background; the API answers 503 until the
	// builder has a catalog attached.
	go func() {
		loadCtx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		table, err := source.Fetch(loadCtx)
		if err != nil {
			baseLogger.Fatal("catalog load failed", zap.Error(err), zap.String("source", source.Describe()))
		}

		store, err := catalog.Load(table.Headers, table.Rows)
		if err != nil {
			baseLogger.Fatal("catalog rejected", zap.Error(err), zap.String("source", source.Describe()))
		}

		builder.AttachCatalog(store)
		baseLogger.Info("catalog loaded",
			zap.String("source", source.Describe()),
			zap.Int("records", store.Len()))

		watcher.SetBaseline(table.Fingerprint)
		watcher.Start()
	}()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}

func newCatalogSource(ctx context.Context, cfg config.CatalogConfig, baseLogger *zap.Logger) (catalog.Source, error) {
	switch cfg.Source {
	case config.SourceHTTP:
		return catalog.NewHTTPSource(cfg.URL, 30*time.Second), nil
	case config.SourceSheets:
		return catalog.NewSheetsSource(ctx, cfg.CredentialsPath, cfg.SpreadsheetID, cfg.SheetRange, baseLogger.Named("catalog.sheets"))
	default:
		return catalog.NewFileSource(cfg.Path), nil
	}
}
