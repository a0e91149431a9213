package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cartcompare/backend/config"
	httpDelivery "github.com/cartcompare/backend/internal/delivery/http"
	"github.com/cartcompare/backend/internal/infrastructure/catalog"
	"github.com/cartcompare/backend/internal/infrastructure/ingest"
	"github.com/cartcompare/backend/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger := config.SetupLogger(cfg.Log)
	logger.Info().
		Str("environment", cfg.Server.Environment).
		Str("port", cfg.Server.Port).
		Msg("starting cartcompare backend v1.0.0")

	// Build the session catalog: every retailer export is normalized, keyword
	// expanded and price parsed exactly once, before the server starts
	// answering queries.
	repo := catalog.NewMemoryCatalog()
	normalizer := usecase.NewNormalizer()
	catalogService := usecase.NewCatalogService(repo, normalizer, logger)
	source := ingest.NewFileSource(logger)

	ctx := context.Background()
	for _, store := range cfg.Catalog.Stores {
		path := filepath.Join(cfg.Catalog.Dir, store.File)
		records, err := source.Read(ctx, path)
		if err != nil {
			// A missing retailer export narrows the comparison, it does not
			// stop the service.
			logger.Warn().Err(err).Str("store", store.Name).Msg("catalog file skipped")
			continue
		}
		catalogService.LoadRecords(store.Name, records)
	}
	logger.Info().Int("products", repo.Len()).Strs("stores", repo.Stores()).Msg("catalog ready")

	matchCfg := usecase.MatchConfig{
		BulkThreshold:      cfg.Matching.BulkThreshold,
		StoreThreshold:     cfg.Matching.StoreThreshold,
		MaxComparisons:     cfg.Matching.MaxComparisons,
		MaxAlternatives:    cfg.Matching.MaxAlternatives,
		EnableDebugLogging: cfg.Matching.EnableDebugLogging,
	}
	comparisonService := usecase.NewComparisonService(repo, normalizer, matchCfg, logger)
	sessionService := usecase.NewSessionService(comparisonService, logger)

	logger.Info().
		Float64("bulkThreshold", comparisonService.Config().BulkThreshold).
		Float64("storeThreshold", comparisonService.Config().StoreThreshold).
		Bool("debug", cfg.Matching.EnableDebugLogging).
		Msg("matching engine ready")

	handler := httpDelivery.NewHandler(sessionService, comparisonService, repo)
	router := httpDelivery.SetupRouter(cfg, logger, handler)

	addr := ":" + cfg.Server.Port
	logger.Info().Str("addr", addr).Msg("server listening")
	if err := router.Run(addr); err != nil {
		logger.Fatal().Err(err).Msg("server failed")
	}
}
