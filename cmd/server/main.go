package main

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/tradelink/backend/config"
	httpDelivery "github.com/tradelink/backend/internal/delivery/http"
	"github.com/tradelink/backend/internal/infrastructure/cache"
	"github.com/tradelink/backend/internal/infrastructure/embedding"
	"github.com/tradelink/backend/internal/logger"
	"github.com/tradelink/backend/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load configuration: %v", err))
	}

	format := "console"
	if cfg.Server.Environment == "production" {
		format = "json"
	}
	log := logger.New(cfg.Server.LogLevel, format)
	defer log.Sync()

	log.Info("starting tradelink matching service",
		zap.String("environment", cfg.Server.Environment),
		zap.String("port", cfg.Server.Port),
		zap.String("semantic_provider", cfg.Semantic.Provider))

	// Semantic scorer only exists when an embedding provider is configured;
	// otherwise the engine runs fuzzy-only.
	var semantic *usecase.SemanticScorer
	if cfg.Semantic.Enabled() {
		vectorCache := cache.NewVectorCache(cfg.Cache.Capacity)

		apiKey := cfg.Semantic.HFAPIKey
		model := cfg.Semantic.HFModel
		if cfg.Semantic.Provider == embedding.ProviderOpenAI {
			apiKey = cfg.Semantic.OpenAIAPIKey
			model = cfg.Semantic.OpenAIModel
		}

		client := embedding.NewClient(embedding.Config{
			Provider: cfg.Semantic.Provider,
			APIKey:   apiKey,
			Model:    model,
		}, log)

		semantic = usecase.NewSemanticScorer(client, vectorCache, cfg.Semantic.EmbedTimeout, log)
		log.Info("semantic search enabled",
			zap.String("provider", cfg.Semantic.Provider),
			zap.String("model", model),
			zap.Int("cache_capacity", cfg.Cache.Capacity))
	} else {
		log.Info("semantic search disabled, matching with fuzzy similarity only")
	}

	matchService := usecase.NewMatchService(usecase.MatchConfig{
		SimilarityThreshold: cfg.Matching.SimilarityThreshold,
		MinMatchScore:       cfg.Matching.MinMatchScore,
		MaxResults:          cfg.Matching.MaxResults,
		PriceTolerance:      cfg.Matching.PriceTolerance,
		UseSemantic:         cfg.Semantic.Enabled(),
		SemanticWeight:      cfg.Matching.SemanticWeight,
		FuzzyWeight:         cfg.Matching.FuzzyWeight,
		Concurrency:         cfg.Matching.Concurrency,
	}, semantic, log)

	handler := httpDelivery.NewHandler(matchService, cfg.Matching.DefaultRadiusKm)
	router := httpDelivery.SetupRouter(cfg, handler, log)

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Info("server listening", zap.String("addr", addr))

	if err := router.Run(addr); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
