package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Matching MatchingConfig
	Semantic SemanticConfig
	Cache    CacheConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	LogLevel       string   `mapstructure:"log_level"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// MatchingConfig holds the ranking engine settings
type MatchingConfig struct {
	DefaultRadiusKm     float64 `mapstructure:"default_radius_km"`
	MaxResults          int     `mapstructure:"max_results"`
	SimilarityThreshold float64 `mapstructure:"similarity_threshold"`
	MinMatchScore       float64 `mapstructure:"min_match_score"`
	PriceTolerance      float64 `mapstructure:"price_tolerance"`
	SemanticWeight      float64 `mapstructure:"semantic_weight"`
	FuzzyWeight         float64 `mapstructure:"fuzzy_weight"`
	Concurrency         int     `mapstructure:"concurrency"`
}

// SemanticConfig holds embedding provider configuration. Provider is resolved
// from the available API keys: an OpenAI key selects openai, else a Hugging
// Face key selects huggingface, else fuzzy_only and semantic search stays off.
type SemanticConfig struct {
	Provider     string        `mapstructure:"provider"`
	HFAPIKey     string        `mapstructure:"hf_api_key"`
	OpenAIAPIKey string        `mapstructure:"openai_api_key"`
	HFModel      string        `mapstructure:"hf_model"`
	OpenAIModel  string        `mapstructure:"openai_model"`
	EmbedTimeout time.Duration `mapstructure:"embed_timeout"`
}

// CacheConfig holds vector cache configuration
type CacheConfig struct {
	Capacity int `mapstructure:"capacity"`
}

// Enabled reports whether semantic search is active.
func (s SemanticConfig) Enabled() bool {
	return s.Provider == "openai" || s.Provider == "huggingface"
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/tradelink/")

	v.SetEnvPrefix("TRADELINK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Config file is optional; env vars and defaults cover everything.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	resolveProvider(&config)

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.allowed_origins", []string{"*"})

	// Matching defaults
	v.SetDefault("matching.default_radius_km", 50.0)
	v.SetDefault("matching.max_results", 30)
	v.SetDefault("matching.similarity_threshold", 0.20)
	v.SetDefault("matching.min_match_score", 0.25)
	v.SetDefault("matching.price_tolerance", 0.25)
	v.SetDefault("matching.semantic_weight", 0.8)
	v.SetDefault("matching.fuzzy_weight", 0.2)
	v.SetDefault("matching.concurrency", 8)

	// Semantic defaults. Key defaults are registered empty so env overrides
	// are visible to Unmarshal.
	v.SetDefault("semantic.provider", "fuzzy_only")
	v.SetDefault("semantic.hf_api_key", "")
	v.SetDefault("semantic.openai_api_key", "")
	v.SetDefault("semantic.hf_model", "sentence-transformers/all-MiniLM-L6-v2")
	v.SetDefault("semantic.openai_model", "text-embedding-3-small")
	v.SetDefault("semantic.embed_timeout", "5s")

	// Cache defaults
	v.SetDefault("cache.capacity", 1000)
}

// resolveProvider auto-selects the embedding provider from configured keys.
func resolveProvider(config *Config) {
	switch {
	case config.Semantic.OpenAIAPIKey != "":
		config.Semantic.Provider = "openai"
	case config.Semantic.HFAPIKey != "":
		config.Semantic.Provider = "huggingface"
	default:
		config.Semantic.Provider = "fuzzy_only"
	}
}

// validate validates the configuration
func validate(config *Config) error {
	m := config.Matching

	if m.DefaultRadiusKm <= 0 {
		return fmt.Errorf("default radius must be positive, got: %v", m.DefaultRadiusKm)
	}
	if m.MaxResults <= 0 {
		return fmt.Errorf("max results must be positive, got: %d", m.MaxResults)
	}
	if m.SimilarityThreshold < 0 || m.SimilarityThreshold > 1 {
		return fmt.Errorf("similarity threshold must be in [0,1], got: %v", m.SimilarityThreshold)
	}
	if m.MinMatchScore < 0 || m.MinMatchScore > 1 {
		return fmt.Errorf("min match score must be in [0,1], got: %v", m.MinMatchScore)
	}
	if m.PriceTolerance <= 0 || m.PriceTolerance > 1 {
		return fmt.Errorf("price tolerance must be in (0,1], got: %v", m.PriceTolerance)
	}
	if m.SemanticWeight < 0 || m.FuzzyWeight < 0 {
		return fmt.Errorf("similarity weights must be non-negative")
	}

	if config.Cache.Capacity <= 0 {
		return fmt.Errorf("cache capacity must be positive, got: %d", config.Cache.Capacity)
	}

	switch config.Semantic.Provider {
	case "fuzzy_only", "huggingface", "openai":
	default:
		return fmt.Errorf("unknown semantic provider: %s", config.Semantic.Provider)
	}

	return nil
}
