package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/tradelink/backend/internal/domain"
)

// Supported embedding providers.
const (
	ProviderHuggingFace = "huggingface"
	ProviderOpenAI      = "openai"
	ProviderFuzzyOnly   = "fuzzy_only"
)

// Default provider endpoints, overridable for tests.
const (
	defaultHFBaseURL     = "https://api-inference.huggingface.co"
	defaultOpenAIBaseURL = "https://api.openai.com"
)

const maxAttempts = 3

// Config holds embedding client settings.
type Config struct {
	Provider string
	APIKey   string
	Model    string
	BaseURL  string
	Timeout  time.Duration
}

// Client fetches embedding vectors from the Hugging Face Inference API or the
// OpenAI embeddings API. Transient failures are retried with backoff; rate
// limiting protects the provider quota.
type Client struct {
	httpClient  *http.Client
	provider    string
	apiKey      string
	model       string
	baseURL     string
	rateLimiter *rate.Limiter
	log         *zap.Logger
}

// NewClient creates a new embedding API client.
func NewClient(cfg Config, log *zap.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.BaseURL == "" {
		switch cfg.Provider {
		case ProviderOpenAI:
			cfg.BaseURL = defaultOpenAIBaseURL
		default:
			cfg.BaseURL = defaultHFBaseURL
		}
	}
	if log == nil {
		log = zap.NewNop()
	}

	// Free-tier inference endpoints tolerate a couple of requests per
	// second; burst covers batch warm-up against a cold cache.
	limiter := rate.NewLimiter(rate.Limit(2), 10)

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		provider:    cfg.Provider,
		apiKey:      cfg.APIKey,
		model:       cfg.Model,
		baseURL:     cfg.BaseURL,
		rateLimiter: limiter,
		log:         log,
	}
}

// Embed returns the embedding vector for text from the configured provider.
func (c *Client) Embed(ctx context.Context, text string) ([]float64, error) {
	if text == "" {
		return nil, domain.ErrInvalidRequest
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	switch c.provider {
	case ProviderOpenAI:
		return c.embedOpenAI(ctx, text)
	case ProviderHuggingFace:
		return c.embedHuggingFace(ctx, text)
	default:
		return nil, domain.ErrEmbeddingDisabled
	}
}

// embedHuggingFace calls the HF feature-extraction pipeline. A 503 means the
// model is still loading; wait and retry.
func (c *Client) embedHuggingFace(ctx context.Context, text string) ([]float64, error) {
	reqURL := fmt.Sprintf("%s/pipeline/feature-extraction/%s", c.baseURL, c.model)

	payload, err := json.Marshal(map[string]any{
		"inputs":  text,
		"options": map[string]any{"wait_for_model": true},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		body, status, err := c.doPost(ctx, reqURL, payload)
		if err != nil {
			lastErr = err
			c.log.Warn("huggingface request error",
				zap.Int("attempt", attempt),
				zap.Error(err))
			sleepBackoff(ctx, attempt)
			continue
		}

		switch {
		case status == http.StatusOK:
			return parseHFVector(body)
		case status == http.StatusServiceUnavailable:
			// Model loading.
			lastErr = fmt.Errorf("%w: model loading", domain.ErrEmbeddingFailure)
			c.log.Info("huggingface model loading, retrying",
				zap.Int("attempt", attempt))
			sleepBackoff(ctx, attempt)
		default:
			return nil, fmt.Errorf("%w: status %d, body: %s", domain.ErrEmbeddingFailure, status, string(body))
		}
	}

	return nil, lastErr
}

// parseHFVector handles both response shapes the inference API produces: a
// flat vector, or a batch wrapping one vector.
func parseHFVector(body []byte) ([]float64, error) {
	var flat []float64
	if err := json.Unmarshal(body, &flat); err == nil && len(flat) > 0 {
		return flat, nil
	}

	var batch [][]float64
	if err := json.Unmarshal(body, &batch); err == nil && len(batch) > 0 && len(batch[0]) > 0 {
		return batch[0], nil
	}

	return nil, fmt.Errorf("%w: unexpected response shape", domain.ErrEmbeddingFailure)
}

// openAIEmbeddingResponse mirrors the subset of the OpenAI embeddings payload
// the client consumes.
type openAIEmbeddingResponse struct {
	Data []struct {
		Embedding []float64 `json:"embedding"`
	} `json:"data"`
}

func (c *Client) embedOpenAI(ctx context.Context, text string) ([]float64, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("%w: missing API key", domain.ErrEmbeddingFailure)
	}

	reqURL := fmt.Sprintf("%s/v1/embeddings", c.baseURL)
	payload, err := json.Marshal(map[string]string{
		"input": text,
		"model": c.model,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	body, status, err := c.doPost(ctx, reqURL, payload)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d, body: %s", domain.ErrEmbeddingFailure, status, string(body))
	}

	var resp openAIEmbeddingResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(resp.Data) == 0 || len(resp.Data[0].Embedding) == 0 {
		return nil, fmt.Errorf("%w: empty embedding", domain.ErrEmbeddingFailure)
	}

	return resp.Data[0].Embedding, nil
}

// doPost executes a JSON POST with auth headers and returns the raw body and
// status code.
func (c *Client) doPost(ctx context.Context, reqURL string, payload []byte) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(payload))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "TradeLink/1.0")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", domain.ErrEmbeddingFailure, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("failed to read response: %w", err)
	}

	return body, resp.StatusCode, nil
}

// sleepBackoff waits 500ms, 1s, 2s for attempts 1, 2, 3, respecting context
// cancellation.
func sleepBackoff(ctx context.Context, attempt int) {
	delay := time.Duration(1<<(attempt-1)) * 500 * time.Millisecond
	select {
	case <-time.After(delay):
	case <-ctx.Done():
	}
}
