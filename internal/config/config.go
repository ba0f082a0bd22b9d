package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/hayden-cardwell/vertex-rag-assistant/internal/core/domain"
)

type Config struct {
	LogLevel string

	ProjectID       string
	Location        string
	CredentialsPath string

	Model       string
	Temperature float64
	MaxTokens   int

	RAGCorpus string
	RAGTopK   int

	GCSBucket    string
	ChunkSize    int
	ChunkOverlap int

	// Question and DocumentPath let the ask binaries run without flags,
	// everything supplied through the environment.
	Question     string
	DocumentPath string
}

// Load reads configuration from the environment, layering a .env file
// underneath when one is present in the working directory.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		LogLevel: mustEnv("LOG_LEVEL", "info"),

		ProjectID:       mustEnv("GCP_PROJECT_ID", ""),
		Location:        mustEnv("GCP_LOCATION", "us-central1"),
		CredentialsPath: mustEnv("GOOGLE_APPLICATION_CREDENTIALS", ""),

		Model:       mustEnv("VERTEX_MODEL", "gemini-2.5-flash"),
		Temperature: mustEnvFloat("VERTEX_TEMPERATURE", 0.7),
		MaxTokens:   mustEnvInt("VERTEX_MAX_TOKENS", 8192),

		RAGCorpus: mustEnv("RAG_CORPUS", ""),
		RAGTopK:   mustEnvInt("RAG_TOP_K", 5),

		GCSBucket:    mustEnv("GCS_BUCKET", ""),
		ChunkSize:    mustEnvInt("CHUNK_SIZE", 1024),
		ChunkOverlap: mustEnvInt("CHUNK_OVERLAP", 256),

		Question:     mustEnv("ASK_QUESTION", ""),
		DocumentPath: mustEnv("ASK_DOCUMENT", ""),
	}
}

// Need flags which optional settings a binary depends on. Project and
// location are always required.
type Need struct {
	Corpus bool
	Bucket bool
}

// Validate fails fast before any client is constructed.
func (c Config) Validate(need Need) error {
	if c.ProjectID == "" {
		return domain.WrapError(domain.ErrConfiguration, "validate config", errors.New("GCP_PROJECT_ID is required"))
	}
	if c.Location == "" {
		return domain.WrapError(domain.ErrConfiguration, "validate config", errors.New("GCP_LOCATION is required"))
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return domain.WrapError(domain.ErrConfiguration, "validate config", fmt.Errorf("VERTEX_TEMPERATURE out of range: %v", c.Temperature))
	}
	if c.MaxTokens <= 0 {
		return domain.WrapError(domain.ErrConfiguration, "validate config", fmt.Errorf("VERTEX_MAX_TOKENS must be positive: %d", c.MaxTokens))
	}
	if c.RAGTopK <= 0 {
		return domain.WrapError(domain.ErrConfiguration, "validate config", fmt.Errorf("RAG_TOP_K must be positive: %d", c.RAGTopK))
	}
	if need.Corpus && c.RAGCorpus == "" {
		return domain.WrapError(domain.ErrConfiguration, "validate config", errors.New("RAG_CORPUS is required"))
	}
	if need.Bucket && c.GCSBucket == "" {
		return domain.WrapError(domain.ErrConfiguration, "validate config", errors.New("GCS_BUCKET is required"))
	}
	return nil
}

func mustEnv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func mustEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func mustEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}
