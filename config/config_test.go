package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Server: Server{Port: "8080"},
		Grading: Grading{
			Strategy:          "lexical",
			EmbeddingProvider: "gemini",
			MatchThreshold:    0.6,
			MaxKeywords:       10,
			MaxConcepts:       8,
			CoverageWeight:    0.7,
			DensityWeight:     0.3,
			SemCoverageWeight: 0.4,
			SimilarityWeight:  0.4,
			CompletenessWt:    0.2,
		},
		Analysis: Analysis{Provider: "gemini"},
	}
}

func TestValidate(t *testing.T) {
	t.Run("valid config passes", func(t *testing.T) {
		require.NoError(t, validConfig().Validate())
	})

	t.Run("unknown strategy rejected", func(t *testing.T) {
		cfg := validConfig()
		cfg.Grading.Strategy = "hybrid"
		assert.Error(t, cfg.Validate())
	})

	t.Run("lexical weights must sum to one", func(t *testing.T) {
		cfg := validConfig()
		cfg.Grading.CoverageWeight = 0.8
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "lexical weights")
	})

	t.Run("semantic weights must sum to one", func(t *testing.T) {
		cfg := validConfig()
		cfg.Grading.CompletenessWt = 0.3
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "semantic weights")
	})

	t.Run("threshold outside unit interval rejected", func(t *testing.T) {
		cfg := validConfig()
		cfg.Grading.MatchThreshold = 1.2
		assert.Error(t, cfg.Validate())
	})

	t.Run("unknown embedding provider rejected", func(t *testing.T) {
		cfg := validConfig()
		cfg.Grading.EmbeddingProvider = "local"
		assert.Error(t, cfg.Validate())
	})
}
