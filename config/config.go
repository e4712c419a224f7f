package config

import (
	"fmt"
	"math"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server   Server
	Database Database
	Grading  Grading
	Analysis Analysis
}

type Server struct {
	Port string `validate:"required"`
}

type Database struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

// Grading holds the scoring configuration surface: which strategy is active,
// the similarity threshold for the semantic strategy, keyword extraction caps
// and the per-strategy weight sets.
type Grading struct {
	Strategy          string  `validate:"required,oneof=lexical semantic"`
	EmbeddingProvider string  `validate:"required,oneof=gemini openai"`
	MatchThreshold    float64 `validate:"gte=0,lte=1"`
	MaxKeywords       int     `validate:"gt=0"`
	MaxConcepts       int     `validate:"gt=0"`
	CoverageWeight    float64 `validate:"gte=0,lte=1"`
	DensityWeight     float64 `validate:"gte=0,lte=1"`
	SemCoverageWeight float64 `validate:"gte=0,lte=1"`
	SimilarityWeight  float64 `validate:"gte=0,lte=1"`
	CompletenessWt    float64 `validate:"gte=0,lte=1"`
}

type Analysis struct {
	Enabled      bool
	Provider     string `validate:"omitempty,oneof=gemini openai"`
	GeminiApiKey string
	OpenAIApiKey string
}

func NewConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("GRADING_STRATEGY", "lexical")
	viper.SetDefault("GRADING_EMBEDDING_PROVIDER", "gemini")
	viper.SetDefault("GRADING_MATCH_THRESHOLD", 0.6)
	viper.SetDefault("GRADING_MAX_KEYWORDS", 10)
	viper.SetDefault("GRADING_MAX_CONCEPTS", 8)
	viper.SetDefault("GRADING_COVERAGE_WEIGHT", 0.7)
	viper.SetDefault("GRADING_DENSITY_WEIGHT", 0.3)
	viper.SetDefault("GRADING_SEM_COVERAGE_WEIGHT", 0.4)
	viper.SetDefault("GRADING_SIMILARITY_WEIGHT", 0.4)
	viper.SetDefault("GRADING_COMPLETENESS_WEIGHT", 0.2)
	viper.SetDefault("ANALYSIS_PROVIDER", "gemini")

	var config Config

	config.Server.Port = viper.GetString("SERVER_PORT")
	config.Database.Host = viper.GetString("DATABASE_HOST")
	config.Database.Port = viper.GetString("DATABASE_PORT")
	config.Database.User = viper.GetString("DATABASE_USER")
	config.Database.Password = viper.GetString("DATABASE_PASSWORD")
	config.Database.Name = viper.GetString("DATABASE_NAME")

	config.Grading.Strategy = viper.GetString("GRADING_STRATEGY")
	config.Grading.EmbeddingProvider = viper.GetString("GRADING_EMBEDDING_PROVIDER")
	config.Grading.MatchThreshold = viper.GetFloat64("GRADING_MATCH_THRESHOLD")
	config.Grading.MaxKeywords = viper.GetInt("GRADING_MAX_KEYWORDS")
	config.Grading.MaxConcepts = viper.GetInt("GRADING_MAX_CONCEPTS")
	config.Grading.CoverageWeight = viper.GetFloat64("GRADING_COVERAGE_WEIGHT")
	config.Grading.DensityWeight = viper.GetFloat64("GRADING_DENSITY_WEIGHT")
	config.Grading.SemCoverageWeight = viper.GetFloat64("GRADING_SEM_COVERAGE_WEIGHT")
	config.Grading.SimilarityWeight = viper.GetFloat64("GRADING_SIMILARITY_WEIGHT")
	config.Grading.CompletenessWt = viper.GetFloat64("GRADING_COMPLETENESS_WEIGHT")

	config.Analysis.Enabled = viper.GetBool("ANALYSIS_ENABLED")
	config.Analysis.Provider = viper.GetString("ANALYSIS_PROVIDER")
	config.Analysis.GeminiApiKey = viper.GetString("GEMINI_API_KEY")
	config.Analysis.OpenAIApiKey = viper.GetString("OPENAI_API_KEY")

	if err := config.Validate(); err != nil {
		return nil, err
	}

	log.Info().Str("strategy", config.Grading.Strategy).Str("port", config.Server.Port).Msg("Config loaded")
	return &config, nil
}

// Validate checks field constraints and the weight-set invariant. Marks stay
// within [0, question.marks] only when each strategy's weights sum to 1.0, so
// that is enforced here rather than left as a tuning knob.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	lexical := c.Grading.CoverageWeight + c.Grading.DensityWeight
	if math.Abs(lexical-1.0) > 1e-9 {
		return fmt.Errorf("lexical weights must sum to 1.0, got %.4f", lexical)
	}
	semantic := c.Grading.SemCoverageWeight + c.Grading.SimilarityWeight + c.Grading.CompletenessWt
	if math.Abs(semantic-1.0) > 1e-9 {
		return fmt.Errorf("semantic weights must sum to 1.0, got %.4f", semantic)
	}
	return nil
}
