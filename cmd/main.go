package main

import (
	"context"
	"net/http"
	"time"

	"github.com/examly/autograde/config"
	"github.com/examly/autograde/database"
	"github.com/examly/autograde/internal/analysis"
	"github.com/examly/autograde/internal/controller"
	"github.com/examly/autograde/internal/embedding"
	"github.com/examly/autograde/internal/grader"
	"github.com/examly/autograde/internal/logger"
	"github.com/examly/autograde/internal/model"
	"github.com/examly/autograde/internal/repository"
	"github.com/examly/autograde/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/generative-ai-go/genai"
	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/fx"
	"google.golang.org/api/option"
	"gorm.io/gorm"
)

// @title Automated Answer Grading API
// @version 1.0
// @description Scores free-text student answers against model answers and produces feedback, with optional AI-generated qualitative analysis.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
func main() {
	logger.Init()

	app := fx.New(
		// Core application components
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			NewGinEngine,
			NewGeminiClient,
			NewOpenAIClient,
			NewEmbedder,
			NewAnalysisProvider,
			analysis.NewAnalyzer,
			grader.NewFromConfig,
		),

		// Repositories layer
		fx.Provide(
			repository.NewExamRepository,
			repository.NewQuestionRepository,
			repository.NewSubmissionRepository,
			repository.NewAnswerRepository,
			repository.NewGradingResultRepository,
		),

		// Services layer
		fx.Provide(
			service.NewExamService,
			service.NewSubmissionService,
		),

		// API controllers layer
		fx.Provide(
			controller.NewExamController,
			controller.NewSubmissionController,
		),

		fx.Invoke(RegisterRoutesAndStartServer),
		fx.Invoke(AutoMigrateDB),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewGinEngine() *gin.Engine {
	r := gin.New()

	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	return r
}

// NewGeminiClient builds the shared Gemini client. A missing key is not
// fatal: the engine stays functional on the lexical strategy, and analysis
// reports the provider as unconfigured.
func NewGeminiClient(lc fx.Lifecycle, cfg *config.Config) (*genai.Client, error) {
	if cfg.Analysis.GeminiApiKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is not set. Gemini-backed features will be non-functional.")
		return nil, nil
	}
	client, err := genai.NewClient(context.Background(), option.WithAPIKey(cfg.Analysis.GeminiApiKey))
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})
	return client, nil
}

func NewOpenAIClient(cfg *config.Config) *openai.Client {
	if cfg.Analysis.OpenAIApiKey == "" {
		log.Warn().Msg("OPENAI_API_KEY is not set. OpenAI-backed features will be non-functional.")
		return nil
	}
	return openai.NewClient(cfg.Analysis.OpenAIApiKey)
}

// NewEmbedder picks the embedding resource for the semantic strategy. A nil
// result is valid: grading then fails with a ScoringError if the semantic
// strategy is selected, and the caller can fall back to lexical.
func NewEmbedder(cfg *config.Config, geminiClient *genai.Client, openaiClient *openai.Client) embedding.Embedder {
	switch cfg.Grading.EmbeddingProvider {
	case "openai":
		if openaiClient != nil {
			return embedding.NewOpenAIEmbedder(openaiClient)
		}
	default:
		if geminiClient != nil {
			return embedding.NewGeminiEmbedder(geminiClient)
		}
	}
	log.Warn().Str("provider", cfg.Grading.EmbeddingProvider).Msg("Embedding provider unavailable; semantic strategy will fail with a scoring error")
	return nil
}

// NewAnalysisProvider chooses the generative-text backend once at startup.
// Nil means the analysis feature is off.
func NewAnalysisProvider(cfg *config.Config, geminiClient *genai.Client, openaiClient *openai.Client) analysis.Provider {
	if !cfg.Analysis.Enabled {
		return nil
	}
	switch cfg.Analysis.Provider {
	case "openai":
		if openaiClient != nil {
			return analysis.NewOpenAIProvider(openaiClient)
		}
	default:
		if geminiClient != nil {
			return analysis.NewGeminiProvider(geminiClient)
		}
	}
	log.Warn().Str("provider", cfg.Analysis.Provider).Msg("Analysis enabled but provider unavailable")
	return nil
}

// RegisterRoutesAndStartServer configures API routes and manages the HTTP
// server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	examCtrl *controller.ExamController,
	submissionCtrl *controller.SubmissionController,
) {
	api := router.Group("/api/v1")
	{
		api.POST("/exams", examCtrl.CreateExam)
		api.GET("/exams", examCtrl.GetAllExams)
		api.GET("/exams/:exam_id", examCtrl.GetExamDetails)

		api.POST("/exams/:exam_id/submissions", submissionCtrl.SubmitExam)
		api.POST("/submissions/:submission_id/grade", submissionCtrl.GradeSubmission)
		api.POST("/answers/:answer_id/grade", submissionCtrl.RegradeAnswer)
		api.GET("/submissions/:submission_id/results", submissionCtrl.GetSubmissionResults)
		api.POST("/submissions/:submission_id/analysis", submissionCtrl.AnalyzeSubmission)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Grading API server starting on port %s", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.Exam{},
		&model.Question{},
		&model.Submission{},
		&model.Answer{},
		&model.GradingResult{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
