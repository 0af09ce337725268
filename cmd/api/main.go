package main

import (
	"context"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"github.com/intervia/interview-api/internal/config"
	"github.com/intervia/interview-api/internal/conversation"
	"github.com/intervia/interview-api/internal/database"
	"github.com/intervia/interview-api/internal/engine"
	"github.com/intervia/interview-api/internal/events"
	"github.com/intervia/interview-api/internal/handler"
	"github.com/intervia/interview-api/internal/middleware"
	"github.com/intervia/interview-api/internal/models"
	"github.com/intervia/interview-api/internal/repository"
	"github.com/intervia/interview-api/internal/router"
	"github.com/intervia/interview-api/internal/service"
	"github.com/intervia/interview-api/pkg/ai"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(&models.Candidate{}, &models.Session{}, &models.Question{}, &models.Evaluation{}); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		logger.Warn().Err(err).Msg("redis unavailable, report cache and event fan-out disabled")
		redisClient = nil
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	var natsConn *nats.Conn
	if cfg.NATSURL != "" {
		natsConn, err = nats.Connect(cfg.NATSURL)
		if err != nil {
			logger.Warn().Err(err).Msg("nats unavailable, event fan-out over nats disabled")
			natsConn = nil
		} else {
			defer natsConn.Close()
		}
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	var aiClient interface {
		ai.AnswerEvaluator
		ai.Advisor
		ai.QuestionGenerator
	}
	if cfg.OpenAIAPIKey != "" {
		client, err := ai.NewOpenAIClient(ai.OpenAIConfig{
			APIKey:          cfg.OpenAIAPIKey,
			Model:           cfg.OpenAIModel,
			EvaluateTimeout: cfg.OpenAIEvaluateTimeout,
			SuggestTimeout:  cfg.OpenAISuggestTimeout,
			GenerateTimeout: cfg.OpenAIGenerateTimeout,
			Logger:          logger,
		})
		if err != nil {
			log.Fatalf("failed to create openai client: %v", err)
		}
		aiClient = client
	} else {
		logger.Warn().Msg("openai api key missing, running with heuristic evaluation only")
		aiClient = ai.OfflineClient{}
	}

	sessionRepo := repository.NewSessionRepository(db)
	candidateRepo := repository.NewCandidateRepository(db)
	questionRepo := repository.NewQuestionRepository(db)
	evaluationRepo := repository.NewEvaluationRepository(db)

	publisher := events.NewPublisher(redisClient, cfg.EventChannelBase, natsConn, logger)

	reportService := service.NewReportService(sessionRepo, candidateRepo, evaluationRepo, redisClient, cfg.ReportCacheTTL, logger)
	interviewService := service.NewInterviewService(service.InterviewServiceParams{
		Sessions:    sessionRepo,
		Candidates:  candidateRepo,
		Questions:   questionRepo,
		Evaluations: evaluationRepo,
		Evaluator:   aiClient,
		Advisor:     aiClient,
		Reports:     reportService,
		Publisher:   publisher,
		Validator:   validate,
		Logger:      logger,
		Options: service.InterviewOptions{
			SessionDuration: cfg.SessionDuration,
			Termination: engine.TerminationConfig{
				MaxQuestions:     cfg.MaxQuestions,
				InactivityWindow: cfg.InactivityWindow,
			},
		},
		Rand: rng,
	})
	seedService := service.NewSeedService(questionRepo, cfg.SeedEnabled, cfg.SeedToken, logger)

	conversationStore := conversation.NewMemoryStore(cfg.ConversationTTL)
	conversationService := conversation.NewService(conversationStore, aiClient, aiClient, rng, conversation.Config{
		ResponseTimeout: cfg.ResponseTimeout,
	}, logger)

	interviewHandler := handler.NewInterviewHandler(interviewService, logger)
	adaptiveHandler := handler.NewAdaptiveHandler(conversationService, cfg.ConversationTTL, logger)
	reportHandler := handler.NewReportHandler(reportService, logger)
	seedHandler := handler.NewSeedHandler(seedService, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		InterviewHandler: interviewHandler,
		AdaptiveHandler:  adaptiveHandler,
		ReportHandler:    reportHandler,
		SeedHandler:      seedHandler,
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
