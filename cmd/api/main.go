package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/robfig/cron/v3"

	"resumate/backend/internal/config"
	"resumate/backend/internal/handlers"
	"resumate/backend/internal/repositories"
	"resumate/backend/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	// Initialize database
	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	settingsRepo := repositories.NewSettingsRepository(db)
	resumeRepo := repositories.NewResumeRepository(db)
	analysisRepo := repositories.NewAnalysisRepository(db)
	log.Println("✅ Repositories initialized successfully")

	// Initialize services
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatalf("❌ Failed to create upload directory: %v", err)
	}

	extractor := services.NewTextExtractor()
	llmFactory := services.NewLLMFactory(cfg.LLM)
	analysisCache := services.NewAnalysisCache(analysisRepo)
	log.Println("✅ Services initialized successfully")

	// Qdrant is optional: without it /resume/ask falls back to full-text
	// prompts instead of retrieval.
	var qdrantService services.QdrantService
	if qs, err := services.NewQdrantService(cfg.Qdrant.URL, cfg.Qdrant.APIKey, cfg.Qdrant.Collection); err != nil {
		log.Printf("⚠️  Qdrant unavailable, resume Q&A will use full text: %v\n", err)
	} else if err := qs.InitCollection(); err != nil {
		log.Printf("⚠️  Qdrant collection init failed, resume Q&A will use full text: %v\n", err)
	} else {
		qdrantService = qs
		log.Println("✅ Qdrant initialized successfully")
	}

	analyzerService := services.NewAnalyzerService(
		analysisCache,
		llmFactory,
		settingsRepo,
		qdrantService,
		cfg.LLM.MaxRetries,
	)
	log.Println("✅ Analyzer service initialized")

	interviewService := services.NewInterviewService(
		analyzerService,
		cfg.Interview.MaxQuestions,
		cfg.Interview.SessionRetention,
	)

	authService := services.NewAuthService(
		userRepo,
		cfg.Auth.JWTSecret,
		cfg.Auth.JWTIssuer,
		cfg.Auth.JWTTTL,
	)

	jobSearchService := services.NewJobSearchService(
		services.NewAdzunaClient(cfg.Jobs.AdzunaAppID, cfg.Jobs.AdzunaAppKey, cfg.Jobs.AdzunaBaseURL),
		services.NewJoobleClient(cfg.Jobs.JoobleAPIKey, cfg.Jobs.JoobleBaseURL),
		services.NewRemoteOKScraper(),
	)
	log.Println("✅ Job search service initialized")

	// Expired interview sessions are swept on a schedule; the deadline is
	// advisory and never enforced mid-interview.
	sweeper := cron.New()
	if _, err := sweeper.AddFunc(cfg.Interview.SweepSchedule, func() {
		if removed := interviewService.Sweep(time.Now()); removed > 0 {
			log.Printf("🧹 Swept %d expired interview sessions\n", removed)
		}
	}); err != nil {
		log.Fatalf("❌ Invalid sweep schedule %q: %v", cfg.Interview.SweepSchedule, err)
	}
	sweeper.Start()
	log.Println("✅ Session sweeper started")

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	settingsHandler := handlers.NewSettingsHandler(settingsRepo)
	resumeHandler := handlers.NewResumeHandler(
		resumeRepo,
		storageService,
		extractor,
		analyzerService,
		cfg.Storage.MaxFileSize,
	)
	interviewHandler := handlers.NewInterviewHandler(interviewService, analyzerService, resumeHandler)
	jobsHandler := handlers.NewJobsHandler(jobSearchService)
	healthHandler := handlers.NewHealthHandler(db, analysisCache, interviewService)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Resumate API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize),
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Routes
	api := app.Group("/api/v1")

	api.Get("/health", healthHandler.HandleHealth)

	api.Post("/auth/register", authHandler.HandleRegister)
	api.Post("/auth/login", authHandler.HandleLogin)

	user := api.Group("", handlers.ResolveUser(authService))
	user.Get("/settings", settingsHandler.HandleGetSettings)
	user.Put("/settings", settingsHandler.HandleUpdateSettings)

	user.Post("/resume/upload", resumeHandler.HandleUpload)
	user.Get("/resume/list", resumeHandler.HandleList)
	user.Post("/resume/analyze", resumeHandler.HandleAnalyze)
	user.Post("/resume/improve", resumeHandler.HandleImprove)
	user.Post("/resume/ask", resumeHandler.HandleAsk)

	user.Post("/interview/start", interviewHandler.HandleStart)
	user.Post("/interview/submit", interviewHandler.HandleSubmitAnswer)
	user.Get("/interview/summary/:interview_id", interviewHandler.HandleSummary)

	user.Post("/jobs/search", jobsHandler.HandleSearch)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Resumate API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/auth/register",
				"POST /api/v1/auth/login",
				"POST /api/v1/resume/upload",
				"POST /api/v1/resume/analyze",
				"POST /api/v1/resume/improve",
				"POST /api/v1/resume/ask",
				"POST /api/v1/interview/start",
				"POST /api/v1/interview/submit",
				"GET /api/v1/interview/summary/:interview_id",
				"POST /api/v1/jobs/search",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		sweeper.Stop()
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
