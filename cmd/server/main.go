package main

import (
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kannadabaruthe/internal/audio"
	"kannadabaruthe/internal/config"
	"kannadabaruthe/internal/database"
	"kannadabaruthe/internal/handlers"
	"kannadabaruthe/internal/repository"
	"kannadabaruthe/internal/security"
	"kannadabaruthe/internal/service"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database with config (supports sqlite, postgres, mysql)
	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	log.Printf("Database connection established (type: %s)", cfg.DatabaseType)

	// Run migrations
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Migrations completed successfully")

	// Initialize repositories
	progressRepo := repository.NewProgressRepository(db)
	contentRepo := repository.NewContentRepository(db)

	// Audio fallback chain: recorded audio, cloud TTS, free fallback voice
	cloudTTS, err := audio.NewCloudTTSStrategy(cfg.AudioCacheDir, cfg.GoogleTTSKey, cfg.GoogleCredentialsFile)
	if err != nil {
		log.Fatalf("Failed to set up cloud TTS: %v", err)
	}
	player, err := audio.NewPlayer(cfg.AudioCacheDir,
		audio.NewRecordedStrategy(cfg.AudioCacheDir),
		cloudTTS,
		audio.NewFallbackTTSStrategy(cfg.AudioCacheDir),
	)
	if err != nil {
		log.Fatalf("Failed to set up audio player: %v", err)
	}

	// Initialize services. The generator is shared by the lesson and game
	// services, which run on independent handler goroutines.
	rng := service.NewRand(time.Now().UnixNano())
	lessonService := service.NewLessonService(progressRepo, contentRepo, player, rng)
	contentService := service.NewContentService(contentRepo)
	gameService := service.NewGameService(lessonService, contentRepo, rng)
	syncService := service.NewSyncService(db, progressRepo, contentRepo)
	authService, err := service.NewAuthorAuthService(cfg.AuthorPasscodeHash, cfg.AuthorPasscode, cfg.JWTSecret, cfg.SessionDuration)
	if err != nil {
		log.Fatalf("Failed to set up author auth: %v", err)
	}
	sessions := service.NewSessionManager()

	// Seed starter modules on an empty database
	if cfg.SeedContent {
		if err := contentService.SeedDefaultContent(); err != nil {
			log.Printf("Warning: Failed to seed starter content: %v", err)
		}
	}

	// Initialize handlers
	loginLimiter := security.NewRateLimiter(10, time.Minute)
	middleware := handlers.NewMiddleware(authService, loginLimiter)
	dashboardHandler := handlers.NewDashboardHandler(lessonService, contentService)
	lessonHandler := handlers.NewLessonHandler(lessonService, sessions)
	gameHandler := handlers.NewGameHandler(gameService, sessions)
	authorHandler := handlers.NewAuthorHandler(authService, contentService, syncService, sessions)
	audioHandler := handlers.NewAudioHandler(player)

	// Setup routes
	mux := http.NewServeMux()

	// Learner routes
	mux.HandleFunc("GET /api/dashboard", dashboardHandler.GetDashboard)
	mux.HandleFunc("GET /api/profile", dashboardHandler.GetProfile)
	mux.HandleFunc("PUT /api/profile/name", dashboardHandler.RenameProfile)
	mux.HandleFunc("PUT /api/profile/tts", dashboardHandler.SetGoogleTTS)

	// Lesson routes
	mux.HandleFunc("POST /api/lessons/{moduleId}", lessonHandler.StartLesson)
	mux.HandleFunc("GET /api/lesson", lessonHandler.GetLesson)
	mux.HandleFunc("POST /api/lesson/flip", lessonHandler.FlipCard)
	mux.HandleFunc("POST /api/lesson/answer", lessonHandler.AnswerCard)
	mux.HandleFunc("POST /api/lesson/end", lessonHandler.EndLesson)

	// Game routes
	mux.HandleFunc("POST /api/games/{kind}", gameHandler.StartGame)
	mux.HandleFunc("GET /api/game", gameHandler.GetGame)
	mux.HandleFunc("POST /api/game/input", gameHandler.GameInput)
	mux.HandleFunc("POST /api/game/end", gameHandler.EndGame)

	// Audio files
	mux.HandleFunc("GET /audio/{file}", audioHandler.ServeAudio)

	// Author routes
	mux.HandleFunc("POST /api/author/login", middleware.LimitLogin(authorHandler.Login))
	mux.HandleFunc("GET /api/author/export", middleware.RequireAuthor(authorHandler.Export))
	mux.HandleFunc("POST /api/author/import", middleware.RequireAuthor(authorHandler.Import))
	mux.HandleFunc("POST /api/author/reset", middleware.RequireAuthor(authorHandler.ResetProgress))
	mux.HandleFunc("POST /api/author/modules", middleware.RequireAuthor(authorHandler.CreateModule))
	mux.HandleFunc("PUT /api/author/modules/{moduleId}", middleware.RequireAuthor(authorHandler.UpdateModule))
	mux.HandleFunc("DELETE /api/author/modules/{moduleId}", middleware.RequireAuthor(authorHandler.DeleteModule))
	mux.HandleFunc("POST /api/author/modules/{moduleId}/phrases", middleware.RequireAuthor(authorHandler.AddPhrase))
	mux.HandleFunc("PUT /api/author/modules/{moduleId}/phrases/{phraseId}", middleware.RequireAuthor(authorHandler.UpdatePhrase))
	mux.HandleFunc("DELETE /api/author/modules/{moduleId}/phrases/{phraseId}", middleware.RequireAuthor(authorHandler.DeletePhrase))
	mux.HandleFunc("POST /api/author/modules/{moduleId}/sheet", middleware.RequireAuthor(authorHandler.ImportSheet))
	mux.HandleFunc("POST /api/author/trivia", middleware.RequireAuthor(authorHandler.AddTrivia))

	// Wrap with logging middleware
	handler := handlers.Logging(mux)

	// Start server
	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on http://localhost%s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	sessions.EndActive()
	log.Println("Server shutting down...")
}
