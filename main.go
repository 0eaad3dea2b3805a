package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	api "newspulse-backend/cmd/api"
	authdomain "newspulse-backend/internal/auth/domain"
	authRepo "newspulse-backend/internal/auth/repository"
	authUsecase "newspulse-backend/internal/auth/usecase"
	"newspulse-backend/internal/breakingnews"
	breakingnewsdomain "newspulse-backend/internal/breakingnews/domain"
	breakingnewsRepo "newspulse-backend/internal/breakingnews/repository"
	"newspulse-backend/internal/breakingnews/scheduler"
	"newspulse-backend/internal/breakingnews/trigger"
	newsRepo "newspulse-backend/internal/news/repository"
	newsUsecase "newspulse-backend/internal/news/usecase"
	recipientRepo "newspulse-backend/internal/recipient/repository"
	recipientUsecase "newspulse-backend/internal/recipient/usecase"
	"newspulse-backend/pkg/ai"
	"newspulse-backend/pkg/config"
	"newspulse-backend/pkg/database"
	"newspulse-backend/pkg/fcm"
	"newspulse-backend/pkg/firebaseapp"
	"newspulse-backend/pkg/gnews"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.NewPostgresConnection(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate database schemas
	if err := db.AutoMigrate(&authdomain.RefreshToken{}, &breakingnewsdomain.JobRun{}); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Redis is optional: without it headlines are not cached and runs are only locked in-process
	var headlineCache newsRepo.HeadlineCache
	var runLocker breakingnews.Locker
	if cfg.RedisURL != "" {
		rdb, err := database.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			log.Printf("[WARN] Redis unavailable, continuing without cache and run lock: %v", err)
		} else {
			defer rdb.Close()
			headlineCache = newsRepo.NewRedisHeadlineCache(rdb)
			runLocker = breakingnewsRepo.NewRedisLocker(rdb)
		}
	} else {
		log.Printf("[WARN] REDIS_URL not set, headline cache and distributed run lock disabled")
	}

	// Firebase backs the user directory, sign-in and push
	fbCfg := firebaseapp.Config{
		ProjectID:       cfg.FirebaseProjectID,
		CredentialsFile: cfg.FirebaseCredentialsFile,
		CredentialsJSON: cfg.FirebaseCredentialsJSON,
	}
	app, err := firebaseapp.NewApp(ctx, fbCfg)
	if err != nil {
		log.Fatal("Failed to initialize Firebase:", err)
	}
	firestoreClient, err := app.Firestore(ctx)
	if err != nil {
		log.Fatal("Failed to initialize Firestore:", err)
	}
	defer firestoreClient.Close()
	authClient, err := app.Auth(ctx)
	if err != nil {
		log.Fatal("Failed to initialize Firebase Auth:", err)
	}
	fcmClient, err := fcm.NewClient(ctx, app)
	if err != nil {
		log.Fatal("Failed to initialize FCM client:", err)
	}

	// Initialize repositories (dependency injection)
	recipientRepository := recipientRepo.NewFirestoreRecipientRepository(firestoreClient)
	savedArticleRepository := newsRepo.NewFirestoreSavedArticleRepository(firestoreClient)
	refreshTokenRepository := authRepo.NewRefreshTokenRepository(db)
	runRepository := breakingnewsRepo.NewRunRepository(db)

	if cfg.GNewsAPIKey == "" {
		log.Printf("[WARN] GNEWS_API_KEY not set, headline requests will fail")
	}
	gnewsClient := gnews.NewClient(cfg.GNewsAPIKey, cfg.GNewsBaseURL)

	// Sentiment provider reads Ollama settings at call time so the settings API takes effect
	runtimeSettings := api.NewRuntimeSettings(cfg.OllamaBaseURL, cfg.OllamaModel)
	ollama := ai.NewOllamaServiceWithGetters(runtimeSettings.OllamaBaseURL, runtimeSettings.OllamaModel)
	var sentimentService ai.SentimentService
	sentimentService, err = ai.NewSentimentServiceWithOllama(ai.Config{
		Provider:      ai.ProviderType(cfg.AIProvider),
		GeminiAPIKey:  cfg.GeminiAPIKey,
		OllamaBaseURL: cfg.OllamaBaseURL,
		OllamaModel:   cfg.OllamaModel,
		OpenAIBaseURL: cfg.OpenAIBaseURL,
		OpenAIAPIKey:  cfg.OpenAIAPIKey,
		OpenAIModel:   cfg.OpenAIModel,
	}, ollama)
	if err != nil {
		log.Printf("[WARN] Sentiment analysis disabled: %v", err)
	} else {
		log.Printf("Sentiment provider: %s", cfg.AIProvider)
	}

	// Breaking news job and its triggers
	job := breakingnews.NewJob(breakingnews.JobDeps{
		Directory:   recipientRepository,
		Headlines:   breakingnews.NewGNewsSource(gnewsClient),
		Push:        breakingnews.NewFCMGateway(fcmClient),
		Concurrency: cfg.FanoutConcurrency,
		Locale:      cfg.NewsLang,
		Country:     cfg.NewsCountry,
	})
	runner := breakingnews.NewRunner(job, runRepository, runLocker, cfg.BreakingNewsLockTTL)

	if cfg.BreakingNewsSchedule != "" {
		sched := scheduler.New(runner, cfg.BreakingNewsSchedule)
		if err := sched.Start(ctx); err != nil {
			log.Fatal("Failed to start breaking news scheduler:", err)
		}
		defer sched.Stop()
	} else {
		log.Printf("[WARN] BREAKING_NEWS_SCHEDULE empty, in-process schedule disabled")
	}

	// Pub/Sub trigger only when a project is configured
	if cfg.GoogleProjectID != "" {
		opts, err := firebaseapp.ClientOptions(ctx, fbCfg)
		if err != nil {
			log.Fatal("Failed to resolve Google credentials:", err)
		}
		triggerService, err := trigger.NewService(ctx, cfg.GoogleProjectID, cfg.BreakingNewsTopic, runner, cfg.BreakingNewsTimeout, opts...)
		if err != nil {
			log.Printf("[ERROR] Failed to initialize breaking news trigger: %v", err)
		} else {
			defer triggerService.Close()
			go func() {
				if err := triggerService.Start(ctx); err != nil {
					log.Printf("[ERROR] Breaking news trigger stopped: %v", err)
				}
			}()
		}
	} else {
		log.Printf("[WARN] GOOGLE_PROJECT_ID not configured, Pub/Sub trigger disabled")
	}

	go purgeExpiredRefreshTokens(ctx, refreshTokenRepository)

	// Initialize use cases (dependency injection)
	authUsecaseInstance := authUsecase.NewAuthUsecase(authRepo.NewFirebaseIdentity(authClient), refreshTokenRepository, recipientRepository, cfg)
	preferenceUsecaseInstance := recipientUsecase.NewPreferenceUsecase(recipientRepository)
	newsUsecaseInstance := newsUsecase.NewNewsUsecase(gnewsClient, headlineCache, savedArticleRepository, sentimentService, newsUsecase.Options{
		Lang:     cfg.NewsLang,
		Country:  cfg.NewsCountry,
		CacheTTL: cfg.HeadlineCacheTTL,
	})

	// Initialize HTTP handler
	handler := api.NewHandler(authUsecaseInstance, preferenceUsecaseInstance, newsUsecaseInstance, runner, runRepository, runtimeSettings, cfg)

	// Start server
	log.Printf("Server starting on port %s", cfg.Port)
	if err := handler.Start(ctx, ":"+cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

func purgeExpiredRefreshTokens(ctx context.Context, repo authRepo.RefreshTokenRepository) {
	ticker := time.NewTicker(6 * time.Hour)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := repo.DeleteExpired()
			if err != nil {
				log.Printf("[Auth] Failed to purge expired refresh tokens: %v", err)
				continue
			}
			if n > 0 {
				log.Printf("[Auth] Purged %d expired refresh tokens", n)
			}
		}
	}
}
