// Command breakingnews runs the breaking news fan-out once and exits.
// It exits 1 when the run could not read the user directory, so the invoker
// (Cloud Run job, cron, CI) sees the failure.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"newspulse-backend/internal/breakingnews"
	breakingnewsdomain "newspulse-backend/internal/breakingnews/domain"
	breakingnewsRepo "newspulse-backend/internal/breakingnews/repository"
	recipientRepo "newspulse-backend/internal/recipient/repository"
	"newspulse-backend/pkg/config"
	"newspulse-backend/pkg/database"
	"newspulse-backend/pkg/fcm"
	"newspulse-backend/pkg/firebaseapp"
	"newspulse-backend/pkg/gnews"
)

func main() {
	if err := run(); err != nil {
		log.Printf("[BreakingNews] %v", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()

	app, err := firebaseapp.NewApp(ctx, firebaseapp.Config{
		ProjectID:       cfg.FirebaseProjectID,
		CredentialsFile: cfg.FirebaseCredentialsFile,
		CredentialsJSON: cfg.FirebaseCredentialsJSON,
	})
	if err != nil {
		return err
	}
	firestoreClient, err := app.Firestore(ctx)
	if err != nil {
		return fmt.Errorf("firestore: %w", err)
	}
	defer firestoreClient.Close()
	fcmClient, err := fcm.NewClient(ctx, app)
	if err != nil {
		return err
	}

	// History and the distributed lock are optional for a one-shot run
	var runs breakingnews.RunRecorder
	if cfg.DatabaseURL != "" {
		db, err := database.NewPostgresConnection(cfg)
		if err != nil {
			log.Printf("[WARN] Run history disabled: %v", err)
		} else if err := db.AutoMigrate(&breakingnewsdomain.JobRun{}); err != nil {
			log.Printf("[WARN] Run history disabled: %v", err)
		} else {
			runs = breakingnewsRepo.NewRunRepository(db)
		}
	}
	var locker breakingnews.Locker
	if cfg.RedisURL != "" {
		rdb, err := database.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			log.Printf("[WARN] Run lock disabled: %v", err)
		} else {
			defer rdb.Close()
			locker = breakingnewsRepo.NewRedisLocker(rdb)
		}
	}

	job := breakingnews.NewJob(breakingnews.JobDeps{
		Directory:   recipientRepo.NewFirestoreRecipientRepository(firestoreClient),
		Headlines:   breakingnews.NewGNewsSource(gnews.NewClient(cfg.GNewsAPIKey, cfg.GNewsBaseURL)),
		Push:        breakingnews.NewFCMGateway(fcmClient),
		Concurrency: cfg.FanoutConcurrency,
		Locale:      cfg.NewsLang,
		Country:     cfg.NewsCountry,
	})
	runner := breakingnews.NewRunner(job, runs, locker, cfg.BreakingNewsLockTTL)

	if cfg.BreakingNewsTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.BreakingNewsTimeout)
		defer cancel()
	}

	report, err := runner.Run(ctx, breakingnews.TriggerCLI)
	if errors.Is(err, breakingnews.ErrRunInProgress) {
		log.Printf("[BreakingNews] Another run is in progress, nothing to do")
		return nil
	}
	if report != nil {
		fmt.Println(report.Summary())
	}
	return err
}
