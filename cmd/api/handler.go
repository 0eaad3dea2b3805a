package api

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	authUsecase "newspulse-backend/internal/auth/usecase"
	breakingnewsDelivery "newspulse-backend/internal/breakingnews/delivery"
	newsUsecase "newspulse-backend/internal/news/usecase"
	recipientUsecase "newspulse-backend/internal/recipient/usecase"
	"newspulse-backend/pkg/config"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	authUsecase       authUsecase.AuthUsecase
	preferenceUsecase recipientUsecase.PreferenceUsecase
	newsUsecase       newsUsecase.NewsUsecase
	runner            breakingnewsDelivery.Runner
	runs              breakingnewsDelivery.RunLister
	settings          *RuntimeSettings
	config            *config.Config
}

// NewHandler accepts a nil runs lister when run history is not persisted
func NewHandler(authUc authUsecase.AuthUsecase, preferenceUc recipientUsecase.PreferenceUsecase, newsUc newsUsecase.NewsUsecase, runner breakingnewsDelivery.Runner, runs breakingnewsDelivery.RunLister, settings *RuntimeSettings, cfg *config.Config) *Handler {
	return &Handler{
		authUsecase:       authUc,
		preferenceUsecase: preferenceUc,
		newsUsecase:       newsUc,
		runner:            runner,
		runs:              runs,
		settings:          settings,
		config:            cfg,
	}
}

// Engine builds the gin engine with middleware and every route
func (h *Handler) Engine() *gin.Engine {
	r := gin.Default()
	r.Use(corsMiddleware(h.config.FrontendURL))
	SetupRoutes(r, h)
	return r
}

// Start serves until ctx is cancelled, then drains in-flight requests
func (h *Handler) Start(ctx context.Context, addr string) error {
	gin.SetMode(gin.ReleaseMode)
	srv := &http.Server{
		Addr:              addr,
		Handler:           h.Engine(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[API] Listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Println("[API] Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func corsMiddleware(frontendURL string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		switch {
		case frontendURL != "":
			c.Writer.Header().Set("Access-Control-Allow-Origin", frontendURL)
		case origin != "":
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		default:
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
