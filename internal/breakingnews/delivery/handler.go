package delivery

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"newspulse-backend/internal/breakingnews"
	"newspulse-backend/internal/breakingnews/domain"

	"github.com/gin-gonic/gin"
)

type Runner interface {
	Run(ctx context.Context, trigger string) (*breakingnews.JobReport, error)
}

type RunLister interface {
	ListRecent(ctx context.Context, limit int) ([]*domain.JobRun, error)
}

// AdminHandler exposes manual runs and run history
type AdminHandler struct {
	runner Runner
	runs   RunLister
}

// NewAdminHandler accepts a nil runs lister when history is not persisted
func NewAdminHandler(runner Runner, runs RunLister) *AdminHandler {
	return &AdminHandler{runner: runner, runs: runs}
}

// TriggerRun runs the job now and returns its report
// POST /api/admin/breaking-news/run
func (h *AdminHandler) TriggerRun(c *gin.Context) {
	report, err := h.runner.Run(c.Request.Context(), breakingnews.TriggerManual)
	if err != nil {
		switch {
		case errors.Is(err, breakingnews.ErrRunInProgress):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, breakingnews.ErrDirectoryUnavailable):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error(), "report": report})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"summary": report.Summary(),
		"report":  report,
	})
}

// ListRuns returns the latest runs
// GET /api/admin/runs?limit=20
func (h *AdminHandler) ListRuns(c *gin.Context) {
	if h.runs == nil {
		c.JSON(http.StatusOK, gin.H{"runs": []*domain.JobRun{}})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	runs, err := h.runs.ListRecent(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"runs": runs})
}
