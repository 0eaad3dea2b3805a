package delivery

import (
	"errors"
	"net/http"

	"newspulse-backend/internal/news/domain"
	"newspulse-backend/internal/news/usecase"

	"github.com/gin-gonic/gin"
)

// NewsHandler serves headlines, keyword stats, sentiment and saved articles
type NewsHandler struct {
	newsUsecase usecase.NewsUsecase
}

func NewNewsHandler(newsUsecase usecase.NewsUsecase) *NewsHandler {
	return &NewsHandler{newsUsecase: newsUsecase}
}

type SentimentRequest struct {
	Text string `json:"text"`
}

type SaveArticleRequest struct {
	Article domain.Article `json:"article" binding:"required"`
}

// GetHeadlines
// GET /api/news?category=technology&keyword=ai
func (h *NewsHandler) GetHeadlines(c *gin.Context) {
	articles, err := h.newsUsecase.GetHeadlines(c.Request.Context(), c.Query("category"), c.Query("keyword"))
	if err != nil {
		h.writeError(c, err, http.StatusBadGateway)
		return
	}
	c.JSON(http.StatusOK, gin.H{"articles": articles})
}

// GetKeywords
// GET /api/news/keywords?category=technology&keyword=ai
func (h *NewsHandler) GetKeywords(c *gin.Context) {
	counts, err := h.newsUsecase.GetKeywords(c.Request.Context(), c.Query("category"), c.Query("keyword"))
	if err != nil {
		h.writeError(c, err, http.StatusBadGateway)
		return
	}
	c.JSON(http.StatusOK, gin.H{"keywords": counts})
}

// AnalyzeSentiment
// POST /api/news/sentiment
func (h *NewsHandler) AnalyzeSentiment(c *gin.Context) {
	var req SentimentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sentiment, err := h.newsUsecase.AnalyzeSentiment(c.Request.Context(), req.Text)
	if err != nil {
		h.writeError(c, err, http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"label": sentiment,
		"emoji": sentiment.Emoji(),
	})
}

// ListSaved
// GET /api/saved?q=mars
func (h *NewsHandler) ListSaved(c *gin.Context) {
	saved, err := h.newsUsecase.ListSaved(c.Request.Context(), c.GetString("userID"), c.Query("q"))
	if err != nil {
		h.writeError(c, err, http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, gin.H{"saved": saved})
}

// SaveArticle
// POST /api/saved
func (h *NewsHandler) SaveArticle(c *gin.Context) {
	var req SaveArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	saved, err := h.newsUsecase.SaveArticle(c.Request.Context(), c.GetString("userID"), req.Article)
	if err != nil {
		h.writeError(c, err, http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusCreated, saved)
}

// DeleteSaved
// DELETE /api/saved/:id
func (h *NewsHandler) DeleteSaved(c *gin.Context) {
	if err := h.newsUsecase.DeleteSaved(c.Request.Context(), c.GetString("userID"), c.Param("id")); err != nil {
		h.writeError(c, err, http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Article removed"})
}

func (h *NewsHandler) writeError(c *gin.Context, err error, fallback int) {
	switch {
	case errors.Is(err, usecase.ErrInvalidCategory), errors.Is(err, usecase.ErrArticleURLRequired):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, usecase.ErrSentimentUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		c.JSON(fallback, gin.H{"error": err.Error()})
	}
}
