package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"newspulse-backend/pkg/ai"

	"github.com/gin-gonic/gin"
)

// OllamaSettings is the operator-editable part of the sentiment setup
type OllamaSettings struct {
	BaseURL string `json:"ollama_base_url"`
	Model   string `json:"ollama_model"`
}

// RuntimeSettings is read by the Ollama provider on every call, so updates apply without restart
type RuntimeSettings struct {
	mu     sync.RWMutex
	ollama OllamaSettings
}

func NewRuntimeSettings(ollamaBaseURL, ollamaModel string) *RuntimeSettings {
	return &RuntimeSettings{ollama: OllamaSettings{BaseURL: ollamaBaseURL, Model: ollamaModel}}
}

func (s *RuntimeSettings) Ollama() OllamaSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ollama
}

func (s *RuntimeSettings) OllamaBaseURL() string {
	return s.Ollama().BaseURL
}

func (s *RuntimeSettings) OllamaModel() string {
	return s.Ollama().Model
}

// SetOllama keeps the current model when model is empty
func (s *RuntimeSettings) SetOllama(baseURL, model string) OllamaSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ollama.BaseURL = baseURL
	if model != "" {
		s.ollama.Model = model
	}
	return s.ollama
}

type SettingsHandler struct {
	settings *RuntimeSettings
}

func NewSettingsHandler(settings *RuntimeSettings) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

type UpdateOllamaSettingsRequest struct {
	OllamaBaseURL string `json:"ollama_base_url" binding:"required"`
	OllamaModel   string `json:"ollama_model,omitempty"`
}

// GET /api/settings/ollama
func (h *SettingsHandler) GetOllama(c *gin.Context) {
	c.JSON(http.StatusOK, h.settings.Ollama())
}

// PUT /api/settings/ollama
func (h *SettingsHandler) UpdateOllama(c *gin.Context) {
	var req UpdateOllamaSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated := h.settings.SetOllama(req.OllamaBaseURL, req.OllamaModel)
	c.JSON(http.StatusOK, gin.H{
		"message":         "Ollama settings updated successfully",
		"ollama_base_url": updated.BaseURL,
		"ollama_model":    updated.Model,
	})
}

// CheckOllama reports whether an Ollama server answers and which models it has.
// An empty body checks the current settings.
// POST /api/settings/ollama/test
func (h *SettingsHandler) CheckOllama(c *gin.Context) {
	current := h.settings.Ollama()

	var req struct {
		OllamaBaseURL string `json:"ollama_base_url"`
	}
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if strings.TrimSpace(string(body)) != "" {
		if err := json.Unmarshal(body, &req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
			return
		}
	}
	baseURL := req.OllamaBaseURL
	if baseURL == "" {
		baseURL = current.BaseURL
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	ollama := ai.NewOllamaService(baseURL, current.Model)
	if err := ollama.Ping(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"connected": false,
			"error":     err.Error(),
		})
		return
	}

	models, err := ollama.ListModels(ctx)
	if err != nil {
		models = []string{}
	}

	c.JSON(http.StatusOK, gin.H{
		"connected":       true,
		"ollama_base_url": baseURL,
		"models":          models,
	})
}
