package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edulearn-platform/learning-service/internal/models"
	"github.com/edulearn-platform/learning-service/internal/services"
	"github.com/edulearn-platform/learning-service/internal/utils"
)

type AIHandler struct {
	BaseHandler
	aiService services.AIService
	enabled   bool
}

// NewAIHandler wires the AI routes. When no provider is configured the
// handler answers 503 instead of calling through.
func NewAIHandler(aiService services.AIService, enabled bool, logger utils.Logger) *AIHandler {
	return &AIHandler{
		BaseHandler: NewBaseHandler(logger),
		aiService:   aiService,
		enabled:     enabled,
	}
}

func (h *AIHandler) available(c *gin.Context) bool {
	if !h.enabled {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "AI features are not configured"})
		return false
	}
	return true
}

// Chat answers an education question for the caller.
func (h *AIHandler) Chat(c *gin.Context) {
	if !h.available(c) {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.ChatRequest
	if !h.bindJSON(c, &req) {
		return
	}
	if req.Message == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "message is required"})
		return
	}

	reply, err := h.aiService.Chat(c.Request.Context(), userID, req.Message)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"reply": reply})
}

// GenerateQuiz returns a one-off quiz without persisting it.
func (h *AIHandler) GenerateQuiz(c *gin.Context) {
	if !h.available(c) {
		return
	}

	var req services.GenerateQuizRequest
	if !h.bindJSON(c, &req) {
		return
	}

	difficulty := models.Difficulty(req.Difficulty)
	if difficulty == "" {
		difficulty = models.DifficultyMedium
	}

	questions := h.aiService.GenerateQuiz(c.Request.Context(), req.Topic, difficulty)
	if len(questions) == 0 {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "AI generation failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"topic": req.Topic, "quiz": questions})
}

// Recommendation builds a study plan from the caller's weak topics.
func (h *AIHandler) Recommendation(c *gin.Context) {
	if !h.available(c) {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	recommendation, err := h.aiService.Recommendation(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recommendation": recommendation})
}

// AdaptiveQuiz generates a hard quiz on the caller's weakest topic.
func (h *AIHandler) AdaptiveQuiz(c *gin.Context) {
	if !h.available(c) {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	resp, err := h.aiService.AdaptiveQuiz(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
