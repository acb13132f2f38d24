package handler

import (
	"context"

	"github.com/gofiber/fiber/v3"

	"cinemood/internal/models"
)

// Recommender produces mood-based recommendations.
type Recommender interface {
	Recommend(ctx context.Context, userID, moodText string) (*models.RecommendResponse, error)
}

// RecommendHandler handles mood search requests.
type RecommendHandler struct {
	svc Recommender
}

// NewRecommendHandler creates a new RecommendHandler.
func NewRecommendHandler(svc Recommender) *RecommendHandler {
	return &RecommendHandler{svc: svc}
}

// Recommend turns a mood description into recommendations.
// @Summary Recommend titles for a mood
// @Tags recommendations
// @Accept json
// @Produce json
// @Param body body models.RecommendRequest true "Mood"
// @Success 200 {object} models.RecommendResponse
// @Failure 400 {object} models.EnvelopeError
// @Failure 500 {object} models.EnvelopeError
// @Router /api/recommend [post]
func (h *RecommendHandler) Recommend(c fiber.Ctx) error {
	var req models.RecommendRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	resp, err := h.svc.Recommend(c.Context(), req.UserID, req.MoodText)
	if err != nil {
		return fail(c, err, "failed to get recommendations", "user_id", req.UserID)
	}
	return c.JSON(resp)
}
