package handler

import (
	"context"

	"github.com/gofiber/fiber/v3"

	"cinemood/internal/models"
)

// ProfileReader aggregates a user's profile.
type ProfileReader interface {
	GetProfile(ctx context.Context, userID string) (*models.ProfileResponse, error)
}

// Library mutates a user's favorites and viewed log.
type Library interface {
	UpdateFavorite(ctx context.Context, req models.FavoriteRequest) (*models.LibraryResponse, error)
	MarkViewed(ctx context.Context, req models.ViewedRequest) (*models.LibraryResponse, error)
}

// ProfileHandler handles profile, favorite and viewed requests.
type ProfileHandler struct {
	profiles ProfileReader
	library  Library
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profiles ProfileReader, library Library) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, library: library}
}

// GetProfile returns the user's history, library and cinema personality.
// @Summary Get user profile
// @Tags profile
// @Produce json
// @Param user_id path string true "User ID"
// @Success 200 {object} models.ProfileResponse
// @Failure 400 {object} models.EnvelopeError
// @Failure 500 {object} models.EnvelopeError
// @Router /api/profile/{user_id} [get]
func (h *ProfileHandler) GetProfile(c fiber.Ctx) error {
	userID := c.Params("user_id")
	resp, err := h.profiles.GetProfile(c.Context(), userID)
	if err != nil {
		return fail(c, err, "failed to load profile", "user_id", userID)
	}
	return c.JSON(resp)
}

// Favorite adds or removes a favorite.
// @Summary Add or remove a favorite
// @Tags profile
// @Accept json
// @Produce json
// @Param body body models.FavoriteRequest true "Favorite"
// @Success 200 {object} models.LibraryResponse
// @Failure 400 {object} models.EnvelopeError
// @Failure 500 {object} models.EnvelopeError
// @Router /api/favorite [post]
func (h *ProfileHandler) Favorite(c fiber.Ctx) error {
	var req models.FavoriteRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	resp, err := h.library.UpdateFavorite(c.Context(), req)
	if err != nil {
		return fail(c, err, "failed to update favorites", "user_id", req.UserID, "tmdb_id", req.TMDBId)
	}
	return c.JSON(resp)
}

// Viewed records that the user opened a title.
// @Summary Mark a title as viewed
// @Tags profile
// @Accept json
// @Produce json
// @Param body body models.ViewedRequest true "Viewed title"
// @Success 200 {object} models.LibraryResponse
// @Failure 400 {object} models.EnvelopeError
// @Failure 500 {object} models.EnvelopeError
// @Router /api/viewed [post]
func (h *ProfileHandler) Viewed(c fiber.Ctx) error {
	var req models.ViewedRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	resp, err := h.library.MarkViewed(c.Context(), req)
	if err != nil {
		return fail(c, err, "failed to record viewed title", "user_id", req.UserID, "tmdb_id", req.TMDBId)
	}
	return c.JSON(resp)
}
