package handler

import (
	"context"
	"strconv"

	"github.com/gofiber/fiber/v3"

	"cinemood/internal/models"
)

// TitleFinder serves title details and the discover page.
type TitleFinder interface {
	GetTitle(ctx context.Context, kind string, tmdbID int) (*models.TitleResponse, error)
	Similar(ctx context.Context, kind string, tmdbID int) (*models.SimilarResponse, error)
	Discover(ctx context.Context) (*models.DiscoverResponse, error)
}

// TitleHandler handles title and discover requests.
type TitleHandler struct {
	svc TitleFinder
}

// NewTitleHandler creates a new TitleHandler.
func NewTitleHandler(svc TitleFinder) *TitleHandler {
	return &TitleHandler{svc: svc}
}

func titleParams(c fiber.Ctx) (string, int, bool) {
	kind := c.Params("type")
	id, err := strconv.Atoi(c.Params("tmdb_id"))
	if kind == "" || err != nil {
		return "", 0, false
	}
	return kind, id, true
}

// GetTitle returns one title with generated descriptions.
// @Summary Get title detail
// @Tags titles
// @Produce json
// @Param type path string true "Media type" Enums(movie,tv)
// @Param tmdb_id path int true "TMDB ID"
// @Success 200 {object} models.TitleResponse
// @Failure 400 {object} models.EnvelopeError
// @Failure 404 {object} models.EnvelopeError
// @Failure 500 {object} models.EnvelopeError
// @Router /api/title/{type}/{tmdb_id} [get]
func (h *TitleHandler) GetTitle(c fiber.Ctx) error {
	kind, id, ok := titleParams(c)
	if !ok {
		return badRequest(c, "type and a numeric tmdb_id are required")
	}

	resp, err := h.svc.GetTitle(c.Context(), kind, id)
	if err != nil {
		return fail(c, err, "failed to retrieve title details", "type", kind, "tmdb_id", id)
	}
	return c.JSON(resp)
}

// Similar returns titles similar to the given one.
// @Summary Get similar titles
// @Tags titles
// @Produce json
// @Param type path string true "Media type" Enums(movie,tv)
// @Param tmdb_id path int true "TMDB ID"
// @Success 200 {object} models.SimilarResponse
// @Failure 400 {object} models.EnvelopeError
// @Failure 500 {object} models.EnvelopeError
// @Router /api/title/{type}/{tmdb_id}/similar [get]
func (h *TitleHandler) Similar(c fiber.Ctx) error {
	kind, id, ok := titleParams(c)
	if !ok {
		return badRequest(c, "type and a numeric tmdb_id are required")
	}

	resp, err := h.svc.Similar(c.Context(), kind, id)
	if err != nil {
		return fail(c, err, "failed to retrieve similar titles", "type", kind, "tmdb_id", id)
	}
	return c.JSON(resp)
}

// Discover returns the captioned discover sections.
// @Summary Discover page
// @Tags titles
// @Produce json
// @Success 200 {object} models.DiscoverResponse
// @Failure 500 {object} models.EnvelopeError
// @Router /api/discover [get]
func (h *TitleHandler) Discover(c fiber.Ctx) error {
	resp, err := h.svc.Discover(c.Context())
	if err != nil {
		return fail(c, err, "failed to build discover page")
	}
	return c.JSON(resp)
}
