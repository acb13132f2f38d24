package handler

import (
	"context"

	"github.com/gofiber/fiber/v3"

	"cinemood/internal/models"
	"cinemood/internal/service"
	"cinemood/internal/validation"
)

// Chatter is the chat assistant.
type Chatter interface {
	Chat(ctx context.Context, userID string, turn service.NewTurn) (string, error)
	History(ctx context.Context, userID string) ([]models.Turn, error)
}

// ChatHandler handles the chat routes. Errors use the bare {error} body.
type ChatHandler struct {
	svc Chatter
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(svc Chatter) *ChatHandler {
	return &ChatHandler{svc: svc}
}

// Chat answers a message, optionally with an attached image.
// @Summary Chat with the assistant
// @Tags chat
// @Accept json
// @Produce json
// @Param body body models.ChatRequest true "Message"
// @Success 200 {object} models.ChatResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /chat [post]
func (h *ChatHandler) Chat(c fiber.Ctx) error {
	var req models.ChatRequest
	if err := c.Bind().JSON(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{Error: "invalid request body"})
	}
	if err := validation.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{Error: err.Error()})
	}

	reply, err := h.svc.Chat(c.Context(), req.UserID, service.NewTurn{Text: req.Message, Image: req.Image})
	if err != nil {
		return failBare(c, err, "failed to get a reply", "user_id", req.UserID)
	}
	return c.JSON(models.ChatResponse{Reply: reply})
}

// History returns the user's chat turns, oldest first.
// @Summary Get chat history
// @Tags chat
// @Produce json
// @Param user_id path string true "User ID"
// @Success 200 {array} models.Turn
// @Failure 500 {object} models.ErrorResponse
// @Router /history/{user_id} [get]
func (h *ChatHandler) History(c fiber.Ctx) error {
	userID := c.Params("user_id")
	turns, err := h.svc.History(c.Context(), userID)
	if err != nil {
		return failBare(c, err, "failed to load chat history", "user_id", userID)
	}
	if turns == nil {
		turns = []models.Turn{}
	}
	return c.JSON(turns)
}
