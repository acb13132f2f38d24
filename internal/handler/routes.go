package handler

import "github.com/gofiber/fiber/v3"

// Handlers groups the route handlers registered by RegisterRoutes.
type Handlers struct {
	Recommend *RecommendHandler
	Title     *TitleHandler
	Profile   *ProfileHandler
	Chat      *ChatHandler
	Health    *HealthHandler
}

// RegisterRoutes mounts the CineMood API and the chat routes.
func RegisterRoutes(app fiber.Router, h Handlers) {
	api := app.Group("/api")
	api.Get("/health", h.Health.Health)
	api.Post("/recommend", h.Recommend.Recommend)
	api.Get("/title/:type/:tmdb_id", h.Title.GetTitle)
	api.Get("/title/:type/:tmdb_id/similar", h.Title.Similar)
	api.Get("/discover", h.Title.Discover)
	api.Get("/profile/:user_id", h.Profile.GetProfile)
	api.Post("/favorite", h.Profile.Favorite)
	api.Post("/viewed", h.Profile.Viewed)

	app.Post("/chat", h.Chat.Chat)
	app.Get("/history/:user_id", h.Chat.History)
}
