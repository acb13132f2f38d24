package handler

import (
	"time"

	"github.com/gofiber/fiber/v3"
)

// HealthStatus reports which backends the process was configured with.
type HealthStatus struct {
	Env          string
	HasOpenAIKey bool
	HasTMDBKey   bool
	HasDatabase  bool
	HasRedis     bool
}

type healthEnvironment struct {
	NodeEnv      string `json:"node_env"`
	HasOpenAIKey bool   `json:"has_openai_key"`
	HasTMDBKey   bool   `json:"has_tmdb_key"`
	HasDatabase  bool   `json:"has_database"`
	HasRedis     bool   `json:"has_redis"`
}

type healthResponse struct {
	Status      string            `json:"status"`
	Uptime      float64           `json:"uptime"`
	Timestamp   string            `json:"timestamp"`
	Environment healthEnvironment `json:"environment"`
}

// HealthHandler serves the health check.
type HealthHandler struct {
	status  HealthStatus
	started time.Time
	now     func() time.Time
}

// NewHealthHandler creates a new HealthHandler; uptime counts from now.
func NewHealthHandler(status HealthStatus) *HealthHandler {
	return &HealthHandler{status: status, started: time.Now(), now: time.Now}
}

// Health returns service health status.
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} healthResponse
// @Router /api/health [get]
func (h *HealthHandler) Health(c fiber.Ctx) error {
	now := h.now()
	return c.JSON(healthResponse{
		Status:    "ok",
		Uptime:    now.Sub(h.started).Seconds(),
		Timestamp: now.UTC().Format(time.RFC3339),
		Environment: healthEnvironment{
			NodeEnv:      h.status.Env,
			HasOpenAIKey: h.status.HasOpenAIKey,
			HasTMDBKey:   h.status.HasTMDBKey,
			HasDatabase:  h.status.HasDatabase,
			HasRedis:     h.status.HasRedis,
		},
	})
}
