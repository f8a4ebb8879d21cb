package handler

import (
	"context"
	"time"

	"career-match/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db    pinger
	cache pinger
}

// NewHealthHandler accepts nil dependencies; they are reported as disabled.
func NewHealthHandler(db, cache pinger) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.Health)
}

// Health answers 200 unless the database is down. The cache is best-effort
// and never fails the check.
func (h *HealthHandler) Health(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	dbStatus := probe(ctx, h.db)
	out := fiber.Map{
		"status":   "ok",
		"database": dbStatus,
		"redis":    probe(ctx, h.cache),
	}
	if dbStatus == "down" {
		out["status"] = "degraded"
		return response.Success(c, fiber.StatusServiceUnavailable, response.MessageServiceUnavailable, out)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func probe(ctx context.Context, p pinger) string {
	if p == nil {
		return "disabled"
	}
	if err := p.Ping(ctx); err != nil {
		return "down"
	}
	return "up"
}
