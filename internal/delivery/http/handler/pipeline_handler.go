package handler

import (
	"career-match/internal/delivery/http/dto"
	"career-match/internal/delivery/http/middleware"
	"career-match/internal/pipeline"
	"career-match/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type ingestTracker interface {
	Trigger(params pipeline.IngestParams) bool
	Status() pipeline.Status
}

type PipelineHandler struct {
	tracker        ingestTracker
	defaultQueries []string
	queriesPerSec  float64
}

func NewPipelineHandler(tracker ingestTracker, defaultQueries []string, queriesPerSec float64) *PipelineHandler {
	return &PipelineHandler{tracker: tracker, defaultQueries: defaultQueries, queriesPerSec: queriesPerSec}
}

func (h *PipelineHandler) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	if r == nil {
		return
	}
	r.Post("/pipeline/ingest", auth, h.Ingest)
	r.Get("/pipeline/status", auth, h.GetStatus)
}

func (h *PipelineHandler) Ingest(c fiber.Ctx) error {
	var req dto.IngestRequest
	if err := bindBody(c, &req, true); err != nil {
		return err
	}
	queries := req.Queries
	if len(queries) == 0 {
		queries = h.defaultQueries
	}

	if !h.tracker.Trigger(pipeline.IngestParams{Queries: queries, Workers: req.Workers, QueriesPerSecond: h.queriesPerSec}) {
		return middleware.NewAppError(fiber.StatusConflict, "Ingest already running", nil, nil)
	}
	return response.Success(c, fiber.StatusAccepted, "Ingest started", h.tracker.Status())
}

func (h *PipelineHandler) GetStatus(c fiber.Ctx) error {
	return response.Success(c, fiber.StatusOK, response.MessageOK, h.tracker.Status())
}
