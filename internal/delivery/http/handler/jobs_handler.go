package handler

import (
	"career-match/internal/delivery/http/dto"
	"career-match/internal/pkg/response"
	"career-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type JobsHandler struct {
	uc usecase.JobSearchUsecase
}

func NewJobsHandler(uc usecase.JobSearchUsecase) *JobsHandler {
	return &JobsHandler{uc: uc}
}

// RegisterRoutes mounts the public job routes. The :id route is registered
// separately so static /jobs/* paths owned by other handlers win.
func (h *JobsHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/jobs", h.List)
	r.Get("/jobs/search", h.Search)
}

func (h *JobsHandler) RegisterDetailRoute(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/jobs/:id", h.Get)
}

func (h *JobsHandler) List(c fiber.Ctx) error {
	limit, err := parseQueryInt(c, "limit", 20)
	if err != nil {
		return err
	}
	offset, err := parseQueryInt(c, "offset", 0)
	if err != nil {
		return err
	}

	items, err := h.uc.List(c.Context(), limit, offset)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.List(c, response.MessageOK, dto.NewJobResponses(items), limit, offset, len(items))
}

func (h *JobsHandler) Search(c fiber.Ctx) error {
	limit, err := parseQueryInt(c, "limit", 0)
	if err != nil {
		return err
	}

	items, err := h.uc.Search(c.Context(), usecase.JobSearchParams{Query: c.Query("query"), Limit: limit})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.List(c, response.MessageOK, dto.NewJobResponses(items), limit, 0, len(items))
}

func (h *JobsHandler) Get(c fiber.Ctx) error {
	id, err := parseJobID(c)
	if err != nil {
		return err
	}

	p, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobResponse(p))
}
