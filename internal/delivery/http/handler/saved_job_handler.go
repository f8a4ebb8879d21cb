package handler

import (
	"career-match/internal/delivery/http/dto"
	"career-match/internal/delivery/http/middleware"
	"career-match/internal/pkg/response"
	"career-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type SavedJobHandler struct {
	uc usecase.SavedJobUsecase
}

func NewSavedJobHandler(uc usecase.SavedJobUsecase) *SavedJobHandler {
	return &SavedJobHandler{uc: uc}
}

func (h *SavedJobHandler) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	if r == nil {
		return
	}
	r.Get("/jobs/saved", auth, h.List)
	r.Post("/jobs/:id/save", auth, h.Save)
	r.Delete("/jobs/:id/save", auth, h.Remove)
}

func (h *SavedJobHandler) List(c fiber.Ctx) error {
	limit, err := parseQueryInt(c, "limit", 20)
	if err != nil {
		return err
	}
	offset, err := parseQueryInt(c, "offset", 0)
	if err != nil {
		return err
	}

	items, err := h.uc.List(c.Context(), middleware.UserID(c), limit, offset)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.List(c, response.MessageOK, dto.NewJobResponses(items), limit, offset, len(items))
}

func (h *SavedJobHandler) Save(c fiber.Ctx) error {
	id, err := parseJobID(c)
	if err != nil {
		return err
	}

	created, err := h.uc.Save(c.Context(), middleware.UserID(c), id)
	if err != nil {
		return mapUsecaseError(err)
	}
	status := fiber.StatusOK
	if created {
		status = fiber.StatusCreated
	}
	return response.Success(c, status, "Job saved", dto.SaveJobResponse{JobID: id, Created: created})
}

func (h *SavedJobHandler) Remove(c fiber.Ctx) error {
	id, err := parseJobID(c)
	if err != nil {
		return err
	}

	if err := h.uc.Remove(c.Context(), middleware.UserID(c), id); err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Job removed", nil)
}
