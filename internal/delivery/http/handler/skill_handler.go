package handler

import (
	"career-match/internal/delivery/http/dto"
	"career-match/internal/delivery/http/middleware"
	"career-match/internal/pkg/response"
	"career-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type SkillHandler struct {
	uc usecase.SkillExtractionUsecase
}

func NewSkillHandler(uc usecase.SkillExtractionUsecase) *SkillHandler {
	return &SkillHandler{uc: uc}
}

func (h *SkillHandler) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	if r == nil {
		return
	}

	grp := r.Group("/skills")
	grp.Post("/extract", h.Extract)
	grp.Post("/analyze", auth, h.Analyze)
	grp.Get("/me", auth, h.Me)
}

func (h *SkillHandler) Extract(c fiber.Ctx) error {
	var req dto.ExtractSkillsRequest
	if err := bindBody(c, &req, false); err != nil {
		return err
	}

	ex, err := h.uc.Extract(c.Context(), req.Text)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Skills extracted", dto.ExtractSkillsResponse{Skills: ex.Skills, Method: ex.Method})
}

func (h *SkillHandler) Analyze(c fiber.Ctx) error {
	var req dto.ExtractSkillsRequest
	if err := bindBody(c, &req, false); err != nil {
		return err
	}

	p, err := h.uc.AnalyzeAndStore(c.Context(), middleware.UserID(c), req.Text)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Skill profile updated", dto.SkillProfileResponse{
		UserID:    p.UserID,
		Skills:    p.Skills,
		Method:    p.Method,
		UpdatedAt: dto.FormatTime(p.UpdatedAt),
	})
}

func (h *SkillHandler) Me(c fiber.Ctx) error {
	p, err := h.uc.GetProfile(c.Context(), middleware.UserID(c))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.SkillProfileResponse{
		UserID:    p.UserID,
		Skills:    p.Skills,
		Method:    p.Method,
		UpdatedAt: dto.FormatTime(p.UpdatedAt),
	})
}
