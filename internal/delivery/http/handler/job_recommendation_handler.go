package handler

import (
	"career-match/internal/delivery/http/dto"
	"career-match/internal/delivery/http/middleware"
	"career-match/internal/pkg/response"
	"career-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type JobRecommendationHandler struct {
	uc usecase.JobRecommendationUsecase
}

func NewJobRecommendationHandler(uc usecase.JobRecommendationUsecase) *JobRecommendationHandler {
	return &JobRecommendationHandler{uc: uc}
}

func (h *JobRecommendationHandler) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	if r == nil {
		return
	}
	r.Get("/jobs/recommend", auth, h.Recommend)
	r.Get("/jobs/match", auth, h.Recommend)
}

func (h *JobRecommendationHandler) Recommend(c fiber.Ctx) error {
	limit, err := parseQueryInt(c, "limit", 0)
	if err != nil {
		return err
	}
	useEnhanced, err := parseQueryBool(c, "use_enhanced")
	if err != nil {
		return err
	}

	items, err := h.uc.Recommend(c.Context(), middleware.UserID(c), usecase.JobRecommendationParams{
		Limit:       limit,
		UseEnhanced: useEnhanced,
		Skills:      parseCSV(c.Query("skills")),
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.List(c, "Recommendations generated", dto.NewRecommendationResponses(items), usecase.RecommendLimit(limit), 0, len(items))
}
