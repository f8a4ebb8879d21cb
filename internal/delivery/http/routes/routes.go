package routes

import (
	"career-match/internal/delivery/http/handler"
	"career-match/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type Handlers struct {
	Health         *handler.HealthHandler
	Skills         *handler.SkillHandler
	Jobs           *handler.JobsHandler
	Recommendation *handler.JobRecommendationHandler
	SavedJobs      *handler.SavedJobHandler
	Pipeline       *handler.PipelineHandler
	WS             *ws.Handler
}

type Registry struct {
	h    Handlers
	auth fiber.Handler
}

func NewRegistry(h Handlers, auth fiber.Handler) *Registry {
	return &Registry{h: h, auth: auth}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.h.Health.RegisterRoutes(app)
	r.registerV1(app.Group("/api").Group("/v1"))
}

func (r *Registry) registerV1(v1 fiber.Router) {
	r.h.Health.RegisterRoutes(v1)
	r.h.Skills.RegisterRoutes(v1, r.auth)

	// static /jobs/* paths before /jobs/:id
	r.h.Jobs.RegisterRoutes(v1)
	r.h.Recommendation.RegisterRoutes(v1, r.auth)
	r.h.SavedJobs.RegisterRoutes(v1, r.auth)
	r.h.Jobs.RegisterDetailRoute(v1)

	if r.h.Pipeline != nil {
		r.h.Pipeline.RegisterRoutes(v1, r.auth)
	}
	if r.h.WS != nil {
		v1.Get("/ws/jobs", r.h.WS.HandleJobsWS)
	}
}
