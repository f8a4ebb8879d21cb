package app

import (
	"context"
	"fmt"
	"strings"

	"career-match/internal/config"
	"career-match/internal/delivery/http/handler"
	"career-match/internal/delivery/http/middleware"
	"career-match/internal/delivery/http/routes"
	"career-match/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

// New builds the HTTP application on top of an already wired container.
func New(c *Container) *App {
	f := fiber.New(fiber.Config{AppName: c.Config.App.AppName})

	registerGlobalMiddleware(f, c)
	registerRoutes(f, c)

	return &App{Fiber: f, Container: c}
}

// Bootstrap wires the container, starts its background workers and returns
// the app with a cleanup func that stops them.
func Bootstrap(cfg config.Config) (*App, func() error, error) {
	c, err := NewContainer(cfg)
	if err != nil {
		return nil, nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	c.Start(ctx)

	app := New(c)
	cleanup := func() error {
		cancel()
		return c.Close()
	}
	return app, cleanup, nil
}

func registerGlobalMiddleware(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	app.Use(middleware.NewAccessLogMiddleware(c.Logger).Middleware())
	app.Use(middleware.NewErrorMiddleware(c.Logger).Middleware())
}

func registerRoutes(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	auth := middleware.NewAuthMiddleware(c.JWT).Middleware()
	reg := routes.NewRegistry(routes.Handlers{
		Health:         handler.NewHealthHandler(c.DB, c.Cache),
		Skills:         handler.NewSkillHandler(c.Skills),
		Jobs:           handler.NewJobsHandler(c.Search),
		Recommendation: handler.NewJobRecommendationHandler(c.Recommendations),
		SavedJobs:      handler.NewSavedJobHandler(c.SavedJobs),
		Pipeline:       handler.NewPipelineHandler(c.IngestTracker, c.Config.Ingest.Queries, c.Config.JSearch.RPS),
		WS:             ws.NewHandler(c.Hub, c.Logger, c.Config.App.WSAllowedOrigins...),
	}, auth)
	reg.Register(app)
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
