package app

import (
	"context"
	"errors"
	"log"
	"time"

	"career-match/internal/config"
	"career-match/internal/database"
	dbpostgres "career-match/internal/database/postgres"
	"career-match/internal/infrastructure/cache"
	"career-match/internal/infrastructure/jsearch"
	"career-match/internal/infrastructure/llm"
	"career-match/internal/pipeline"
	"career-match/internal/pkg/jwt"
	"career-match/internal/repository"
	"career-match/internal/scraper"
	"career-match/internal/service"
	"career-match/internal/usecase"
	"career-match/internal/ws"
)

// Container owns every long-lived dependency. Optional integrations (LLM,
// JSearch, LinkedIn, Redis) degrade to fallbacks when not configured.
type Container struct {
	Config config.Config
	Logger *log.Logger

	DB    database.DB
	Cache *cache.Redis
	Hub   *ws.Hub
	JWT   jwt.Service

	Corpus    *service.DefaultJobCorpus
	Freshness *service.FreshnessService

	Skills          *usecase.SkillExtraction
	Search          *usecase.JobSearch
	Recommendations *usecase.JobRecommendation
	SavedJobs       *usecase.SavedJobs

	Ingest        *pipeline.IngestPipeline
	IngestTracker *pipeline.Tracker
}

func NewContainer(cfg config.Config) (*Container, error) {
	logger := log.Default()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	c := &Container{
		Config: cfg,
		Logger: logger,
		DB:     db,
		Cache:  cache.NewRedis(cfg.Redis, logger),
		Hub:    ws.NewHub(logger),
		JWT:    jwt.NewHMACService(cfg.JWT.AccessSecret, cfg.JWT.AccessExpiresIn),
	}

	var gen llm.Generator
	gc, err := llm.NewGeminiClient(ctx, cfg.LLM, logger)
	switch {
	case err == nil:
		gen = gc
	case errors.Is(err, llm.ErrNotConfigured):
		logger.Printf("[LLM] GEMINI_API_KEY not set, using dictionary extraction and keyword matching")
	default:
		logger.Printf("[LLM] client init failed, using fallbacks err=%v", err)
	}

	jobRepo := repository.NewPostgresJobRepository(db)
	profiles := repository.NewPostgresSkillProfileRepository(db)
	saved := repository.NewPostgresSavedJobRepository(db)

	c.Corpus = service.NewJobCorpus(jobRepo, logger,
		service.WithSources(jobSources(cfg, logger)...),
		service.WithSearchInvalidator(c.Cache),
		service.WithJobsNotifier(c.Hub),
	)
	c.Freshness = service.NewFreshnessService(c.Corpus, c.Cache, logger, cfg.App.FreshnessMinutes)

	// Without a generator the usecases get nil collaborators and go straight
	// to the dictionary and keyword paths.
	var ranker *usecase.Ranker
	if gen != nil {
		ranker = usecase.NewRanker(llm.NewJobMatcher(gen, logger), cfg.LLM.BatchConcurrency, logger)
		c.Skills = usecase.NewSkillExtractionUsecase(llm.NewSkillAnalyzer(gen, logger), profiles, logger)
	} else {
		ranker = usecase.NewRanker(nil, cfg.LLM.BatchConcurrency, logger)
		c.Skills = usecase.NewSkillExtractionUsecase(nil, profiles, logger)
	}

	c.Search = usecase.NewJobSearchUsecase(c.Corpus, c.Freshness, c.Cache, logger)
	c.Recommendations = usecase.NewJobRecommendationUsecase(c.Corpus, profiles, ranker, logger)
	c.SavedJobs = usecase.NewSavedJobUsecase(saved, logger)

	c.Ingest = pipeline.NewIngestPipeline(c.Corpus, logger)
	c.IngestTracker = pipeline.NewTracker(c.Ingest, 0)

	return c, nil
}

func jobSources(cfg config.Config, logger *log.Logger) []service.JobSource {
	var out []service.JobSource

	client, err := jsearch.NewClient(cfg.JSearch, logger)
	switch {
	case err == nil:
		out = append(out, service.NewJSearchSource(client, cfg.Ingest.Pages, cfg.Ingest.RemoteOnly))
	case errors.Is(err, jsearch.ErrNotConfigured):
		logger.Printf("[Jobs] JSEARCH_API_KEY not set, jsearch source disabled")
	default:
		logger.Printf("[Jobs] jsearch init failed err=%v", err)
	}

	if cfg.Ingest.LinkedInEnabled {
		s := scraper.NewLinkedInScraper(cfg.Ingest.LinkedInBaseURL, logger)
		out = append(out, service.NewLinkedInSource(s, "", cfg.Ingest.Pages))
	}
	return out
}

// Start launches background workers tied to ctx.
func (c *Container) Start(ctx context.Context) {
	go c.Hub.Run(ctx)
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Freshness != nil {
		c.Freshness.Wait()
	}
	if c.IngestTracker != nil {
		c.IngestTracker.Wait()
	}
	var errs []error
	if c.Cache != nil {
		errs = append(errs, c.Cache.Close())
	}
	if c.DB != nil {
		errs = append(errs, c.DB.Close())
	}
	return errors.Join(errs...)
}
