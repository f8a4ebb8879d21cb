package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"career-match/internal/app"
	"career-match/internal/config"
	"career-match/internal/database"
	"career-match/internal/database/migration"
	dbpostgres "career-match/internal/database/postgres"
	"career-match/internal/infrastructure/cache"
	"career-match/internal/pkg/jwt"
	"career-match/internal/repository"
	"career-match/internal/seeder"
	"career-match/internal/service"
	"career-match/internal/usecase"
	"career-match/internal/ws"
	"career-match/migrations"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type semanticResponse struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type recommendationItem struct {
	Job struct {
		ID    uuid.UUID `json:"id"`
		Title string    `json:"title"`
	} `json:"job"`
	MatchScore     float64  `json:"match_score"`
	MatchingSkills []string `json:"matching_skills"`
	MissingSkills  []string `json:"missing_skills"`
}

func TestIntegration_AnalyzeRecommendSave(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	db := connectTestDB(t, ctx)
	defer func() { _ = db.Close() }()

	require.NoError(t, migration.Runner{FS: migrations.FS}.Run(ctx, db.SQLDB()))

	jobs := repository.NewPostgresJobRepository(db)
	_, err := seeder.JobSeeder{DB: db, Jobs: jobs}.Run(ctx)
	require.NoError(t, err)

	userID := uuid.New()
	t.Cleanup(func() { cleanupUser(t, db, userID) })

	c := newTestContainer(db, jobs)
	defer c.Freshness.Wait()
	fiberApp := app.New(c).Fiber

	tok, err := c.JWT.GenerateAccessToken(userID, "it@example.com")
	require.NoError(t, err)

	res := call(t, fiberApp, "POST", "/api/v1/skills/analyze", tok, map[string]string{
		"text": "Backend developer with Python, Django and PostgreSQL. Some Docker.",
	})
	require.Equal(t, fiber.StatusOK, res.Status, res.Message)

	res = call(t, fiberApp, "GET", "/api/v1/jobs/recommend?use_enhanced=false&limit=10", tok, nil)
	require.Equal(t, fiber.StatusOK, res.Status, res.Message)

	var recs []recommendationItem
	require.NoError(t, json.Unmarshal(res.Data, &recs))
	require.NotEmpty(t, recs)
	assert.LessOrEqual(t, len(recs), 10)
	for i := 1; i < len(recs); i++ {
		assert.GreaterOrEqual(t, recs[i-1].MatchScore, recs[i].MatchScore)
	}
	var pick *recommendationItem
	for i := range recs {
		if recs[i].Job.Title == "Senior Python Developer" {
			pick = &recs[i]
			break
		}
	}
	require.NotNil(t, pick, "seeded python job missing from recommendations")
	assert.Contains(t, pick.MatchingSkills, "Python")

	jobID := pick.Job.ID
	res = call(t, fiberApp, "POST", "/api/v1/jobs/"+jobID.String()+"/save", tok, nil)
	require.Equal(t, fiber.StatusCreated, res.Status, res.Message)

	res = call(t, fiberApp, "GET", "/api/v1/jobs/saved", tok, nil)
	require.Equal(t, fiber.StatusOK, res.Status)
	assert.Contains(t, string(res.Data), jobID.String())

	res = call(t, fiberApp, "DELETE", "/api/v1/jobs/"+jobID.String()+"/save", tok, nil)
	require.Equal(t, fiber.StatusOK, res.Status)

	res = call(t, fiberApp, "GET", "/api/v1/jobs/recommend", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, res.Status)
}

func newTestContainer(db database.DB, jobs *repository.PostgresJobRepository) *app.Container {
	logger := log.New(io.Discard, "", 0)
	rc := cache.NewRedisWithClient(nil, time.Minute, logger)
	hub := ws.NewHub(logger)
	profiles := repository.NewPostgresSkillProfileRepository(db)

	corpus := service.NewJobCorpus(jobs, logger, service.WithSearchInvalidator(rc), service.WithJobsNotifier(hub))
	fresh := service.NewFreshnessService(corpus, rc, logger, 24*60)

	cfg := config.Config{App: config.AppConfig{AppName: "career-match-it"}}
	return &app.Container{
		Config:          cfg,
		Logger:          logger,
		DB:              db,
		Cache:           rc,
		Hub:             hub,
		JWT:             jwt.NewHMACService("integration-secret", time.Hour),
		Corpus:          corpus,
		Freshness:       fresh,
		Skills:          usecase.NewSkillExtractionUsecase(nil, profiles, logger),
		Search:          usecase.NewJobSearchUsecase(corpus, fresh, rc, logger),
		Recommendations: usecase.NewJobRecommendationUsecase(corpus, profiles, usecase.NewRanker(nil, 2, logger), logger),
		SavedJobs:       usecase.NewSavedJobUsecase(repository.NewPostgresSavedJobRepository(db), logger),
	}
}

func call(t *testing.T, a *fiber.App, method, path, token string, body any) semanticResponse {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rdr = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rdr)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := a.Test(req, fiber.TestConfig{Timeout: 30 * time.Second})
	require.NoError(t, err)
	defer resp.Body.Close()

	var out semanticResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func connectTestDB(t *testing.T, ctx context.Context) database.DB {
	t.Helper()

	host := firstNonEmpty(os.Getenv("CAREERMATCH_TEST_DB_HOST"), os.Getenv("DB_HOST"))
	port := firstNonEmpty(os.Getenv("CAREERMATCH_TEST_DB_PORT"), os.Getenv("DB_PORT"))
	name := firstNonEmpty(os.Getenv("CAREERMATCH_TEST_DB_NAME"), os.Getenv("DB_NAME"))
	user := firstNonEmpty(os.Getenv("CAREERMATCH_TEST_DB_USER"), os.Getenv("DB_USER"))
	pass := firstNonEmpty(os.Getenv("CAREERMATCH_TEST_DB_PASSWORD"), os.Getenv("DB_PASSWORD"))
	ssl := firstNonEmpty(os.Getenv("CAREERMATCH_TEST_DB_SSL_MODE"), os.Getenv("DB_SSL_MODE"), "disable")

	if host == "" || port == "" || name == "" || user == "" {
		t.Skip("missing test DB env vars: set CAREERMATCH_TEST_DB_HOST/PORT/NAME/USER/PASSWORD (or DB_*)")
	}

	db, err := dbpostgres.Connect(ctx, config.DatabaseConfig{
		DBHost:     host,
		DBPort:     port,
		DBName:     name,
		DBUser:     user,
		DBPassword: pass,
		DBSSLMode:  ssl,
	})
	require.NoError(t, err)
	return db
}

func cleanupUser(t *testing.T, db database.DB, userID uuid.UUID) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if _, err := db.Exec(ctx, `DELETE FROM saved_jobs WHERE user_id = $1`, userID); err != nil {
		t.Logf("cleanup saved_jobs: %v", err)
	}
	if _, err := db.Exec(ctx, `DELETE FROM user_skill_profiles WHERE user_id = $1`, userID); err != nil {
		t.Logf("cleanup user_skill_profiles: %v", err)
	}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}
