package routes

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"career-match/internal/delivery/http/handler"
	"career-match/internal/delivery/http/middleware"
	"career-match/internal/domain/job"
	"career-match/internal/domain/matching"
	"career-match/internal/domain/skill"
	"career-match/internal/pkg/jwt"
	"career-match/internal/repository"
	"career-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSkills struct{}

func (fakeSkills) Extract(_ context.Context, text string) (usecase.Extraction, error) {
	if strings.TrimSpace(text) == "" {
		return usecase.Extraction{}, usecase.ErrEmptyText
	}
	return usecase.Extraction{Skills: []skill.Skill{{Name: "Go", Category: skill.CategoryTechnical, Confidence: 0.6}}, Method: usecase.MethodDictionary}, nil
}

func (fakeSkills) AnalyzeAndStore(_ context.Context, userID uuid.UUID, _ string) (repository.SkillProfile, error) {
	return repository.SkillProfile{UserID: userID, Method: usecase.MethodDictionary}, nil
}

func (fakeSkills) GetProfile(context.Context, uuid.UUID) (repository.SkillProfile, error) {
	return repository.SkillProfile{}, usecase.ErrUserSkillProfileEmpty
}

type fakeSearch struct {
	getErr error
}

func (fakeSearch) Search(context.Context, usecase.JobSearchParams) ([]job.Posting, error) {
	return []job.Posting{{ID: uuid.New(), Title: "Go Developer"}}, nil
}

func (fakeSearch) List(context.Context, int, int) ([]job.Posting, error) {
	return nil, errors.New("db down")
}

func (f fakeSearch) Get(_ context.Context, id uuid.UUID) (job.Posting, error) {
	if f.getErr != nil {
		return job.Posting{}, f.getErr
	}
	return job.Posting{ID: id, Title: "Go Developer"}, nil
}

type fakeRecommend struct {
	gotUser   uuid.UUID
	gotParams usecase.JobRecommendationParams
}

func (f *fakeRecommend) Recommend(_ context.Context, userID uuid.UUID, p usecase.JobRecommendationParams) ([]matching.Result, error) {
	f.gotUser = userID
	f.gotParams = p
	return []matching.Result{{Job: job.Posting{Title: "Go Developer"}, MatchScore: 80}}, nil
}

type fakeSaved struct{}

func (fakeSaved) Save(context.Context, uuid.UUID, uuid.UUID) (bool, error) { return true, nil }
func (fakeSaved) Remove(context.Context, uuid.UUID, uuid.UUID) error       { return usecase.ErrNotFound }
func (fakeSaved) List(context.Context, uuid.UUID, int, int) ([]job.Posting, error) {
	return []job.Posting{}, nil
}

type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Meta    struct {
		Limit int `json:"limit"`
		Count int `json:"count"`
	} `json:"meta"`
}

type testEnv struct {
	app   *fiber.App
	rec   *fakeRecommend
	token string
	user  uuid.UUID
}

func newTestEnv(t *testing.T, search fakeSearch) testEnv {
	t.Helper()
	logger := log.New(io.Discard, "", 0)
	jwtSvc := jwt.NewHMACService("test-secret", time.Hour)
	rec := &fakeRecommend{}

	app := fiber.New()
	app.Use(middleware.NewErrorMiddleware(logger).Middleware())
	NewRegistry(Handlers{
		Health:         handler.NewHealthHandler(nil, nil),
		Skills:         handler.NewSkillHandler(fakeSkills{}),
		Jobs:           handler.NewJobsHandler(search),
		Recommendation: handler.NewJobRecommendationHandler(rec),
		SavedJobs:      handler.NewSavedJobHandler(fakeSaved{}),
	}, middleware.NewAuthMiddleware(jwtSvc).Middleware()).Register(app)

	user := uuid.New()
	tok, err := jwtSvc.GenerateAccessToken(user, "u@example.com")
	require.NoError(t, err)
	return testEnv{app: app, rec: rec, token: tok, user: user}
}

func (e testEnv) do(t *testing.T, method, path, body string, auth bool) envelope {
	t.Helper()
	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rdr)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth {
		req.Header.Set("Authorization", "Bearer "+e.token)
	}
	resp, err := e.app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, resp.StatusCode, out.Status)
	return out
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t, fakeSearch{})

	res := env.do(t, "GET", "/health", "", false)
	assert.Equal(t, fiber.StatusOK, res.Status)
	assert.Contains(t, string(res.Data), `"database":"disabled"`)

	res = env.do(t, "GET", "/api/v1/health", "", false)
	assert.Equal(t, fiber.StatusOK, res.Status)
}

func TestSkillsExtract(t *testing.T) {
	env := newTestEnv(t, fakeSearch{})

	res := env.do(t, "POST", "/api/v1/skills/extract", `{"text":"  "}`, false)
	assert.Equal(t, fiber.StatusBadRequest, res.Status)
	assert.Equal(t, "Text is required", res.Message)

	res = env.do(t, "POST", "/api/v1/skills/extract", `{"text":"I write Go"}`, false)
	assert.Equal(t, fiber.StatusOK, res.Status)
	assert.Contains(t, string(res.Data), `"method":"dictionary"`)
}

func TestSkillsMe_EmptyProfile(t *testing.T) {
	env := newTestEnv(t, fakeSearch{})

	res := env.do(t, "GET", "/api/v1/skills/me", "", false)
	assert.Equal(t, fiber.StatusUnauthorized, res.Status)

	res = env.do(t, "GET", "/api/v1/skills/me", "", true)
	assert.Equal(t, fiber.StatusNotFound, res.Status)
}

func TestRecommend_ParsesParams(t *testing.T) {
	env := newTestEnv(t, fakeSearch{})

	res := env.do(t, "GET", "/api/v1/jobs/recommend?limit=abc", "", true)
	assert.Equal(t, fiber.StatusBadRequest, res.Status)

	res = env.do(t, "GET", "/api/v1/jobs/match?limit=3&use_enhanced=false&skills=Go,%20Docker,", "", true)
	require.Equal(t, fiber.StatusOK, res.Status)
	assert.Equal(t, env.user, env.rec.gotUser)
	assert.Equal(t, 3, env.rec.gotParams.Limit)
	require.NotNil(t, env.rec.gotParams.UseEnhanced)
	assert.False(t, *env.rec.gotParams.UseEnhanced)
	assert.Equal(t, []string{"Go", "Docker"}, env.rec.gotParams.Skills)
	assert.Contains(t, string(res.Data), `"match_score":80`)
	assert.Equal(t, 3, res.Meta.Limit)

	res = env.do(t, "GET", "/api/v1/jobs/recommend", "", true)
	require.Equal(t, fiber.StatusOK, res.Status)
	assert.Equal(t, 0, env.rec.gotParams.Limit)
	assert.Equal(t, 5, res.Meta.Limit)
	assert.Equal(t, 1, res.Meta.Count)

	res = env.do(t, "GET", "/api/v1/jobs/recommend?limit=500", "", true)
	require.Equal(t, fiber.StatusOK, res.Status)
	assert.Equal(t, 50, res.Meta.Limit)
}

func TestJobsRoutes(t *testing.T) {
	env := newTestEnv(t, fakeSearch{getErr: usecase.ErrNotFound})

	// static path must not fall through to /jobs/:id
	res := env.do(t, "GET", "/api/v1/jobs/saved", "", true)
	assert.Equal(t, fiber.StatusOK, res.Status)

	res = env.do(t, "GET", "/api/v1/jobs/search?query=golang", "", false)
	assert.Equal(t, fiber.StatusOK, res.Status)

	res = env.do(t, "GET", "/api/v1/jobs/not-a-uuid", "", false)
	assert.Equal(t, fiber.StatusBadRequest, res.Status)

	res = env.do(t, "GET", "/api/v1/jobs/"+uuid.NewString(), "", false)
	assert.Equal(t, fiber.StatusNotFound, res.Status)

	res = env.do(t, "GET", "/api/v1/jobs", "", false)
	assert.Equal(t, fiber.StatusInternalServerError, res.Status)
	assert.Equal(t, "internal server error", res.Message)
}

func TestSavedJobs(t *testing.T) {
	env := newTestEnv(t, fakeSearch{})
	id := uuid.NewString()

	res := env.do(t, "POST", "/api/v1/jobs/"+id+"/save", "", true)
	assert.Equal(t, fiber.StatusCreated, res.Status)

	res = env.do(t, "DELETE", "/api/v1/jobs/"+id+"/save", "", true)
	assert.Equal(t, fiber.StatusNotFound, res.Status)
}
