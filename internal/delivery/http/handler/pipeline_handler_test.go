package handler

import (
	"encoding/json"
	"io"
	"log"
	"net/http/httptest"
	"strings"
	"testing"

	"career-match/internal/delivery/http/middleware"
	"career-match/internal/pipeline"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTracker struct {
	busy bool
	got  []pipeline.IngestParams
}

func (f *fakeTracker) Trigger(p pipeline.IngestParams) bool {
	f.got = append(f.got, p)
	return !f.busy
}

func (f *fakeTracker) Status() pipeline.Status { return pipeline.Status{Running: true} }

func newPipelineApp(tr *fakeTracker) *fiber.App {
	app := fiber.New()
	app.Use(middleware.NewErrorMiddleware(log.New(io.Discard, "", 0)).Middleware())
	noAuth := func(c fiber.Ctx) error { return c.Next() }
	NewPipelineHandler(tr, []string{"golang"}, 2).RegisterRoutes(app, noAuth)
	return app
}

func postIngest(t *testing.T, app *fiber.App, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest("POST", "/pipeline/ingest", strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func TestPipelineIngest_DefaultsAndConflict(t *testing.T) {
	tr := &fakeTracker{}
	app := newPipelineApp(tr)

	status, _ := postIngest(t, app, "")
	assert.Equal(t, fiber.StatusAccepted, status)
	require.Len(t, tr.got, 1)
	assert.Equal(t, []string{"golang"}, tr.got[0].Queries)
	assert.Equal(t, 2.0, tr.got[0].QueriesPerSecond)

	tr.busy = true
	status, out := postIngest(t, app, `{"queries":["rust"],"workers":2}`)
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, "Ingest already running", out["message"])
	assert.Equal(t, []string{"rust"}, tr.got[1].Queries)
}

func TestPipelineIngest_Validation(t *testing.T) {
	tr := &fakeTracker{}
	app := newPipelineApp(tr)

	status, out := postIngest(t, app, `{"queries":["go"],"workers":99}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "Validation failed", out["message"])
	assert.Contains(t, out["data"], map[string]any{"field": "Workers", "rule": "lte"})

	status, _ = postIngest(t, app, `{"queries":[""]}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Empty(t, tr.got)
}
