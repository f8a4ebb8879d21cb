package scraper

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"career-match/internal/domain/job"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func card(id int, title, company, location string) string {
	return fmt.Sprintf(`<li>
  <div class="base-card base-search-card" data-entity-urn="urn:li:jobPosting:%d">
    <a class="base-card__full-link" href="/jobs/view/%d?refId=abc&trackingId=xyz">link</a>
    <div class="base-search-card__info">
      <h3 class="base-search-card__title">
        %s
      </h3>
      <h4 class="base-search-card__subtitle"><a>%s</a></h4>
      <span class="job-search-card__location">  %s </span>
      <time class="job-search-card__listdate" datetime="2026-10-01">2 weeks ago</time>
    </div>
  </div>
</li>`, id, id, title, company, location)
}

func quietLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func TestLinkedInScraper_Search(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, linkedInSearchPath, r.URL.Path)
		assert.Equal(t, "golang developer", r.URL.Query().Get("keywords"))
		assert.Equal(t, "Remote", r.URL.Query().Get("location"))

		start, _ := strconv.Atoi(r.URL.Query().Get("start"))
		w.Header().Set("Content-Type", "text/html")
		switch start {
		case 0:
			_, _ = io.WriteString(w, card(1, "Senior Go Developer", "Acme", "Remote")+card(2, "Backend Engineer (Python)", "Beta", "Berlin"))
		case linkedInPageSize:
			_, _ = io.WriteString(w, card(2, "Backend Engineer (Python)", "Beta", "Berlin")+`<li><div class="base-search-card"><h3 class="base-search-card__title">No link</h3></div></li>`)
		default:
			_, _ = io.WriteString(w, "")
		}
	}))
	defer srv.Close()

	s := NewLinkedInScraper(srv.URL, quietLogger(), WithPageDelay(0), WithRequestTimeout(2*time.Second))
	got, err := s.Search(context.Background(), "golang developer", "Remote", 5)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int32(3), calls.Load())

	first := got[0]
	assert.Equal(t, "Senior Go Developer", first.Title)
	assert.Equal(t, "Acme", first.Company)
	assert.Equal(t, "Remote", first.Location)
	assert.Equal(t, srv.URL+"/jobs/view/1", first.URL)
	assert.Equal(t, "1", first.SourceID)
	assert.Equal(t, job.SourceLinkedIn, first.Source)
	assert.Equal(t, []string{"Go"}, first.ExtractedSkills)

	assert.Equal(t, []string{"Python"}, got[1].ExtractedSkills)
}

func TestLinkedInScraper_FirstPageError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	s := NewLinkedInScraper(srv.URL, quietLogger(), WithPageDelay(0))
	_, err := s.Search(context.Background(), "data", "", 2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status=429")
}

func TestLinkedInScraper_CancelledContext(t *testing.T) {
	s := NewLinkedInScraper("http://127.0.0.1:1", quietLogger(), WithPageDelay(0))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Search(ctx, "data", "", 2)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestHelpers(t *testing.T) {
	assert.Equal(t, "https://www.linkedin.com/jobs/view/9", cleanJobURL(" https://www.linkedin.com/jobs/view/9?trk=public#x "))
	assert.Equal(t, "12345", jobIDFromURN("urn:li:jobPosting:12345"))
	assert.Equal(t, "127.0.0.1", hostFromBaseURL("http://127.0.0.1:8080"))
	assert.Equal(t, "www.linkedin.com", hostFromBaseURL("::bad"))
}
