package jsearch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"career-match/internal/config"
	"career-match/internal/domain/job"
	"career-match/internal/domain/skill"

	"golang.org/x/time/rate"
)

var ErrNotConfigured = errors.New("jsearch api key not configured")

type Client interface {
	Search(ctx context.Context, query string, pages int, remoteOnly bool) ([]job.Posting, error)
}

type httpClient struct {
	baseURL string
	apiKey  string
	host    string
	client  *http.Client
	limiter *rate.Limiter
	logger  *log.Logger
	now     func() time.Time
}

type searchResponse struct {
	Status string      `json:"status"`
	Data   []jobRecord `json:"data"`
}

type jobRecord struct {
	JobID          string `json:"job_id"`
	JobTitle       string `json:"job_title"`
	EmployerName   string `json:"employer_name"`
	JobCity        string `json:"job_city"`
	JobCountry     string `json:"job_country"`
	JobApplyLink   string `json:"job_apply_link"`
	JobDescription string `json:"job_description"`
}

func NewClient(cfg config.JSearchConfig, logger *log.Logger) (Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrNotConfigured
	}
	if logger == nil {
		logger = log.Default()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	rps := cfg.RPS
	if rps <= 0 {
		rps = 1
	}
	return &httpClient{
		baseURL: strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		apiKey:  cfg.APIKey,
		host:    cfg.Host,
		client:  &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
		logger:  logger,
		now:     time.Now,
	}, nil
}

// Search fetches up to pages result pages for query, pacing requests through
// the limiter. A failure on the first page is returned; a later failure stops
// paging and keeps what was collected.
func (c *httpClient) Search(ctx context.Context, query string, pages int, remoteOnly bool) ([]job.Posting, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []job.Posting{}, nil
	}
	if pages <= 0 {
		pages = 1
	}

	out := make([]job.Posting, 0)
	for page := 1; page <= pages; page++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return out, err
		}

		items, err := c.fetchPage(ctx, query, page, remoteOnly)
		if err != nil {
			if len(out) == 0 {
				return nil, err
			}
			c.logger.Printf("[JSearch] page failed query=%q page=%d err=%v", query, page, err)
			break
		}
		out = append(out, items...)
		if len(items) == 0 {
			break
		}
	}

	c.logger.Printf("[JSearch] fetched query=%q pages=%d jobs=%d", query, pages, len(out))
	return out, nil
}

func (c *httpClient) fetchPage(ctx context.Context, query string, page int, remoteOnly bool) ([]job.Posting, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("page", strconv.Itoa(page))
	params.Set("num_pages", "1")
	params.Set("remote_jobs_only", strconv.FormatBool(remoteOnly))
	endpoint := c.baseURL + "/search?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-RapidAPI-Key", c.apiKey)
	req.Header.Set("X-RapidAPI-Host", c.host)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		rb, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		bodyStr := strings.TrimSpace(string(rb))
		c.logger.Printf("[JSearch] search error status=%d body=%q", resp.StatusCode, bodyStr)
		return nil, fmt.Errorf("jsearch search failed: status=%d body=%s", resp.StatusCode, bodyStr)
	}

	var sr searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("decode jsearch response: %w", err)
	}

	fetched := c.now().UTC()
	out := make([]job.Posting, 0, len(sr.Data))
	for _, r := range sr.Data {
		out = append(out, toPosting(r, fetched))
	}
	return out, nil
}

func toPosting(r jobRecord, fetched time.Time) job.Posting {
	location := strings.TrimSpace(r.JobCity)
	if location == "" {
		location = strings.TrimSpace(r.JobCountry)
	}
	return job.Posting{
		Title:           strings.TrimSpace(r.JobTitle),
		Company:         strings.TrimSpace(r.EmployerName),
		Location:        location,
		URL:             strings.TrimSpace(r.JobApplyLink),
		Description:     job.TruncateDescription(r.JobDescription),
		ExtractedSkills: skill.ExtractNames(r.JobDescription),
		FetchedAt:       fetched,
		Source:          job.SourceJSearch,
		SourceID:        strings.TrimSpace(r.JobID),
	}
}

var _ Client = (*httpClient)(nil)
