package scraper

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"career-match/internal/domain/job"
	"career-match/internal/domain/skill"

	"github.com/gocolly/colly/v2"
)

const (
	linkedInSearchPath = "/jobs-guest/jobs/api/seeMoreJobPostings/search"
	linkedInPageSize   = 25
	defaultLinkedInURL = "https://www.linkedin.com"
)

// LinkedInScraper reads the public guest job search, which serves plain HTML
// job cards without authentication.
type LinkedInScraper struct {
	baseURL     string
	allowedHost string
	delay       time.Duration
	timeout     time.Duration
	logger      *log.Logger
	now         func() time.Time
}

type LinkedInOption func(*LinkedInScraper)

func WithPageDelay(d time.Duration) LinkedInOption {
	return func(s *LinkedInScraper) { s.delay = d }
}

func WithRequestTimeout(d time.Duration) LinkedInOption {
	return func(s *LinkedInScraper) { s.timeout = d }
}

func NewLinkedInScraper(baseURL string, logger *log.Logger, opts ...LinkedInOption) *LinkedInScraper {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = defaultLinkedInURL
	}
	if logger == nil {
		logger = log.Default()
	}
	s := &LinkedInScraper{
		baseURL:     baseURL,
		allowedHost: hostFromBaseURL(baseURL),
		delay:       2 * time.Second,
		timeout:     15 * time.Second,
		logger:      logger,
		now:         time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Search walks up to pages result pages. It stops early on an empty page or
// when ctx is done; a failure on the first page is returned as an error.
func (s *LinkedInScraper) Search(ctx context.Context, query, location string, pages int) ([]job.Posting, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []job.Posting{}, nil
	}
	if pages <= 0 {
		pages = 1
	}

	out := make([]job.Posting, 0)
	seen := map[string]struct{}{}
	for page := 0; page < pages; page++ {
		if err := ctx.Err(); err != nil {
			return out, err
		}

		items, err := s.scrapePage(ctx, s.pageURL(query, location, page*linkedInPageSize))
		if err != nil {
			if page == 0 {
				return nil, err
			}
			s.logger.Printf("[LinkedIn] page failed query=%q page=%d err=%v", query, page, err)
			break
		}
		if len(items) == 0 {
			break
		}
		for _, it := range items {
			if _, dup := seen[it.URL]; dup {
				continue
			}
			seen[it.URL] = struct{}{}
			out = append(out, it)
		}
	}

	s.logger.Printf("[LinkedIn] scraped query=%q location=%q jobs=%d", query, location, len(out))
	return out, nil
}

func (s *LinkedInScraper) pageURL(query, location string, start int) string {
	params := url.Values{}
	params.Set("keywords", query)
	if strings.TrimSpace(location) != "" {
		params.Set("location", strings.TrimSpace(location))
	}
	params.Set("start", strconv.Itoa(start))
	return s.baseURL + linkedInSearchPath + "?" + params.Encode()
}

func (s *LinkedInScraper) scrapePage(ctx context.Context, pageURL string) ([]job.Posting, error) {
	c := colly.NewCollector(
		colly.AllowedDomains(s.allowedHost),
	)
	c.SetRequestTimeout(s.timeout)
	_ = c.Limit(&colly.LimitRule{DomainGlob: "*", Parallelism: 1, Delay: s.delay})

	fetched := s.now().UTC()
	items := make([]job.Posting, 0, linkedInPageSize)

	c.OnRequest(func(r *colly.Request) {
		if ctx.Err() != nil {
			r.Abort()
			return
		}
		for k, v := range httpHeaders() {
			r.Headers.Set(k, v)
		}
	})

	c.OnHTML("div.base-search-card", func(e *colly.HTMLElement) {
		href := strings.TrimSpace(e.ChildAttr("a.base-card__full-link", "href"))
		title := collapseSpaces(e.ChildText("h3.base-search-card__title"))
		if href == "" || title == "" {
			return
		}
		link := cleanJobURL(e.Request.AbsoluteURL(href))
		if link == "" {
			return
		}

		p := job.Posting{
			Title:           title,
			Company:         collapseSpaces(e.ChildText("h4.base-search-card__subtitle")),
			Location:        collapseSpaces(e.ChildText("span.job-search-card__location")),
			URL:             link,
			ExtractedSkills: skill.ExtractNames(title),
			FetchedAt:       fetched,
			Source:          job.SourceLinkedIn,
			SourceID:        jobIDFromURN(e.Attr("data-entity-urn")),
		}
		items = append(items, p)
	})

	var reqErr error
	c.OnError(func(r *colly.Response, err error) {
		status := 0
		if r != nil {
			status = r.StatusCode
		}
		reqErr = fmt.Errorf("linkedin request failed: status=%d: %w", status, err)
	})

	visitErr := c.Visit(pageURL)
	c.Wait()
	if reqErr != nil {
		return nil, reqErr
	}
	if visitErr != nil {
		return nil, visitErr
	}
	return items, nil
}

func httpHeaders() map[string]string {
	return map[string]string{
		"User-Agent":      "Mozilla/5.0 (compatible; CareerMatchBot/0.1)",
		"Accept-Language": "en-US,en;q=0.9",
	}
}

func hostFromBaseURL(base string) string {
	u, err := url.Parse(strings.TrimSpace(base))
	if err != nil || u.Host == "" {
		return "www.linkedin.com"
	}
	if h, _, err := net.SplitHostPort(u.Host); err == nil {
		return h
	}
	return u.Host
}

// cleanJobURL drops tracking query parameters so the same posting dedupes by
// URL across pages and runs.
func cleanJobURL(u string) string {
	u = strings.TrimSpace(u)
	if i := strings.IndexAny(u, "?#"); i >= 0 {
		u = u[:i]
	}
	return u
}

func jobIDFromURN(urn string) string {
	urn = strings.TrimSpace(urn)
	if i := strings.LastIndex(urn, ":"); i >= 0 {
		return urn[i+1:]
	}
	return urn
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
