package service

import (
	"context"

	"career-match/internal/domain/job"
	"career-match/internal/infrastructure/jsearch"
	"career-match/internal/scraper"
)

type jsearchSource struct {
	client     jsearch.Client
	pages      int
	remoteOnly bool
}

// NewJSearchSource adapts the JSearch client. pages <= 0 fetches one page.
func NewJSearchSource(client jsearch.Client, pages int, remoteOnly bool) JobSource {
	if pages <= 0 {
		pages = 1
	}
	return &jsearchSource{client: client, pages: pages, remoteOnly: remoteOnly}
}

func (s *jsearchSource) Name() string { return job.SourceJSearch }

func (s *jsearchSource) Search(ctx context.Context, query string) ([]job.Posting, error) {
	return s.client.Search(ctx, query, s.pages, s.remoteOnly)
}

type linkedInSource struct {
	scraper  *scraper.LinkedInScraper
	location string
	pages    int
}

func NewLinkedInSource(s *scraper.LinkedInScraper, location string, pages int) JobSource {
	if pages <= 0 {
		pages = 1
	}
	return &linkedInSource{scraper: s, location: location, pages: pages}
}

func (s *linkedInSource) Name() string { return job.SourceLinkedIn }

func (s *linkedInSource) Search(ctx context.Context, query string) ([]job.Posting, error) {
	return s.scraper.Search(ctx, query, s.location, s.pages)
}
