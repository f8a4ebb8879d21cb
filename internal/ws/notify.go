package ws

import (
	"encoding/json"
	"strings"
	"time"
)

const EventJobsUpdated = "jobs_updated"

type JobsUpdatedEvent struct {
	Type      string `json:"type"`
	Keyword   string `json:"keyword,omitempty"`
	Source    string `json:"source"`
	Saved     int    `json:"saved"`
	Timestamp string `json:"timestamp"`
}

// NotifyJobsUpdated tells subscribers that new postings were stored.
func (h *Hub) NotifyJobsUpdated(keyword, source string, saved int) {
	if h == nil || saved <= 0 {
		return
	}

	evt := JobsUpdatedEvent{
		Type:      EventJobsUpdated,
		Keyword:   strings.ToLower(strings.TrimSpace(keyword)),
		Source:    source,
		Saved:     saved,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}
	h.Broadcast(b)
}
