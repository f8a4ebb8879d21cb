package job

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	SourceJSearch  = "jsearch"
	SourceLinkedIn = "linkedin"
)

// MaxDescriptionLen bounds descriptions kept from third-party sources.
const MaxDescriptionLen = 1000

type Posting struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	Company         string    `json:"company"`
	Location        string    `json:"location"`
	URL             string    `json:"url"`
	Description     string    `json:"description"`
	ExtractedSkills []string  `json:"extracted_skills"`
	FetchedAt       time.Time `json:"fetched_at"`
	Source          string    `json:"source"`
	SourceID        string    `json:"source_id"`
}

func TruncateDescription(s string) string {
	s = strings.TrimSpace(s)
	if len(s) <= MaxDescriptionLen {
		return s
	}
	// cut on a rune boundary
	cut := MaxDescriptionLen
	for cut > 0 && !isRuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}

type SavedJob struct {
	UserID  uuid.UUID
	JobID   uuid.UUID
	SavedAt time.Time
}
