package live

import (
	"strings"
	"time"

	"jobboard-engine/internal/domain"
	"jobboard-engine/internal/netutil"
)

const (
	maxTags       = 3
	summaryRunes  = 220
	noDescription = "No description available"
)

// Item is a live job prepared for a card.
type Item struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Company   string   `json:"company"`
	Logo      string   `json:"logo,omitempty"`
	Location  string   `json:"location"`
	JobType   string   `json:"jobType,omitempty"`
	Salary    string   `json:"salary,omitempty"`
	Source    string   `json:"source"`
	URL       string   `json:"url,omitempty"`
	Summary   string   `json:"summary"`
	Tags      []string `json:"tags,omitempty"`
	PostedAgo string   `json:"postedAgo,omitempty"`
}

func toItem(j domain.JobRecord, now time.Time) Item {
	summary := netutil.Truncate(netutil.HTMLToText(j.Description), summaryRunes)
	if summary == "" {
		summary = noDescription
	}
	return Item{
		ID:        j.ID,
		Title:     netutil.CleanText(j.Title),
		Company:   j.CompanyName(),
		Logo:      j.LogoURL(),
		Location:  netutil.NormalizeLocation(j.Location),
		JobType:   j.JobType,
		Salary:    j.Salary.String(),
		Source:    j.Source,
		URL:       j.URL,
		Summary:   summary,
		Tags:      j.DisplayTags(maxTags),
		PostedAgo: postedAgo(j.CreatedAt, now),
	}
}

func postedAgo(createdAt string, now time.Time) string {
	createdAt = strings.TrimSpace(createdAt)
	if createdAt == "" {
		return ""
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, createdAt); err == nil {
			return domain.PostedAgo(t, now)
		}
	}
	return ""
}
