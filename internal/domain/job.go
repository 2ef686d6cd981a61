package domain

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Company is the nullable company reference carried by a job record.
type Company struct {
	ID   string `json:"_id,omitempty"`
	Name string `json:"name"`
	Logo string `json:"logo,omitempty"`
}

// JobRecord is a single listing as returned by the backend. The core only
// reads the fields below; anything else in the payload is ignored.
type JobRecord struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Location    string   `json:"location"`
	JobType     string   `json:"jobType"`
	Salary      Salary   `json:"salary"`
	Positions   int      `json:"position"`
	Source      string   `json:"source"`
	IsExternal  bool     `json:"isExternal"`
	URL         string   `json:"url,omitempty" validate:"required_if=IsExternal true"`
	Company     *Company `json:"company"`
	Tags        []string `json:"tags,omitempty"`
	CreatedAt   string   `json:"created_at,omitempty"`
}

func (j *JobRecord) UnmarshalJSON(b []byte) error {
	type alias JobRecord
	var raw struct {
		alias
		MongoID  string          `json:"_id"`
		RawID    json.RawMessage `json:"id"`
		Position *int            `json:"position"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	*j = JobRecord(raw.alias)

	// database rows carry _id, provider rows carry id (string or number)
	j.ID = raw.MongoID
	if j.ID == "" && len(raw.RawID) > 0 && !bytes.Equal(raw.RawID, []byte("null")) {
		var s string
		if err := json.Unmarshal(raw.RawID, &s); err == nil {
			j.ID = s
		} else {
			j.ID = string(bytes.TrimSpace(raw.RawID))
		}
	}

	j.Positions = 1
	if raw.Position != nil && *raw.Position >= 0 {
		j.Positions = *raw.Position
	}
	return nil
}

// Validate reports whether the record is usable: external listings must
// carry an outbound url.
func (j JobRecord) Validate() error {
	return validate.Struct(j)
}

// CompanyName returns the company display name, or "Company" when absent.
func (j JobRecord) CompanyName() string {
	if j.Company == nil || strings.TrimSpace(j.Company.Name) == "" {
		return "Company"
	}
	return j.Company.Name
}

// LogoURL returns the untrusted logo url, empty when there is no company.
func (j JobRecord) LogoURL() string {
	if j.Company == nil {
		return ""
	}
	return strings.TrimSpace(j.Company.Logo)
}

// PositionsLabel renders "1 Position" / "3 Positions".
func (j JobRecord) PositionsLabel() string {
	n := j.Positions
	if n <= 0 {
		n = 1
	}
	if n > 1 {
		return itoa(n) + " Positions"
	}
	return itoa(n) + " Position"
}

// DisplayTags returns at most n tags.
func (j JobRecord) DisplayTags(n int) []string {
	if len(j.Tags) <= n {
		return j.Tags
	}
	return j.Tags[:n]
}
