package domain

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Salary is either a number (lakhs per annum on database rows) or free text
// from external providers.
type Salary struct {
	Amount float64
	Text   string
}

func (s *Salary) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*s = Salary{}
		return nil
	}
	if b[0] == '"' {
		var t string
		if err := json.Unmarshal(b, &t); err != nil {
			return err
		}
		*s = Salary{Text: strings.TrimSpace(t)}
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*s = Salary{Amount: f}
	return nil
}

func (s Salary) MarshalJSON() ([]byte, error) {
	if s.Text != "" {
		return json.Marshal(s.Text)
	}
	return json.Marshal(s.Amount)
}

// Known reports whether there is anything worth showing.
func (s Salary) Known() bool {
	if s.Text != "" {
		return !strings.EqualFold(s.Text, "Not specified")
	}
	return s.Amount > 0
}

// String renders numbers as "<n>LPA" and text verbatim. Unknown salaries
// render as the empty string.
func (s Salary) String() string {
	if !s.Known() {
		return ""
	}
	if s.Text != "" {
		return s.Text
	}
	return strconv.FormatFloat(s.Amount, 'f', -1, 64) + "LPA"
}

func itoa(n int) string { return strconv.Itoa(n) }
