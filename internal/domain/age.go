package domain

import (
	"strconv"
	"time"
)

// PostedAgo renders the age of a posting relative to now.
func PostedAgo(posted, now time.Time) string {
	d := now.Sub(posted)
	if d < 0 {
		d = -d
	}
	days := int(d / (24 * time.Hour))

	switch {
	case days == 0:
		return "Today"
	case days == 1:
		return "Yesterday"
	case days < 7:
		return strconv.Itoa(days) + " days ago"
	case days < 30:
		return strconv.Itoa(days/7) + " weeks ago"
	default:
		return strconv.Itoa(days/30) + " months ago"
	}
}
