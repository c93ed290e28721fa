package engine

import (
	"net/url"
	"regexp"
	"time"
)

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// checkFormat validates the well-known string formats. Unknown format names
// are annotational and pass. Returns the human name of the violated format,
// or "" on success.
func checkFormat(format, s string) string {
	switch format {
	case "date":
		if _, err := time.Parse("2006-01-02", s); err != nil {
			return "date"
		}
	case "date-time":
		if _, err := time.Parse(time.RFC3339, s); err != nil {
			return "datetime"
		}
	case "email":
		if !emailRe.MatchString(s) {
			return "email address"
		}
	case "uri":
		u, err := url.Parse(s)
		if err != nil || u.Scheme == "" {
			return "URI"
		}
	}
	return ""
}
