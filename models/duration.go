package models

import (
	"strings"
	"time"
)

// ParseDate parses a calendar date. Full RFC 3339 timestamps are accepted
// and truncated to their date part.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
	}
	return time.Time{}, false
}

// ComputeDuration returns (end - start) + 1 in days, or nil when either date
// is missing or invalid, or when end precedes start.
func ComputeDuration(start, end string) *int {
	s, ok := ParseDate(start)
	if !ok {
		return nil
	}
	e, ok := ParseDate(end)
	if !ok {
		return nil
	}
	if e.Before(s) {
		return nil
	}
	// both are UTC midnights; time.Duration would overflow past ~292 years
	days := int((e.Unix()-s.Unix())/86400) + 1
	return &days
}
