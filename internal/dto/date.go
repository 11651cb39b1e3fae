package dto

import (
	"encoding/json"
	"errors"
	"strings"
	"time"
)

var ErrBadDate = errors.New("use date (YYYY-MM-DD) or RFC3339 datetime")

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseDate accepts a date-only value, stored as the start of that day in UTC,
// or a datetime in one of the RFC3339 variants.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		parsed, err := time.Parse(layout, s)
		if err == nil {
			return parsed.UTC(), nil
		}
	}
	return time.Time{}, ErrBadDate
}

// Date is a JSON timestamp that also accepts date-only strings.
// null and "" decode to an unset Date.
type Date struct{ t *time.Time }

func (d *Date) UnmarshalJSON(data []byte) error {
	var raw *string
	if err := json.Unmarshal(data, &raw); err != nil {
		return ErrBadDate
	}
	if raw == nil || strings.TrimSpace(*raw) == "" {
		d.t = nil
		return nil
	}
	parsed, err := ParseDate(*raw)
	if err != nil {
		return err
	}
	d.t = &parsed
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.t == nil {
		return []byte("null"), nil
	}
	return json.Marshal(d.t)
}

// Ptr returns the parsed time, nil if unset.
func (d Date) Ptr() *time.Time { return d.t }

// DatePtr returns the time held by d, nil if d is nil or unset.
func DatePtr(d *Date) *time.Time {
	if d == nil {
		return nil
	}
	return d.t
}
