package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Date accepts either a calendar date ("2006-01-02") or an RFC 3339 timestamp.
// Calendar dates are taken as midnight UTC; timestamps keep their offset so the
// caller's calendar day survives.
type Date struct {
	time.Time
}

func (d *Date) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	t, err := ParseDate(s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Time.UTC().Format(time.RFC3339))
}

// ParseDate parses s as a calendar date or an RFC 3339 timestamp.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD or RFC 3339", s)
	}
	return t, nil
}

// TimePtr returns the wrapped time, or nil when d is nil.
func (d *Date) TimePtr() *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time
	return &t
}

// ParseRangeEnd parses the upper bound of a date range as an exclusive instant.
// A calendar date covers the whole day, so it yields the following midnight.
func ParseRangeEnd(s string) (time.Time, error) {
	t, err := ParseDate(s)
	if err != nil {
		return time.Time{}, err
	}
	if _, dateOnly := time.Parse(dateLayout, strings.TrimSpace(s)); dateOnly == nil {
		return t.AddDate(0, 0, 1), nil
	}
	return t, nil
}
