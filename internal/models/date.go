package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Date is a calendar day without a time-of-day component.
type Date struct {
	time.Time
}

// ParseDate accepts YYYY-MM-DD or an RFC 3339 timestamp.
func ParseDate(raw string) (Date, error) {
	value := strings.TrimSpace(raw)
	if t, err := time.Parse(dateLayout, value); err == nil {
		return Date{t}, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return Date{truncateDay(t)}, nil
	}
	// ASP.NET emits local timestamps without an offset.
	if t, err := time.Parse("2006-01-02T15:04:05", value); err == nil {
		return Date{truncateDay(t)}, nil
	}
	return Date{}, fmt.Errorf("invalid date: %s", value)
}

func (d Date) String() string {
	return d.Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == "" {
		return nil
	}
	parsed, err := ParseDate(raw)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func (d Date) MarshalYAML() (any, error) {
	return d.String(), nil
}
