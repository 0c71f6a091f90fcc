package sqlite

import (
	"fmt"
	"time"
)

const dateFormat = "2006-01-02"

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func parseTime(value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("sqlite: parse timestamp %q: %w", value, err)
	}
	return t, nil
}

func formatDate(t time.Time) string {
	return t.Format(dateFormat)
}

func parseDate(value string) (time.Time, error) {
	t, err := time.Parse(dateFormat, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("sqlite: parse date %q: %w", value, err)
	}
	return t, nil
}

// timestamps is embedded by every row type; columns are RFC3339 text.
type timestamps struct {
	CreatedAt string `db:"created_at"`
	UpdatedAt string `db:"updated_at"`
}

func (t timestamps) parse() (created, updated time.Time, err error) {
	if created, err = parseTime(t.CreatedAt); err != nil {
		return
	}
	updated, err = parseTime(t.UpdatedAt)
	return
}
