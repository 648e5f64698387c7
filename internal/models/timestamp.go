package models

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// TimestampLayout is the wire format for timestamps: UTC with millisecond precision
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// Timestamp is a time.Time that renders in TimestampLayout and scans from the database
type Timestamp struct {
	time.Time
}

// NewTimestamp wraps t
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

// MarshalJSON renders the timestamp in UTC with millisecond precision
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.UTC().Format(TimestampLayout) + `"`), nil
}

// UnmarshalJSON accepts any RFC 3339 timestamp
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("timestamp must be a JSON string, got %s", data)
	}
	parsed, err := time.Parse(time.RFC3339Nano, string(data[1:len(data)-1]))
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

// Scan implements sql.Scanner
func (t *Timestamp) Scan(src interface{}) error {
	switch v := src.(type) {
	case time.Time:
		t.Time = v
		return nil
	case nil:
		t.Time = time.Time{}
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Timestamp", src)
	}
}

// Value implements driver.Valuer
func (t Timestamp) Value() (driver.Value, error) {
	return t.Time, nil
}
