package models

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"
)

// Timestamp is an optional point in time decoded leniently from the API.
// A value that cannot be parsed is kept in Raw with Valid=false instead of
// failing the whole decode, so one corrupt record never blocks a list.
type Timestamp struct {
	Time  time.Time
	Valid bool
	Raw   string
}

// zoned layouts carry their own offset; the rest are read as local wall time.
var zonedLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05Z0700",
	"2006-01-02 15:04:05Z07:00",
}

var localLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// ParseTimestamp parses s in the formats the backend emits. Zoneless values
// are interpreted in loc.
func ParseTimestamp(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t, Valid: true}
}

// TimestampOf parses s in local time; an unparseable value yields an invalid Timestamp.
func TimestampOf(s string) Timestamp {
	t, ok := ParseTimestamp(s, time.Local)
	return Timestamp{Time: t, Valid: ok, Raw: s}
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	*t = Timestamp{}
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		// Numbers, objects and the like are treated as absent.
		t.Raw = string(data)
		return nil
	}
	*t = TimestampOf(s)
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if !t.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(t.Time.Format(time.RFC3339))
}

// Format renders the timestamp in local time, or "-" when absent.
func (t Timestamp) Format(layout string) string {
	if !t.Valid {
		return "-"
	}
	return t.Time.In(time.Local).Format(layout)
}
