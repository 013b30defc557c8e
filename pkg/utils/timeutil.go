package utils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// 客户端发送不带时区的时间, 按 UTC 处理
var naiveLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// ParseUTC parses an RFC 3339 timestamp, or a timestamp without zone marker
// which is taken as UTC wall-clock time. The result is always in UTC.
func ParseUTC(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UTC(), nil
	}
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", s)
}

// UTCTime is a JSON timestamp that accepts naive values and marshals as RFC 3339 UTC.
type UTCTime struct {
	time.Time
}

func (t *UTCTime) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}
	if s == "" {
		t.Time = time.Time{}
		return nil
	}
	parsed, err := ParseUTC(s)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

func (t UTCTime) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.UTC().Format(time.RFC3339Nano))
}
