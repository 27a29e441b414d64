package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// TimeOfDayLayout is the wire format of lecture start and end times
const TimeOfDayLayout = "15:04"

// TimeOfDay is a wall-clock time without a date, stored as minutes since midnight
type TimeOfDay int

// NewTimeOfDay builds a TimeOfDay from an hour and a minute.
func NewTimeOfDay(hour, minute int) TimeOfDay {
	return TimeOfDay(hour*60 + minute)
}

// ParseTimeOfDay parses "HH:MM".
func ParseTimeOfDay(value string) (TimeOfDay, error) {
	t, err := time.Parse(TimeOfDayLayout, value)
	if err != nil {
		return 0, fmt.Errorf("invalid time of day %q: %w", value, err)
	}
	return NewTimeOfDay(t.Hour(), t.Minute()), nil
}

// Hour returns the hour component
func (t TimeOfDay) Hour() int { return int(t) / 60 }

// Minute returns the minute component
func (t TimeOfDay) Minute() int { return int(t) % 60 }

// Before reports whether t is earlier than other.
func (t TimeOfDay) Before(other TimeOfDay) bool { return t < other }

// Microseconds since midnight, as Postgres TIME values are stored
func (t TimeOfDay) Microseconds() int64 {
	return int64(t) * int64(time.Minute/time.Microsecond)
}

// TimeOfDayFromMicroseconds converts a Postgres TIME value back.
func TimeOfDayFromMicroseconds(us int64) TimeOfDay {
	return TimeOfDay(us / int64(time.Minute/time.Microsecond))
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// MarshalJSON implements json.Marshaler
func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON implements json.Unmarshaler
func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
