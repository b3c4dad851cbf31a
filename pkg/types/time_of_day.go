package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const minutesPerDay = 24 * 60

// ErrInvalidTimeOfDay is returned when a wall-clock value cannot be parsed or is out of range.
var ErrInvalidTimeOfDay = errors.New("types: invalid time of day")

// TimeOfDay is a facility-local wall-clock time with minute precision.
// It carries no date and no timezone.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// NewTimeOfDay returns a TimeOfDay after range checking hour and minute.
func NewTimeOfDay(hour, minute int) (TimeOfDay, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return TimeOfDay{}, fmt.Errorf("%w: %02d:%02d", ErrInvalidTimeOfDay, hour, minute)
	}
	return TimeOfDay{Hour: hour, Minute: minute}, nil
}

// ParseTimeOfDay parses "HH:MM" or "HH:MM:SS". Seconds other than zero are rejected.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, s)
	}

	nums := make([]int, len(parts))
	for i, p := range parts {
		if len(p) != 2 {
			return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, s)
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, s)
		}
		nums[i] = n
	}

	if len(nums) == 3 && nums[2] != 0 {
		return TimeOfDay{}, fmt.Errorf("%w: seconds are not supported: %q", ErrInvalidTimeOfDay, s)
	}

	return NewTimeOfDay(nums[0], nums[1])
}

// TimeOfDayFromMinutes converts minutes since midnight into a TimeOfDay.
func TimeOfDayFromMinutes(m int) (TimeOfDay, error) {
	if m < 0 || m >= minutesPerDay {
		return TimeOfDay{}, fmt.Errorf("%w: %d minutes", ErrInvalidTimeOfDay, m)
	}
	return TimeOfDay{Hour: m / 60, Minute: m % 60}, nil
}

// TimeOfDayOf extracts the wall-clock part of t.
func TimeOfDayOf(t time.Time) TimeOfDay {
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}
}

// Minutes returns minutes since midnight.
func (t TimeOfDay) Minutes() int {
	return t.Hour*60 + t.Minute
}

func (t TimeOfDay) Before(other TimeOfDay) bool {
	return t.Minutes() < other.Minutes()
}

func (t TimeOfDay) After(other TimeOfDay) bool {
	return t.Minutes() > other.Minutes()
}

func (t TimeOfDay) Equal(other TimeOfDay) bool {
	return t.Minutes() == other.Minutes()
}

// AddMinutes shifts t forward by m minutes; the result must stay within the same day.
func (t TimeOfDay) AddMinutes(m int) (TimeOfDay, error) {
	return TimeOfDayFromMinutes(t.Minutes() + m)
}

// On combines t with date d in loc.
func (t TimeOfDay) On(d Date, loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, t.Hour, t.Minute, 0, 0, loc)
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTimeOfDay, err)
	}
	parsed, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Value stores the time as a PostgreSQL TIME literal.
func (t TimeOfDay) Value() (driver.Value, error) {
	return t.String() + ":00", nil
}

// Scan reads a PostgreSQL TIME column.
func (t *TimeOfDay) Scan(src interface{}) error {
	switch v := src.(type) {
	case time.Time:
		*t = TimeOfDayOf(v)
		return nil
	case []byte:
		return t.scanString(string(v))
	case string:
		return t.scanString(v)
	default:
		return fmt.Errorf("%w: cannot scan %T", ErrInvalidTimeOfDay, src)
	}
}

func (t *TimeOfDay) scanString(s string) error {
	// pq может вернуть "18:00:00.000000"
	if idx := strings.IndexByte(s, '.'); idx >= 0 {
		s = s[:idx]
	}
	parsed, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
