package game

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// GameDate is the simulation clock. Hour is derived from DayProgress.
type GameDate struct {
	Year        int     `json:"year"`
	Month       int     `json:"month"`
	Day         int     `json:"day"`
	Hour        int     `json:"hour"`
	DayProgress float64 `json:"day_progress"`
}

func NewDate(year, month, day int) GameDate {
	return dateFromTime(time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC))
}

func dateFromTime(t time.Time) GameDate {
	return GameDate{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}
}

func (d GameDate) Time() time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
}

// Calendar drops the intraday part.
func (d GameDate) Calendar() GameDate {
	return GameDate{Year: d.Year, Month: d.Month, Day: d.Day}
}

func (d GameDate) AddDays(n int) GameDate {
	return dateFromTime(d.Time().AddDate(0, 0, n))
}

// AddMonths keeps the day of month and lets overflow roll forward
// (Jan 31 + 1 month = Mar 2 or 3).
func (d GameDate) AddMonths(n int) GameDate {
	return dateFromTime(time.Date(d.Year, time.Month(d.Month+n), d.Day, 0, 0, 0, 0, time.UTC))
}

func (d GameDate) AddYears(n int) GameDate {
	return d.AddMonths(12 * n)
}

func (d GameDate) compare(o GameDate) int {
	switch {
	case d.Year != o.Year:
		return d.Year - o.Year
	case d.Month != o.Month:
		return d.Month - o.Month
	default:
		return d.Day - o.Day
	}
}

func (d GameDate) Before(o GameDate) bool { return d.compare(o) < 0 }
func (d GameDate) After(o GameDate) bool  { return d.compare(o) > 0 }
func (d GameDate) SameDay(o GameDate) bool {
	return d.compare(o) == 0
}

// Reached reports whether d is on or after o.
func (d GameDate) Reached(o GameDate) bool { return d.compare(o) >= 0 }

func (d GameDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// stamp is the compact yyyymmdd form used inside generated ids.
func (d GameDate) stamp() string {
	return fmt.Sprintf("%04d%02d%02d", d.Year, d.Month, d.Day)
}

func (d GameDate) Validate() error {
	if d.Month < 1 || d.Month > 12 {
		return fmt.Errorf("month %d out of range", d.Month)
	}
	if d.Day < 1 || d.Day > daysIn(d.Year, d.Month) {
		return fmt.Errorf("day %d out of range for %04d-%02d", d.Day, d.Year, d.Month)
	}
	if d.Hour < 0 || d.Hour > 23 {
		return fmt.Errorf("hour %d out of range", d.Hour)
	}
	if d.DayProgress < 0 || d.DayProgress > 1 {
		return fmt.Errorf("day progress %v out of range", d.DayProgress)
	}
	return nil
}

func daysIn(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// UnmarshalJSON accepts the canonical object form and, for older saves, an
// ISO date or RFC 3339 timestamp string.
func (d *GameDate) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		for _, layout := range []string{"2006-01-02", time.RFC3339Nano, time.RFC3339} {
			if t, err := time.Parse(layout, s); err == nil {
				t = t.UTC()
				*d = dateFromTime(t)
				return nil
			}
		}
		return fmt.Errorf("unrecognised date %q", s)
	}
	type plain GameDate
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*d = GameDate(p)
	return nil
}
