package date

import (
	"fmt"
	"strings"
	"time"
)

// Period is a standard calendar period used to group dates.
type Period int

const (
	Daily Period = iota
	Weekly
	Monthly
	Quarterly
	Semesterly
	Yearly
)

// Periods lists all periods from the shortest to the longest.
var Periods = []Period{Daily, Weekly, Monthly, Quarterly, Semesterly, Yearly}

func (p Period) String() string {
	switch p {
	case Daily:
		return "daily"
	case Weekly:
		return "weekly"
	case Monthly:
		return "monthly"
	case Quarterly:
		return "quarterly"
	case Semesterly:
		return "semesterly"
	case Yearly:
		return "yearly"
	default:
		panic(fmt.Sprintf("unknown period %d", p))
	}
}

// Name returns the singular noun for the period (e.g., "day", "week", "month").
func (p Period) Name() string {
	switch p {
	case Daily:
		return "day"
	case Weekly:
		return "week"
	case Monthly:
		return "month"
	case Quarterly:
		return "quarter"
	case Semesterly:
		return "semester"
	case Yearly:
		return "year"
	default:
		return "period"
	}
}

// Range returns the Range for the period containing the date d.
func (p Period) Range(d Date) Range { return NewRange(d, p) }

// MarshalText encodes the period by its String form.
func (p Period) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// UnmarshalText decodes any form accepted by ParsePeriod.
func (p *Period) UnmarshalText(text []byte) error {
	v, err := ParsePeriod(string(text))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// ParsePeriod parses both the adjective ("monthly") and noun ("month") forms.
func ParsePeriod(p string) (Period, error) {
	p = strings.ToLower(strings.TrimSpace(p))
	switch p {
	case "daily", "day":
		return Daily, nil
	case "weekly", "week":
		return Weekly, nil
	case "monthly", "month":
		return Monthly, nil
	case "quarterly", "quarter":
		return Quarterly, nil
	case "semesterly", "semester", "half":
		return Semesterly, nil
	case "yearly", "year":
		return Yearly, nil
	default:
		return Daily, fmt.Errorf("unknown period %q", p)
	}
}

// Semester returns 1 for January to June and 2 for July to December.
func (d Date) Semester() int {
	if d.Month() < time.July {
		return 1
	}
	return 2
}

// Quarter returns the quarter of the year, in [1..4].
func (d Date) Quarter() int { return int(d.Month()-1)/3 + 1 }

// StartOf returns the date of begining of a given period.
//
// Weeks start on Monday as in ISO 8601.
func (d Date) StartOf(period Period) Date {
	switch period {
	case Daily:
		return d
	case Weekly:
		weekday := d.Weekday() // time.Sunday = 0, ..., time.Saturday = 6
		offset := int(weekday - time.Monday)
		for offset < 0 {
			offset += 7
		}
		return d.Add(-offset)
	case Monthly:
		return New(d.Year(), d.Month(), 1)
	case Quarterly:
		return New(d.Year(), time.Month((d.Quarter()-1)*3+1), 1)
	case Semesterly:
		return New(d.Year(), time.Month((d.Semester()-1)*6+1), 1)
	case Yearly:
		return New(d.Year(), time.January, 1)
	default:
		panic("unknown period")
	}
}

// EndOf returns the date of end of a given period.
func (d Date) EndOf(period Period) Date {
	switch period {
	case Daily:
		return d
	case Weekly:
		return d.StartOf(Weekly).Add(6)
	case Monthly:
		return New(d.Year(), d.Month()+1, 0)
	case Quarterly:
		endMonth := time.Month(d.Quarter() * 3) // in [3..12]
		return New(d.Year(), endMonth+1, 0)     // last is next month on the day 0
	case Semesterly:
		endMonth := time.Month(d.Semester() * 6)
		return New(d.Year(), endMonth+1, 0)
	case Yearly:
		return New(d.Year()+1, time.January, 0)
	default:
		panic("unknown period")
	}
}
