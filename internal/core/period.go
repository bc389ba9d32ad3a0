package core

import "fmt"

// Period is one of the fixed period tokens offered by the dashboard's
// period selector. The string values are what the API accepts.
type Period string

const (
	CurrentWeek  Period = "current_week"
	LastWeek     Period = "last_week"
	CurrentMonth Period = "current_month"
	LastMonth    Period = "last_month"
	Last3Months  Period = "last_3_months"
	Last6Months  Period = "last_6_months"
	CurrentYear  Period = "current_year"
	LastYear     Period = "last_year"
	AllTime      Period = "all_time"
)

// Labels maps each period token to its display label, in selector order.
var periodLabels = []struct {
	Token Period
	Label string
}{
	{CurrentWeek, "Semana Atual"},
	{LastWeek, "Semana Passada"},
	{CurrentMonth, "Mês Atual"},
	{LastMonth, "Mês Passado"},
	{Last3Months, "Últimos 3 Meses"},
	{Last6Months, "Últimos 6 Meses"},
	{CurrentYear, "Ano Atual"},
	{LastYear, "Ano Passado"},
	{AllTime, "Tempo Todo"},
}

// Periods returns all period tokens in selector order.
func Periods() []Period {
	out := make([]Period, len(periodLabels))
	for i, p := range periodLabels {
		out[i] = p.Token
	}
	return out
}

// Label returns the Portuguese display label for the period.
func (p Period) Label() string {
	for _, pl := range periodLabels {
		if pl.Token == p {
			return pl.Label
		}
	}
	return string(p)
}

// ParsePeriod validates a period token from the API.
func ParsePeriod(s string) (Period, error) {
	for _, pl := range periodLabels {
		if string(pl.Token) == s {
			return pl.Token, nil
		}
	}
	return "", fmt.Errorf("unknown period %q", s)
}

// DateRange is an inclusive [Start, End] date interval. The zero value is
// unbounded and matches every date.
type DateRange struct {
	Start Date
	End   Date
}

// Unbounded reports whether the range places no restriction on dates.
func (r DateRange) Unbounded() bool {
	return r.Start.IsZero() && r.End.IsZero()
}

// Contains reports whether d falls inside the range, bounds included.
// An unbounded side accepts everything on that side.
func (r DateRange) Contains(d Date) bool {
	if !r.Start.IsZero() && d.Before(r.Start) {
		return false
	}
	if !r.End.IsZero() && d.After(r.End) {
		return false
	}
	return true
}

// Resolve computes the explicit inclusive date range for the period against
// a reference date. Weeks start on Monday. AllTime resolves to the
// unbounded range; callers wanting display bounds should take the min and
// max dates present in the data.
func (p Period) Resolve(today Date) DateRange {
	switch p {
	case CurrentWeek:
		return DateRange{Start: today.AddDays(-mondayOffset(today)), End: today}
	case LastWeek:
		weekStart := today.AddDays(-mondayOffset(today))
		return DateRange{Start: weekStart.AddDays(-7), End: weekStart.AddDays(-1)}
	case CurrentMonth:
		return DateRange{Start: today.StartOfMonth(), End: today}
	case LastMonth:
		lastMonth := today.StartOfMonth().AddDays(-1)
		return DateRange{Start: lastMonth.StartOfMonth(), End: lastMonth}
	case Last3Months:
		return DateRange{Start: today.AddMonths(-3), End: today}
	case Last6Months:
		return DateRange{Start: today.AddMonths(-6), End: today}
	case CurrentYear:
		return DateRange{Start: NewDate(today.Year(), 1, 1), End: today}
	case LastYear:
		return DateRange{Start: NewDate(today.Year()-1, 1, 1), End: NewDate(today.Year()-1, 12, 31)}
	default: // AllTime and anything unknown
		return DateRange{}
	}
}

// mondayOffset returns how many days today is past Monday (Monday = 0).
func mondayOffset(d Date) int {
	return (int(d.Weekday()) + 6) % 7
}
