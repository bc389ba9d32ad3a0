package core

import (
	"time"
)

// Source identifies which spreadsheet a record came from. The cleaning
// rules differ slightly per source (see pipeline.Schema).
type Source string

const (
	SourceReceipts      Source = "receipts"
	SourceServiceOrders Source = "service_orders"
	SourceExpenses      Source = "expenses"
)

// NotInformed is the display sentinel for absent identity and text fields.
// Person names are normalized to uppercase without accents, so the sentinel
// follows the same convention.
const NotInformed = "NÃO INFORMADO"

type (
	// Date is a pure calendar date at midnight UTC.
	Date struct {
		time.Time
	}

	// Money is a monetary amount in cents.
	Money struct {
		Cents int64
	}

	// Record is a cleaned, schema-normalized row of the unified table.
	// Absent dates are the zero Date; absent secondary amounts are 0 cents.
	Record struct {
		Date         Date
		Person       string
		Operation    string
		PaymentType  string
		Group        string // expense group
		Type         string // expense type
		OrderNumber  string
		Description  string
		Amount       Money // primary value, always > 0 after cleaning
		Labor        Money
		Parts        Money
		Other        Money
		TotalWithFee Money
		Source       Source
	}
)

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its calendar date.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), int(t.Month()), t.Day())
}

// Today returns the current calendar date.
func Today() Date {
	return DateOf(time.Now())
}

// Day returns the day of the month.
func (d Date) Day() int {
	return d.Time.Day()
}

// Month returns the month as an int.
func (d Date) Month() int {
	return int(d.Time.Month())
}

// Year returns the year.
func (d Date) Year() int {
	return d.Time.Year()
}

// AddDays returns the date n days later (earlier for negative n).
func (d Date) AddDays(n int) Date {
	return Date{Time: d.Time.AddDate(0, 0, n)}
}

// AddMonths shifts the date by n calendar months, clamping the day to the
// last valid day of the target month (March 31 minus one month is
// February 28/29, never an invalid date).
func (d Date) AddMonths(n int) Date {
	year, month := d.Year(), d.Month()+n
	for month < 1 {
		month += 12
		year--
	}
	for month > 12 {
		month -= 12
		year++
	}
	day := d.Day()
	if last := daysInMonth(year, month); day > last {
		day = last
	}
	return NewDate(year, month, day)
}

// StartOfMonth returns the first day of the date's month.
func (d Date) StartOfMonth() Date {
	return NewDate(d.Year(), d.Month(), 1)
}

// EndOfMonth returns the last day of the date's month.
func (d Date) EndOfMonth() Date {
	return NewDate(d.Year(), d.Month(), daysInMonth(d.Year(), d.Month()))
}

// Before reports whether d is strictly before other.
func (d Date) Before(other Date) bool {
	return d.Time.Before(other.Time)
}

// After reports whether d is strictly after other.
func (d Date) After(other Date) bool {
	return d.Time.After(other.Time)
}

// Display formats the date as dd/mm/yyyy, the format used by the source
// sheets and the UI.
func (d Date) Display() string {
	return d.Format("02/01/2006")
}

// MonthBucket formats the date's containing month as "MM/YYYY" for trend
// series bucketing.
func (d Date) MonthBucket() string {
	return d.Format("01/2006")
}

func daysInMonth(year, month int) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// dateLayouts are the accepted input formats, locale day-first and ISO.
var dateLayouts = []string{
	"02/01/2006",
	"2/1/2006",
	"02/01/06",
	"2006-01-02",
	"02-01-2006",
	"2006-01-02 15:04:05",
	"02/01/2006 15:04:05",
	"2006-01-02T15:04:05Z07:00",
}

// ParseDate parses a date string permissively. The time-of-day component,
// if any, is stripped. Returns false for unparseable input.
func ParseDate(s string) (Date, bool) {
	s = trimCell(s)
	if s == "" {
		return Date{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return DateOf(t), true
		}
	}
	return Date{}, false
}
