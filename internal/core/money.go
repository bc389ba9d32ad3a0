// Package core provides the domain types of the reporting pipeline:
// calendar dates, money amounts, canonical records and period resolution.
//
// This file contains parsing between the sheets' currency strings
// ("1.234,56", "100,50") and cents.
package core

import (
	"errors"
	"strconv"
	"strings"
	"unicode"
)

var ErrInvalidAmount = errors.New("invalid amount")

// ParseCents converts a decimal string to cents with half-up rounding on
// the third decimal place. Both comma (100,50) and dot (100.50) decimal
// separators are accepted; a thousands separator in the other style is
// stripped ("1.234,56" -> 123456). Negative values are allowed; use the
// caller's amount rule to reject them. Returns an error for empty or
// non-numeric input.
func ParseCents(s string) (int64, error) {
	s = trimCell(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	s = strings.TrimPrefix(s, "R$")
	s = trimCell(s)
	negative := false
	if strings.HasPrefix(s, "-") {
		negative = true
		s = s[1:]
	} else {
		s = strings.TrimPrefix(s, "+")
	}
	s = normalizeSeparators(s)

	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, ErrInvalidAmount
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}
	for _, r := range intPart + fracPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}
	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	const maxSafeInt64 = (1<<63 - 1) / 100
	if iv > maxSafeInt64 {
		return 0, ErrInvalidAmount
	}
	// First two fractional digits are cents, half-up rounding on the third.
	var fracCents int64
	if len(fracPart) > 0 {
		fracCents = int64(fracPart[0]-'0') * 10
		if len(fracPart) > 1 {
			fracCents += int64(fracPart[1] - '0')
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				fracCents++
			}
		}
	}
	cents := iv*100 + fracCents
	if negative {
		cents = -cents
	}
	return cents, nil
}

// normalizeSeparators reduces a numeric string to a single dot decimal
// separator. When both separators appear, the rightmost one is the decimal
// mark and the other is a thousands separator.
func normalizeSeparators(s string) string {
	lastComma := strings.LastIndex(s, ",")
	lastDot := strings.LastIndex(s, ".")
	switch {
	case lastComma >= 0 && lastDot >= 0:
		if lastComma > lastDot {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case lastComma >= 0:
		s = strings.Replace(s, ",", ".", 1)
	}
	return s
}

// Reais returns the value in reais as a float64 for display purposes.
// Keep calculations in cents to avoid floating-point drift.
func (m Money) Reais() float64 {
	return float64(m.Cents) / 100.0
}

// Display formats the amount with the Brazilian decimal comma, e.g. "150,50".
func (m Money) Display() string {
	cents := m.Cents
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return sign + strconv.FormatInt(cents/100, 10) + "," + pad2(cents%100)
}

func pad2(n int64) string {
	if n < 10 {
		return "0" + strconv.FormatInt(n, 10)
	}
	return strconv.FormatInt(n, 10)
}

// trimCell trims ASCII whitespace plus the non-breaking space that Excel
// exports tend to carry.
func trimCell(s string) string {
	return strings.Trim(s, " \t\r\n ")
}
