package timetable

import (
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Day names as they appear in the selection UI. The feed may carry accented
// or unaccented variants interchangeably, which is why all comparisons go
// through NormalizeDay.
const (
	DayLunes     = "LUNES"
	DayMartes    = "MARTES"
	DayMiercoles = "MIERCOLES"
	DayJueves    = "JUEVES"
	DayViernes   = "VIERNES"
	DaySabado    = "SABADO"
	DayDomingo   = "DOMINGO"
)

var stripDiacritics = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeDay upper-cases a day name, strips combining diacritical marks
// and trims surrounding whitespace, so MIÉRCOLES, miercoles and " Miércoles "
// all collapse to the same value.
func NormalizeDay(day string) string {
	upper := strings.ToUpper(day)
	stripped, _, err := transform.String(stripDiacritics, upper)
	if err != nil {
		stripped = upper
	}
	return strings.TrimSpace(stripped)
}

// SameDay reports whether two day names match under normalization.
func SameDay(a, b string) bool {
	return NormalizeDay(a) == NormalizeDay(b)
}

var weekdayNames = map[time.Weekday]string{
	time.Monday:    DayLunes,
	time.Tuesday:   DayMartes,
	time.Wednesday: DayMiercoles,
	time.Thursday:  DayJueves,
	time.Friday:    DayViernes,
	time.Saturday:  DaySabado,
	time.Sunday:    DayDomingo,
}

// DayNameFor maps a Go weekday onto the schedule's day naming.
func DayNameFor(weekday time.Weekday) string {
	return weekdayNames[weekday]
}
