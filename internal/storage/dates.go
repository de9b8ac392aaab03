package storage

import (
	"strconv"
	"strings"
	"time"
)

// dayLayouts are the date shapes the loader is known to store. Dates are kept
// as the exact text the source file carried, so parsing has to meet the file
// where it is.
var dayLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"1/2/2006",
	"01/02/2006",
	"2-Jan-2006",
	"2-Jan-06",
}

// excelEpoch is day zero of the 1900 date system used by xlsx serial dates.
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// ParseDay interprets a stored PO_Date value as a calendar day. Spreadsheet
// sources decoded with raw cell values store dates as numeric serials, so a
// plain integer in a plausible range is read against the Excel epoch.
func ParseDay(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range dayLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	if serial, err := strconv.ParseInt(s, 10, 64); err == nil && serial > 0 && serial < 200000 {
		return excelEpoch.AddDate(0, 0, int(serial)), true
	}

	return time.Time{}, false
}

// DayType classifies a weekday label into the two summary cohorts.
// Monday through Friday are weekdays.
func DayType(weekday time.Weekday) string {
	if weekday == time.Saturday || weekday == time.Sunday {
		return DayTypeWeekend
	}
	return DayTypeWeekday
}
