package storage

import (
	"fmt"
	"strconv"
	"strings"
)

// NormalizeHeader cleans a raw decoded header: one layer of surrounding
// quotes, whitespace, embedded carriage returns, and internal spaces become
// underscores. Applied in that order, matching what the decoder may emit.
func NormalizeHeader(h string) string {
	h = stripQuotes(h)
	h = strings.TrimSpace(h)
	h = strings.ReplaceAll(h, "\r", "")
	h = strings.ReplaceAll(h, " ", "_")
	return h
}

// MapColumns intersects normalized decoded headers against the table's known
// column set, preserving decode order. Headers with no destination counterpart
// are dropped. An empty intersection means no row could be inserted, so it is
// an error carrying both sides for diagnosability.
func MapColumns(t Table, rawHeaders []string) ([]string, error) {
	const op = "storage.MapColumns"

	known := t.columnSet()

	var mapped []string
	for _, raw := range rawHeaders {
		h := NormalizeHeader(raw)
		if _, ok := known[h]; ok {
			mapped = append(mapped, h)
		}
	}

	if len(mapped) == 0 {
		return nil, fmt.Errorf("%s: no valid columns for table %s: decoded headers [%s], known columns [%s]",
			op, t.Name(), strings.Join(rawHeaders, ", "), strings.Join(t.Columns(), ", "))
	}

	return mapped, nil
}

// SanitizeValue turns a raw cell into the value stored for it. Empty strings
// and the literals "null"/"NULL" become SQL NULL; everything else loses one
// layer of surrounding quotes and whitespace.
func SanitizeValue(raw string) any {
	if raw == "" || raw == "null" || raw == "NULL" {
		return nil
	}

	v := strings.TrimSpace(stripQuotes(raw))
	if v == "" {
		return nil
	}

	return v
}

// CoerceCount interprets a stored cell as a non-negative count. Missing or
// non-numeric values coerce to zero; the second return reports whether the
// fallback fired, so callers (and tests) can observe it rather than having
// zeros appear silently.
func CoerceCount(raw string) (int64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, true
	}

	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		// Spreadsheet exports routinely store counts as "12.0".
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil {
			return 0, true
		}
		n = int64(f)
	}

	if n < 0 {
		return 0, true
	}

	return n, false
}

// stripQuotes removes one leading and one trailing quote character
// independently, so a stray unpaired quote is dropped too.
func stripQuotes(s string) string {
	if len(s) > 0 && (s[0] == '"' || s[0] == '\'') {
		s = s[1:]
	}
	if len(s) > 0 && (s[len(s)-1] == '"' || s[len(s)-1] == '\'') {
		s = s[:len(s)-1]
	}
	return s
}
