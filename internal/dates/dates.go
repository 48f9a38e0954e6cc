// Package dates parses the heterogeneous date representations found in operator
// exports into calendar dates. Parsing never fails: unusable input yields an
// absent model.Date and callers decide whether to drop, flag or default the row.
package dates

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/sells-group/reconcile-cli/internal/model"
)

// absentMarkers are spreadsheet/dataframe renderings of an empty cell.
var absentMarkers = map[string]bool{
	"":     true,
	"nan":  true,
	"none": true,
	"null": true,
	"nat":  true,
}

var sixDigits = regexp.MustCompile(`\d{6}`)

// IsAbsent reports whether raw is an empty-cell marker.
func IsAbsent(raw string) bool {
	return absentMarkers[strings.ToLower(strings.TrimSpace(raw))]
}

// Parse converts raw into a calendar date. dayFirst selects the field order for
// ambiguous numeric dates ("05/02/2019" is 5 Feb when dayFirst, 2 May otherwise).
// A time-of-day component is accepted and discarded.
func Parse(raw string, dayFirst bool) model.Date {
	s := strings.TrimSpace(raw)
	if IsAbsent(s) {
		return model.Date{}
	}
	t, err := dateparse.ParseIn(s, time.UTC,
		dateparse.PreferMonthFirst(!dayFirst),
		dateparse.RetryAmbiguousDateWithSwap(true),
	)
	if err != nil {
		return model.Date{}
	}
	return model.DateOf(t)
}

// ParseFirstEventDate extracts the date of the first event of a compact service
// history such as "240226a|251216s". The first pipe-delimited segment must carry
// a YYMMDD run; years 00-69 map to 2000-2069 and 70-99 to 1970-1999.
func ParseFirstEventDate(history string) model.Date {
	s := strings.TrimSpace(history)
	if IsAbsent(s) {
		return model.Date{}
	}
	first, _, _ := strings.Cut(s, "|")
	token := sixDigits.FindString(first)
	if token == "" {
		return model.Date{}
	}
	return fromYYMMDD(token)
}

func fromYYMMDD(token string) model.Date {
	yy, _ := strconv.Atoi(token[0:2])
	mm, _ := strconv.Atoi(token[2:4])
	dd, _ := strconv.Atoi(token[4:6])

	year := 2000 + yy
	if yy >= 70 {
		year = 1900 + yy
	}
	if mm < 1 || mm > 12 || dd < 1 {
		return model.Date{}
	}
	d := model.NewDate(year, time.Month(mm), dd)
	// time.Date normalizes overflow (Feb 30 -> Mar 2); reject instead.
	if d.Month != time.Month(mm) || d.Day != dd {
		return model.Date{}
	}
	return d
}
