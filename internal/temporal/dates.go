package temporal

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Precision of a parsed date expression.
const (
	PrecisionMonth   = "month"
	PrecisionSeason  = "season"
	PrecisionYear    = "year"
	PrecisionUnknown = "unknown"
)

var monthNames = map[string]time.Month{
	"january": time.January, "february": time.February, "march": time.March,
	"april": time.April, "may": time.May, "june": time.June, "july": time.July,
	"august": time.August, "september": time.September, "october": time.October,
	"november": time.November, "december": time.December,
	"jan": time.January, "feb": time.February, "mar": time.March, "apr": time.April,
	"jun": time.June, "jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

var seasonMonths = map[string][2]time.Month{
	"spring": {time.March, time.May},
	"summer": {time.June, time.August},
	"fall":   {time.September, time.November},
	"autumn": {time.September, time.November},
	"winter": {time.December, time.February},
}

var (
	seasonPattern = regexp.MustCompile(`(?:this|next|in)\s+(spring|summer|fall|autumn|winter)`)
	monthPattern  = regexp.MustCompile(`(?:in|this|next)\s+([a-z]+)\s*(\d{4})?`)
)

// ParseExpression turns a natural-language date expression into a start and
// end date plus a precision tag. Unrecognized expressions fall back to a
// 30-day window from the reference date with precision "unknown"; parsing
// never fails.
func ParseExpression(text string, ref time.Time) (time.Time, time.Time, string) {
	lower := strings.ToLower(strings.TrimSpace(text))

	switch {
	case strings.Contains(lower, "next month"):
		start := startOfMonth(ref).AddDate(0, 1, 0)
		return start, endOfMonth(start), PrecisionMonth
	case strings.Contains(lower, "this month"):
		start := startOfMonth(ref)
		return start, endOfMonth(start), PrecisionMonth
	case strings.Contains(lower, "next year"):
		start := time.Date(ref.Year()+1, time.January, 1, 0, 0, 0, 0, ref.Location())
		return start, start.AddDate(1, 0, -1), PrecisionYear
	}

	if m := seasonPattern.FindStringSubmatch(lower); m != nil {
		months := seasonMonths[m[1]]
		year := ref.Year()
		// Winter wraps the year end; treat its window end as next February.
		endMonth := months[1]
		endYear := year
		if m[1] == "winter" {
			endYear = year + 1
		}
		if strings.Contains(lower, "next") || ref.Month() > months[1] && m[1] != "winter" {
			year++
			endYear++
		}
		start := time.Date(year, months[0], 1, 0, 0, 0, 0, ref.Location())
		end := endOfMonth(time.Date(endYear, endMonth, 1, 0, 0, 0, 0, ref.Location()))
		return start, end, PrecisionSeason
	}

	if m := monthPattern.FindStringSubmatch(lower); m != nil {
		if month, ok := monthNames[m[1]]; ok {
			var year int
			switch {
			case m[2] != "":
				year, _ = strconv.Atoi(m[2])
			case strings.Contains(lower, "next") || month <= ref.Month():
				year = ref.Year() + 1
			default:
				year = ref.Year()
			}
			start := time.Date(year, month, 1, 0, 0, 0, 0, ref.Location())
			return start, endOfMonth(start), PrecisionMonth
		}
	}

	return ref, ref.AddDate(0, 0, 30), PrecisionUnknown
}

func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

func endOfMonth(t time.Time) time.Time {
	return startOfMonth(t).AddDate(0, 1, -1)
}
