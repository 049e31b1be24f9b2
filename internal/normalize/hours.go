package normalize

import (
	"regexp"
	"strings"
)

// TimeRange is a pair of "HH:MM" operating times. Either side may be
// empty. Hours are taken verbatim from the source text; the sites write
// 24-hour digits even when they label them "AM"/"PM", so the labels are
// ignored rather than used for conversion.
type TimeRange struct {
	Open  string
	Close string
}

var clockRe = regexp.MustCompile(`\d{1,2}:\d{2}`)

// ParseOperatingHours extracts an open/close pair from operating-hours
// text such as "AM 10:30 ~ PM 18:30(연중무휴)". Everything from the first
// "(" onward is a footnote and is discarded. When no clock token matches
// at all, the raw separator-split halves are passed through so an exotic
// format is preserved instead of lost.
func ParseOperatingHours(text string) TimeRange {
	if strings.TrimSpace(text) == "" {
		return TimeRange{}
	}

	base := text
	if i := strings.Index(base, "("); i >= 0 {
		base = base[:i]
	}
	base = strings.TrimSpace(base)

	times := clockRe.FindAllString(base, -1)
	if len(times) >= 2 {
		return TimeRange{Open: padHour(times[0]), Close: padHour(times[1])}
	}
	if len(times) == 1 {
		return TimeRange{Open: padHour(times[0])}
	}

	parts := separatorRe.Split(base, 2)
	if len(parts) == 2 {
		return TimeRange{
			Open:  strings.TrimSpace(parts[0]),
			Close: strings.TrimSpace(parts[1]),
		}
	}
	return TimeRange{Open: base}
}

// padHour zero-pads a one-digit hour so "9:30" becomes "09:30".
func padHour(t string) string {
	if len(t) == 4 {
		return "0" + t
	}
	return t
}
