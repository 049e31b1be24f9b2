// Package normalize converts the heterogeneous date and time text found on
// gallery sites into canonical ISO shapes. Every function here is total:
// malformed input degrades to a defined fallback value, never a panic or
// an error return.
package normalize

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// Grammar selects the optional per-source date forms. The dash and dotted
// numeric forms are always on; the rest vary between galleries.
type Grammar struct {
	// EnglishMonths enables "3 Dec 2025 - 13 Jan 2026" and the
	// compressed "3 - 31 Dec 2025" calendar forms.
	EnglishMonths bool `yaml:"english_months"`
	// KoreanDates enables the verbose "2025년 12월 3일" forms.
	KoreanDates bool `yaml:"korean_dates"`
	// SlashDates enables "2025 11/26" style mixed slash/space forms.
	SlashDates bool `yaml:"slash_dates"`
}

// Status tags the outcome of a range parse so callers cannot mistake an
// intentionally blank value for a failed one.
type Status int

const (
	StatusEmpty Status = iota // input was empty or whitespace
	StatusFailed              // nothing resolved; Raw carries the input
	StatusStartOnly           // start resolved, end did not
	StatusFull                // both sides resolved
)

// DateRange is the result of normalizing one operating-period string.
// Start and End are "YYYY-MM-DD" or empty. Raw preserves the original
// text whenever the parse failed outright, so callers can display it
// rather than silently drop the listing.
type DateRange struct {
	Status Status
	Start  string
	End    string
	Raw    string
}

var (
	separatorRe   = regexp.MustCompile(`\s*[-~–]\s*`)
	parentheticRe = regexp.MustCompile(`\([^)]*\)`)
	isoPairRe     = regexp.MustCompile(`\d{4}-\d{1,2}-\d{1,2}`)
	isoRe         = regexp.MustCompile(`^(\d{4})-(\d{1,2})-(\d{1,2})$`)
	dottedRe      = regexp.MustCompile(`^(\d{4})\.(\d{1,2})\.(\d{1,2})$`)
	monthDayRe    = regexp.MustCompile(`^(\d{1,2})\.(\d{1,2})$`)
	dayRe         = regexp.MustCompile(`^(\d{1,2})$`)
	dotSpaceRe    = regexp.MustCompile(`\s*\.\s*`)
	multiDotRe    = regexp.MustCompile(`\.+`)
	spaceRunRe    = regexp.MustCompile(`\s+`)

	koreanFullRe     = regexp.MustCompile(`(\d{4})\s*년\s*(\d{1,2})\s*월\s*(\d{1,2})\s*일?`)
	koreanMonthDayRe = regexp.MustCompile(`(\d{1,2})\s*월\s*(\d{1,2})\s*일?`)

	englishPairRe   = regexp.MustCompile(`^(\d{1,2})\s+([A-Za-z]{3,})\s+(\d{4})\s*[-–]\s*(\d{1,2})\s+([A-Za-z]{3,})\s+(\d{4})$`)
	englishSpanRe   = regexp.MustCompile(`^(\d{1,2})\s*[-–]\s*(\d{1,2})\s+([A-Za-z]{3,})\s+(\d{4})$`)
	englishSingleRe = regexp.MustCompile(`^(\d{1,2})\s+([A-Za-z]{3,})\s+(\d{4})$`)
)

var monthAbbrev = map[string]int{
	"JAN": 1, "FEB": 2, "MAR": 3, "APR": 4, "MAY": 5, "JUN": 6,
	"JUL": 7, "AUG": 8, "SEP": 9, "OCT": 10, "NOV": 11, "DEC": 12,
}

// calDate is a resolved proleptic-Gregorian calendar date.
type calDate struct {
	year, month, day int
}

// newCalDate validates by actual calendar construction. An out-of-range
// day (Feb 30) is a non-match, never a clamp to the next month.
func newCalDate(year, month, day int) (calDate, bool) {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return calDate{}, false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return calDate{}, false
	}
	return calDate{year, month, day}, true
}

func (d calDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.year, d.month, d.day)
}

func monthNumber(name string) (int, bool) {
	if len(name) < 3 {
		return 0, false
	}
	n, ok := monthAbbrev[strings.ToUpper(name[:3])]
	return n, ok
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

// ParseDateRange normalizes one operating-period string into a DateRange.
// The base date for a partially specified end ("2025.12.3-8") is always
// the already resolved start of the same range, never today's date; a
// crawl that runs months after a listing was published must not invent a
// year.
func ParseDateRange(text string, g Grammar) DateRange {
	s := strings.TrimSpace(text)
	if s == "" {
		return DateRange{Status: StatusEmpty}
	}

	failed := DateRange{Status: StatusFailed, Raw: text}

	if g.EnglishMonths {
		if r, ok := parseEnglishRange(s); ok {
			return r
		}
	}

	// Discard leading label prose ("전시 기간:") up to the first digit.
	digit := strings.IndexFunc(s, unicode.IsDigit)
	if digit < 0 {
		return failed
	}
	s = s[digit:]

	// Parenthetical asides like "(월요일 휴관)" or weekday markers.
	s = strings.TrimSpace(parentheticRe.ReplaceAllString(s, ""))

	// Two full ISO dates anywhere in the text win outright; they cannot
	// go through the separator split because the dashes inside them
	// would be mistaken for the range separator.
	if pair := isoPairRe.FindAllString(s, 2); len(pair) == 2 {
		start, okS := parseSingle(pair[0], nil, g)
		end, okE := parseSingle(pair[1], nil, g)
		if okS && okE {
			return DateRange{Status: StatusFull, Start: start.String(), End: end.String()}
		}
	}

	// A lone date with no range separator.
	if d, ok := parseSingle(s, nil, g); ok {
		return DateRange{Status: StatusStartOnly, Start: d.String()}
	}

	parts := separatorRe.Split(s, 2)
	if len(parts) != 2 {
		return failed
	}

	start, ok := parseSingle(parts[0], nil, g)
	if !ok {
		return failed
	}

	end, ok := parseSingle(parts[1], &start, g)
	if !ok {
		return DateRange{Status: StatusStartOnly, Start: start.String()}
	}

	return DateRange{Status: StatusFull, Start: start.String(), End: end.String()}
}

// parseEnglishRange matches the two whole-text gallery-calendar forms
// before any generic splitting, since "3 - 31 Dec 2025" would otherwise
// lose its month to the left side of the split.
func parseEnglishRange(s string) (DateRange, bool) {
	if m := englishPairRe.FindStringSubmatch(s); m != nil {
		m1, ok1 := monthNumber(m[2])
		m2, ok2 := monthNumber(m[5])
		if ok1 && ok2 {
			start, okS := newCalDate(atoi(m[3]), m1, atoi(m[1]))
			end, okE := newCalDate(atoi(m[6]), m2, atoi(m[4]))
			if okS && okE {
				return DateRange{Status: StatusFull, Start: start.String(), End: end.String()}, true
			}
		}
	}

	if m := englishSpanRe.FindStringSubmatch(s); m != nil {
		if mon, ok := monthNumber(m[3]); ok {
			year := atoi(m[4])
			start, okS := newCalDate(year, mon, atoi(m[1]))
			end, okE := newCalDate(year, mon, atoi(m[2]))
			if okS && okE {
				return DateRange{Status: StatusFull, Start: start.String(), End: end.String()}, true
			}
		}
	}

	return DateRange{}, false
}

// parseSingle resolves one side of a range. base fills in an omitted year
// or month; without it the short "MM.DD" and "DD" forms are non-matches.
func parseSingle(part string, base *calDate, g Grammar) (calDate, bool) {
	s := strings.TrimSpace(part)
	if s == "" {
		return calDate{}, false
	}

	if m := isoRe.FindStringSubmatch(s); m != nil {
		return newCalDate(atoi(m[1]), atoi(m[2]), atoi(m[3]))
	}

	if g.KoreanDates {
		s = koreanFullRe.ReplaceAllString(s, "$1.$2.$3")
		s = koreanMonthDayRe.ReplaceAllString(s, "$1.$2")
	}

	if g.EnglishMonths {
		if m := englishSingleRe.FindStringSubmatch(s); m != nil {
			if mon, ok := monthNumber(m[2]); ok {
				return newCalDate(atoi(m[3]), mon, atoi(m[1]))
			}
		}
	}

	if g.SlashDates {
		s = strings.ReplaceAll(s, "/", ".")
		s = spaceRunRe.ReplaceAllString(s, ".")
	}

	// "2025. 11. 26" -> "2025.11.26", stray dots collapsed, trailing
	// dot from "2025.11.12." dropped.
	s = dotSpaceRe.ReplaceAllString(s, ".")
	s = multiDotRe.ReplaceAllString(s, ".")
	s = strings.Trim(s, " .")

	if m := dottedRe.FindStringSubmatch(s); m != nil {
		return newCalDate(atoi(m[1]), atoi(m[2]), atoi(m[3]))
	}

	if base != nil {
		if m := monthDayRe.FindStringSubmatch(s); m != nil {
			return newCalDate(base.year, atoi(m[1]), atoi(m[2]))
		}
		if m := dayRe.FindStringSubmatch(s); m != nil {
			return newCalDate(base.year, base.month, atoi(m[1]))
		}
	}

	return calDate{}, false
}
