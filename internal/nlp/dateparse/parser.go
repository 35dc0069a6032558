// Package dateparse resolves Spanish free-text date/time phrases ("mañana a
// las 3 de la tarde", "el martes a las 10:30") into concrete instants.
//
// The parser sits behind the Resolver interface so the heuristics can be
// swapped without touching validation logic. Failure to understand a phrase
// is a normal outcome, not an error.
package dateparse

import (
	"regexp"
	"strconv"
	"time"
)

// Resolver turns a phrase into an instant, using ref both as "now" and as
// the carrier of the target timezone. Ambiguous relative dates resolve
// forward, never into the past.
type Resolver interface {
	Resolve(text string, ref time.Time) (time.Time, bool)
}

// SpanishParser is the default Resolver.
type SpanishParser struct{}

func NewSpanishParser() *SpanishParser {
	return &SpanishParser{}
}

var monthsByName = map[string]time.Month{
	"enero":      time.January,
	"febrero":    time.February,
	"marzo":      time.March,
	"abril":      time.April,
	"mayo":       time.May,
	"junio":      time.June,
	"julio":      time.July,
	"agosto":     time.August,
	"septiembre": time.September,
	"setiembre":  time.September,
	"octubre":    time.October,
	"noviembre":  time.November,
	"diciembre":  time.December,
}

var weekdaysByName = map[string]time.Weekday{
	"lunes":     time.Monday,
	"martes":    time.Tuesday,
	"miercoles": time.Wednesday,
	"jueves":    time.Thursday,
	"viernes":   time.Friday,
	"sabado":    time.Saturday,
	"domingo":   time.Sunday,
}

var (
	reExplicitDate = regexp.MustCompile(`\b(\d{1,2}) de (enero|febrero|marzo|abril|mayo|junio|julio|agosto|septiembre|setiembre|octubre|noviembre|diciembre)(?: de (\d{4}))?\b`)
	reNumericDate  = regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})(?:/(\d{2,4}))?\b`)
	rePasadoManana = regexp.MustCompile(`\bpasado manana\b`)
	reMananaDay    = regexp.MustCompile(`\bmanana\b`)
	reHoy          = regexp.MustCompile(`\bhoy\b`)
	reWeekdayWord  = regexp.MustCompile(`\b(?:(proximo|este|el) )?(lunes|martes|miercoles|jueves|viernes|sabado|domingo)\b`)

	reTimeALas    = regexp.MustCompile(`\ba las? (\d{1,2})(?::(\d{2}))?(?: ?(am|pm))?\b`)
	reTimeHHMM    = regexp.MustCompile(`\b(\d{1,2}):(\d{2})(?: ?(am|pm))?\b`)
	reTimeMeridie = regexp.MustCompile(`\b(\d{1,2}) ?(am|pm)\b`)
)

type dayRef struct {
	year  int
	month time.Month
	day   int

	// found is false when the phrase carried no date at all; the day then
	// defaults to today with forward bias applied after the time is known.
	// Phrases that pin a calendar day outright (hoy, mañana, 15 de junio)
	// never shift forward, even if already past.
	found bool
	// weekdayToday marks a plain weekday word that resolved to today, which
	// may still jump a week forward if the combined instant is past.
	weekdayToday bool
}

// Resolve parses the phrase against ref. The returned instant carries ref's
// location, so the UTC offset is the one in effect at the resolved wall
// clock, not at ref.
func (p *SpanishParser) Resolve(text string, ref time.Time) (time.Time, bool) {
	s := Normalize(text)
	if s == "" {
		return time.Time{}, false
	}

	day, s := extractDay(s, ref)

	hour, minute, ok := extractTime(s)
	if !ok {
		return time.Time{}, false
	}

	loc := ref.Location()
	candidate := time.Date(day.year, day.month, day.day, hour, minute, 0, 0, loc)

	// Forward bias for phrases that only constrain the time of day or a
	// weekday that happens to be today.
	if candidate.Before(ref) {
		if !day.found {
			candidate = candidate.AddDate(0, 0, 1)
		} else if day.weekdayToday {
			candidate = candidate.AddDate(0, 0, 7)
		}
	}

	return candidate, true
}

// extractDay resolves the calendar day named in s and returns s with the
// consumed fragment blanked so its digits cannot be re-read as a time.
func extractDay(s string, ref time.Time) (dayRef, string) {
	refDay := ref

	if m := reExplicitDate.FindStringSubmatchIndex(s); m != nil {
		sub := reExplicitDate.FindStringSubmatch(s)
		dayNum, _ := strconv.Atoi(sub[1])
		month := monthsByName[sub[2]]
		year := refDay.Year()
		explicitYear := sub[3] != ""
		if explicitYear {
			year, _ = strconv.Atoi(sub[3])
		}

		d := dayRef{year: year, month: month, day: dayNum, found: true}
		if !explicitYear && beforeCalendarDay(year, month, dayNum, refDay) {
			d.year++
		}
		return d, s[:m[0]] + s[m[1]:]
	}

	if m := reNumericDate.FindStringSubmatchIndex(s); m != nil {
		sub := reNumericDate.FindStringSubmatch(s)
		dayNum, _ := strconv.Atoi(sub[1])
		monthNum, _ := strconv.Atoi(sub[2])
		if monthNum < 1 || monthNum > 12 || dayNum < 1 || dayNum > 31 {
			return dayRef{}, s
		}
		year := refDay.Year()
		explicitYear := sub[3] != ""
		if explicitYear {
			year, _ = strconv.Atoi(sub[3])
			if year < 100 {
				year += 2000
			}
		}

		d := dayRef{year: year, month: time.Month(monthNum), day: dayNum, found: true}
		if !explicitYear && beforeCalendarDay(year, time.Month(monthNum), dayNum, refDay) {
			d.year++
		}
		return d, s[:m[0]] + s[m[1]:]
	}

	if m := rePasadoManana.FindStringIndex(s); m != nil {
		t := refDay.AddDate(0, 0, 2)
		return dayOf(t), s[:m[0]] + s[m[1]:]
	}

	if m := reMananaDay.FindStringIndex(s); m != nil {
		t := refDay.AddDate(0, 0, 1)
		return dayOf(t), s[:m[0]] + s[m[1]:]
	}

	if m := reHoy.FindStringIndex(s); m != nil {
		return dayOf(refDay), s[:m[0]] + s[m[1]:]
	}

	if m := reWeekdayWord.FindStringSubmatchIndex(s); m != nil {
		sub := reWeekdayWord.FindStringSubmatch(s)
		target := weekdaysByName[sub[2]]
		delta := (int(target) - int(refDay.Weekday()) + 7) % 7
		if delta == 0 && sub[1] == "proximo" {
			delta = 7
		}

		d := dayOf(refDay.AddDate(0, 0, delta))
		d.weekdayToday = delta == 0
		return d, s[:m[0]] + s[m[1]:]
	}

	return dayRef{year: refDay.Year(), month: refDay.Month(), day: refDay.Day()}, s
}

// extractTime pulls the hour and minute out of s. A phrase without an hour
// cannot be booked, so absence is a failed parse. Out-of-range components
// ("a las 25:00") also fail rather than wrapping around.
func extractTime(s string) (hour, minute int, ok bool) {
	var sub []string
	switch {
	case reTimeALas.MatchString(s):
		sub = reTimeALas.FindStringSubmatch(s)
	case reTimeHHMM.MatchString(s):
		sub = reTimeHHMM.FindStringSubmatch(s)
	case reTimeMeridie.MatchString(s):
		m := reTimeMeridie.FindStringSubmatch(s)
		sub = []string{m[0], m[1], "", m[2]}
	default:
		return 0, 0, false
	}

	hour, _ = strconv.Atoi(sub[1])
	if sub[2] != "" {
		minute, _ = strconv.Atoi(sub[2])
	}

	switch sub[3] {
	case "pm":
		if hour < 1 || hour > 12 {
			return 0, 0, false
		}
		if hour < 12 {
			hour += 12
		}
	case "am":
		if hour < 1 || hour > 12 {
			return 0, 0, false
		}
		if hour == 12 {
			hour = 0
		}
	default:
		if hour > 23 {
			return 0, 0, false
		}
	}

	if minute > 59 {
		return 0, 0, false
	}
	return hour, minute, true
}

func dayOf(t time.Time) dayRef {
	return dayRef{year: t.Year(), month: t.Month(), day: t.Day(), found: true}
}

func beforeCalendarDay(year int, month time.Month, day int, ref time.Time) bool {
	if year != ref.Year() {
		return year < ref.Year()
	}
	if month != ref.Month() {
		return month < ref.Month()
	}
	return day < ref.Day()
}
