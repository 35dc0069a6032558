package agenda

import (
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/promeza/agenda-api/internal/models"
)

var weekdayByGoDay = map[time.Weekday]models.Weekday{
	time.Monday:    models.WeekdayLunes,
	time.Tuesday:   models.WeekdayMartes,
	time.Wednesday: models.WeekdayMiercoles,
	time.Thursday:  models.WeekdayJueves,
	time.Friday:    models.WeekdayViernes,
	time.Saturday:  models.WeekdaySabado,
	time.Sunday:    models.WeekdayDomingo,
}

var weekdayDisplay = map[models.Weekday]string{
	models.WeekdayLunes:     "lunes",
	models.WeekdayMartes:    "martes",
	models.WeekdayMiercoles: "miércoles",
	models.WeekdayJueves:    "jueves",
	models.WeekdayViernes:   "viernes",
	models.WeekdaySabado:    "sábado",
	models.WeekdayDomingo:   "domingo",
}

var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeWeekday folds any stored or user-provided day name onto the
// canonical enum: accents stripped, upper-cased ("Miércoles" -> MIERCOLES).
func NormalizeWeekday(name string) models.Weekday {
	folded, _, err := transform.String(stripAccents, name)
	if err != nil {
		folded = name
	}
	return models.Weekday(strings.ToUpper(strings.TrimSpace(folded)))
}

// WeekdayOf resolves the weekday enum for an instant in the given zone.
func WeekdayOf(t time.Time, loc *time.Location) models.Weekday {
	return weekdayByGoDay[t.In(loc).Weekday()]
}

// WeekdayDisplayName returns the lowercase Spanish name with accents, for
// user-facing messages.
func WeekdayDisplayName(d models.Weekday) string {
	if name, ok := weekdayDisplay[d]; ok {
		return name
	}
	return strings.ToLower(string(d))
}
