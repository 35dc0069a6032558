package availability

import (
	"fmt"
	"time"

	domain "github.com/promeza/agenda-api/internal/domain/agenda"
)

var monthsES = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// formatLongES renders "martes 3 de junio a las 4:30 pm" in t's zone, for
// user-facing confirmation and rejection messages.
func formatLongES(t time.Time) string {
	weekday := domain.WeekdayDisplayName(domain.WeekdayOf(t, t.Location()))
	month := monthsES[int(t.Month())-1]

	hour := t.Hour() % 12
	if hour == 0 {
		hour = 12
	}
	meridiem := "am"
	if t.Hour() >= 12 {
		meridiem = "pm"
	}

	return fmt.Sprintf("%s %d de %s a las %d:%02d %s",
		weekday, t.Day(), month, hour, t.Minute(), meridiem)
}

// formatDayES renders "3 de junio".
func formatDayES(t time.Time) string {
	return fmt.Sprintf("%d de %s", t.Day(), monthsES[int(t.Month())-1])
}
