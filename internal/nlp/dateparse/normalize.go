package dateparse

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

var (
	reManana    = regexp.MustCompile(`\bde la manana\b`)
	reTarde     = regexp.MustCompile(`\bde la tarde\b`)
	reNoche     = regexp.MustCompile(`\bde la noche\b`)
	reLpm       = regexp.MustCompile(`\blpm\b`)
	reMediodia  = regexp.MustCompile(`\b(al? )?mediodia\b`)
	reMedianoch = regexp.MustCompile(`\b(a )?medianoche\b`)
	reSpaces    = regexp.MustCompile(`\s+`)
)

// Normalize lowercases the phrase, strips accents (mañana -> manana,
// miércoles -> miercoles) and rewrites colloquial time-of-day idioms into
// explicit am/pm markers the parser understands. It also corrects the known
// transcription artifact "lpm" (a mangled "1 pm" from upstream speech/chat
// input).
func Normalize(text string) string {
	s := strings.ToLower(strings.TrimSpace(text))
	if folded, _, err := transform.String(stripAccents, s); err == nil {
		s = folded
	}

	s = reManana.ReplaceAllString(s, "am")
	s = reTarde.ReplaceAllString(s, "pm")
	s = reNoche.ReplaceAllString(s, "pm")
	s = reLpm.ReplaceAllString(s, "1 pm")
	s = reMediodia.ReplaceAllString(s, "a las 12:00")
	s = reMedianoch.ReplaceAllString(s, "a las 0:00")

	return reSpaces.ReplaceAllString(s, " ")
}
