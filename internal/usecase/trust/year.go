package trust

import (
	"regexp"
	"strconv"

	"github.com/RepertoireLLC/A1x6nd7a-sub000/internal/domain/record"
)

// yearFields are scanned in order for a publication year.
var yearFields = []string{"year", "date", "publicdate", "identifier"}

var fourDigitRun = regexp.MustCompile(`\d{4}`)

// earliestPlausibleYear bounds what counts as a publication year; archive
// material predating movable type is out of scope for this heuristic.
const earliestPlausibleYear = 1000

// earliestYear extracts the earliest plausible 4-digit year from the
// record's date-ish fields. Unparsable values are skipped, never errors.
func earliestYear(rec record.Record, currentYear int) (int, bool) {
	best := 0
	found := false
	for _, field := range yearFields {
		for _, s := range rec.Strings(field) {
			for _, run := range fourDigitRun.FindAllString(s, -1) {
				year, err := strconv.Atoi(run)
				if err != nil {
					continue
				}
				if year < earliestPlausibleYear || year > currentYear {
					continue
				}
				if !found || year < best {
					best = year
					found = true
				}
			}
		}
	}
	return best, found
}
