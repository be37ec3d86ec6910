package report

import (
	"strings"
	"time"

	"github.com/osa030/playtime/internal/domain/locale"
	"github.com/osa030/playtime/internal/infra/dictionary"
)

const (
	secondsPerMinute = 60
	secondsPerHour   = 60 * secondsPerMinute
	secondsPerDay    = 24 * secondsPerHour
)

// FormatDuration renders d as "1 day 2 hours 3 minutes 4 seconds", rounded to
// the nearest second. Zero-valued units are left out; a duration that rounds
// to zero renders as zero seconds.
func FormatDuration(d time.Duration, f *locale.Formatter, units dictionary.ReportStrings) string {
	total := int(d.Round(time.Second) / time.Second)
	if total <= 0 {
		return f.Count(0, units.Second)
	}

	segments := []struct {
		value    int
		template string
	}{
		{total / secondsPerDay, units.Day},
		{total % secondsPerDay / secondsPerHour, units.Hour},
		{total % secondsPerHour / secondsPerMinute, units.Minute},
		{total % secondsPerMinute, units.Second},
	}

	parts := make([]string, 0, len(segments))
	for _, s := range segments {
		if s.value > 0 {
			parts = append(parts, f.Count(s.value, s.template))
		}
	}
	return strings.Join(parts, " ")
}
