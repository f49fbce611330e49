package daily

import "time"

// DateKey returns YYYY-MM-DD in UTC.
// This string is both the RNG seed source for the day's secret and the
// rollover trigger: handlers recompute it per request and discard sessions
// whose key no longer matches.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
