package daily_test

import (
	"testing"
	"time"

	"github.com/mathle/go-server/internal/daily"
)

func TestDateKeyUTC(t *testing.T) {
	// 23:30 in UTC-5 is already the next day in UTC.
	loc := time.FixedZone("UTC-5", -5*60*60)
	at := time.Date(2024, 1, 1, 23, 30, 0, 0, loc)
	if got := daily.DateKey(at); got != "2024-01-02" {
		t.Errorf("DateKey = %q, want 2024-01-02", got)
	}
}

func TestDateKeyFormat(t *testing.T) {
	at := time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC)
	if got := daily.DateKey(at); got != "2024-03-07" {
		t.Errorf("DateKey = %q, want zero-padded 2024-03-07", got)
	}
}
