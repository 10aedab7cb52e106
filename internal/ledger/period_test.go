package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPeriodWindow(t *testing.T) {
	now := time.Date(2024, time.February, 29, 18, 45, 0, 0, time.UTC)

	tests := []struct {
		period Period
		start  time.Time
		end    time.Time
	}{
		{PeriodDaily, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{PeriodMonthly, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{PeriodYearly, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(string(tt.period), func(t *testing.T) {
			w, ok := tt.period.Window(now)
			assert.True(t, ok)
			assert.Equal(t, tt.start, w.Start)
			assert.Equal(t, tt.end, w.End)
			assert.True(t, w.Contains(now))
			assert.False(t, w.Contains(tt.end))
		})
	}
}

func TestUnknownPeriodHasNoWindow(t *testing.T) {
	for _, raw := range []string{"", "weekly", "all", "daily;drop"} {
		p := ParsePeriod(raw)
		assert.False(t, p.Known(), raw)
		_, ok := p.Window(time.Now())
		assert.False(t, ok, raw)
	}
}

func TestParsePeriod(t *testing.T) {
	assert.Equal(t, PeriodMonthly, ParsePeriod("monthly"))
	assert.True(t, ParsePeriod("yearly").Known())
	for _, raw := range []string{"Daily", " daily", "YEARLY", " Monthly "} {
		assert.False(t, ParsePeriod(raw).Known(), raw)
	}
}

func TestDecemberRollsOver(t *testing.T) {
	w, ok := PeriodMonthly.Window(time.Date(2023, time.December, 31, 23, 0, 0, 0, time.UTC))
	assert.True(t, ok)
	assert.Equal(t, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), w.End)
}
