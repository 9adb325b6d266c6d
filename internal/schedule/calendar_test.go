package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartOfWeek(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"monday stays", "2024-06-03", "2024-06-03"},
		{"wednesday rolls back", "2024-06-05", "2024-06-03"},
		{"sunday rolls back to same week monday", "2024-06-09", "2024-06-03"},
		{"across month boundary", "2024-06-01", "2024-05-27"},
		{"across year boundary", "2025-01-01", "2024-12-30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, err := ParseDate(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, StartOfWeek(in).Format("2006-01-02"))
		})
	}
}

func TestWeekDayStrings(t *testing.T) {
	anchor, err := ParseDate("2024-06-03")
	require.NoError(t, err)

	got := WeekDayStrings(anchor, 5)
	assert.Equal(t, []string{
		"2024-06-03",
		"2024-06-04",
		"2024-06-05",
		"2024-06-06",
		"2024-06-07",
	}, got)
}

func TestWeekDaysGridProperties(t *testing.T) {
	anchor, err := ParseDate("2024-06-03")
	require.NoError(t, err)

	for _, count := range []int{5, 6, 7} {
		days := WeekDays(anchor, count)
		require.Len(t, days, count)
		for i := 1; i < len(days); i++ {
			assert.Equal(t, 24*time.Hour, days[i].Sub(days[i-1]))
		}
	}
}

func TestWeekEnd(t *testing.T) {
	anchor, err := ParseDate("2024-06-03")
	require.NoError(t, err)

	assert.Equal(t, "2024-06-07", WeekEnd(anchor, 5).Format("2006-01-02"))
	assert.Equal(t, "2024-06-09", WeekEnd(anchor, 7).Format("2006-01-02"))
}

func TestParseDateRejectsGarbage(t *testing.T) {
	_, err := ParseDate("03.06.2024")
	assert.Error(t, err)
}
