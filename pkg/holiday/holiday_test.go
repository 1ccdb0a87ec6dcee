package holiday

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const nairobi = "Africa/Nairobi"

func TestCalendar_IsHoliday(t *testing.T) {
	labourDay, err := ParseDate("2025-05-01")
	require.NoError(t, err)
	christmas, err := ParseDate("2025-12-25")
	require.NoError(t, err)

	calendar := NewCalendar([]Holiday{
		{Date: labourDay, Name: "Labour Day", Timezone: nairobi},
		{Date: christmas, Name: "Christmas Day"},
	})

	tests := []struct {
		name     string
		date     time.Time
		timezone string
		want     bool
	}{
		{"zoned holiday for matching timezone", time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC), nairobi, true},
		{"zoned holiday matches case-insensitively", time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC), "africa/nairobi", true},
		{"zoned holiday for other timezone", time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC), "Europe/London", false},
		{"zoned holiday without timezone", time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC), "", false},
		{"global holiday", time.Date(2025, 12, 25, 8, 0, 0, 0, time.UTC), "Europe/London", true},
		{"ordinary day", time.Date(2025, 5, 2, 8, 0, 0, 0, time.UTC), nairobi, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, calendar.IsHoliday(tt.date, tt.timezone))
		})
	}
	assert.Equal(t, 2, calendar.Len())
}

func TestCalendar_Nil(t *testing.T) {
	var calendar *Calendar
	assert.False(t, calendar.IsHoliday(time.Now(), ""))
	assert.Equal(t, 0, calendar.Len())
}

func TestParseDate_Invalid(t *testing.T) {
	_, err := ParseDate("01/05/2025")
	assert.Error(t, err)
}
