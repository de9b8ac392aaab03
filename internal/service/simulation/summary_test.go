package simulation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ccf-analysis/internal/storage"
)

func TestSummarize_CohortMeansAndStdev(t *testing.T) {
	stats := []storage.LaborStatistic{
		{DayType: storage.DayTypeWeekday, SupportFTE: 10},
		{DayType: storage.DayTypeWeekday, SupportFTE: 20},
		{DayType: storage.DayTypeWeekday, SupportFTE: 30},
		{DayType: storage.DayTypeWeekend, SupportFTE: 4},
	}

	summaries := Summarize(stats)
	require.Len(t, summaries, 2)

	weekday := summaries[0]
	assert.Equal(t, storage.DayTypeWeekday, weekday.DayType)
	assert.Equal(t, int64(3), weekday.Days)
	assert.Equal(t, 20.0, weekday.AvgSupportFTE)
	assert.Equal(t, 20.0, weekday.AvgTotalFTE)
	// Sample stdev of 10, 20, 30.
	assert.Equal(t, 10.0, weekday.StdevTotalFTE)

	weekend := summaries[1]
	assert.Equal(t, storage.DayTypeWeekend, weekend.DayType)
	assert.Equal(t, int64(1), weekend.Days)
	assert.Equal(t, 4.0, weekend.AvgTotalFTE)
	// A single observation has no spread.
	assert.Equal(t, 0.0, weekend.StdevTotalFTE)
}

func TestSummarize_EmptyCohortOmitted(t *testing.T) {
	stats := []storage.LaborStatistic{
		{DayType: storage.DayTypeWeekday, BulkFTE: 1.5},
	}

	summaries := Summarize(stats)
	require.Len(t, summaries, 1)
	assert.Equal(t, storage.DayTypeWeekday, summaries[0].DayType)
}

func TestSummarize_NoStats(t *testing.T) {
	assert.Empty(t, Summarize(nil))
}

func TestSummarize_TotalSumsAllCategories(t *testing.T) {
	stats := []storage.LaborStatistic{
		{
			DayType:       storage.DayTypeWeekday,
			BulkFTE:       1,
			LumFTE:        2,
			ReceiveFTE:    3,
			InventoryFTE:  4,
			SupportFTE:    5,
			RfidFTE:       6,
			SupervisorFTE: 7,
			LeaderFTE:     8,
		},
	}

	summaries := Summarize(stats)
	require.Len(t, summaries, 1)
	assert.Equal(t, 36.0, summaries[0].AvgTotalFTE)
}
