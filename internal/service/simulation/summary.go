package simulation

import (
	"math"

	"ccf-analysis/internal/storage"
)

// Summarize partitions daily statistics into the Weekday and Weekend cohorts
// by their stored day-type label and computes each cohort's means and the
// sample standard deviation of total FTE. A cohort with no days produces no
// summary row.
func Summarize(stats []storage.LaborStatistic) []storage.LaborSummary {
	var summaries []storage.LaborSummary

	for _, dayType := range []string{storage.DayTypeWeekday, storage.DayTypeWeekend} {
		var cohort []storage.LaborStatistic
		for _, st := range stats {
			if st.DayType == dayType {
				cohort = append(cohort, st)
			}
		}

		if len(cohort) == 0 {
			continue
		}

		summaries = append(summaries, summarizeCohort(dayType, cohort))
	}

	return summaries
}

func summarizeCohort(dayType string, cohort []storage.LaborStatistic) storage.LaborSummary {
	n := float64(len(cohort))

	sum := storage.LaborSummary{
		DayType: dayType,
		Days:    int64(len(cohort)),
	}

	var totalSum float64
	totals := make([]float64, 0, len(cohort))
	for _, st := range cohort {
		sum.AvgBulkFTE += st.BulkFTE
		sum.AvgLumFTE += st.LumFTE
		sum.AvgReceiveFTE += st.ReceiveFTE
		sum.AvgInventoryFTE += st.InventoryFTE
		sum.AvgSupportFTE += st.SupportFTE
		sum.AvgRfidFTE += st.RfidFTE
		sum.AvgSupervisorFTE += st.SupervisorFTE
		sum.AvgLeaderFTE += st.LeaderFTE

		total := st.TotalFTE()
		totals = append(totals, total)
		totalSum += total
	}

	sum.AvgBulkFTE = round2(sum.AvgBulkFTE / n)
	sum.AvgLumFTE = round2(sum.AvgLumFTE / n)
	sum.AvgReceiveFTE = round2(sum.AvgReceiveFTE / n)
	sum.AvgInventoryFTE = round2(sum.AvgInventoryFTE / n)
	sum.AvgSupportFTE = round2(sum.AvgSupportFTE / n)
	sum.AvgRfidFTE = round2(sum.AvgRfidFTE / n)
	sum.AvgSupervisorFTE = round2(sum.AvgSupervisorFTE / n)
	sum.AvgLeaderFTE = round2(sum.AvgLeaderFTE / n)

	mean := totalSum / n
	sum.AvgTotalFTE = round2(mean)
	sum.StdevTotalFTE = round2(sampleStdev(totals, mean))

	return sum
}

// sampleStdev divides the summed squared deviations by n-1, defined as zero
// for a single observation.
func sampleStdev(values []float64, mean float64) float64 {
	if len(values) <= 1 {
		return 0
	}

	var sq float64
	for _, v := range values {
		d := v - mean
		sq += d * d
	}

	return math.Sqrt(sq / float64(len(values)-1))
}

func round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return math.Round(v*100) / 100
}
