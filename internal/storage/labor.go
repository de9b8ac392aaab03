package storage

// DailyVolume is one distinct order date collapsed to its transaction-line
// count and summed picked quantity. Produced by the daily aggregator, consumed
// by the simulation engine.
type DailyVolume struct {
	Date             string `json:"date"`
	TransactionLines int64  `json:"transaction_lines"`
	QuantityPicked   int64  `json:"quantity_picked"`
	// CoercedQuantityRows counts rows whose quantity fell back to zero
	// because it was missing or non-numeric.
	CoercedQuantityRows int64 `json:"coerced_quantity_rows,omitempty"`
}

const (
	DayTypeWeekday = "Weekday"
	DayTypeWeekend = "Weekend"
)

// LaborStatistic is one simulated day: raw volumes, category points and the
// FTE staffing estimates derived from them.
type LaborStatistic struct {
	Date             string `json:"date"`
	DayOfWeek        string `json:"day_of_week"`
	DayType          string `json:"day_type"`
	TransactionLines int64  `json:"transaction_lines"`
	QuantityPicked   int64  `json:"quantity_picked"`

	BulkPoints    float64 `json:"bulk_points"`
	LumPoints     float64 `json:"lum_points"`
	ReplenPoints  float64 `json:"replen_points"`
	ReceivePoints float64 `json:"receive_points"`
	PutPoints     float64 `json:"put_points"`

	BulkFTE       float64 `json:"bulkFTE"`
	LumFTE        float64 `json:"lumFTE"`
	ReceiveFTE    float64 `json:"receiveFTE"`
	InventoryFTE  float64 `json:"inventoryFTE"`
	SupportFTE    float64 `json:"supportFTE"`
	RfidFTE       float64 `json:"rfidFTE"`
	SupervisorFTE float64 `json:"supervisorFTE"`
	LeaderFTE     float64 `json:"leaderFTE"`
}

// TotalFTE is the staff total plus supervision and leadership, the quantity
// the cohort summary is computed over.
func (s LaborStatistic) TotalFTE() float64 {
	return s.BulkFTE + s.LumFTE + s.ReceiveFTE + s.InventoryFTE +
		s.SupportFTE + s.RfidFTE + s.SupervisorFTE + s.LeaderFTE
}

// LaborSummary is the per-cohort aggregate over labor statistics: one row for
// Weekday, one for Weekend. Regenerated wholesale after every simulation run.
type LaborSummary struct {
	DayType string `json:"day_type"`
	Days    int64  `json:"days"`

	AvgBulkFTE       float64 `json:"avg_bulkFTE"`
	AvgLumFTE        float64 `json:"avg_lumFTE"`
	AvgReceiveFTE    float64 `json:"avg_receiveFTE"`
	AvgInventoryFTE  float64 `json:"avg_inventoryFTE"`
	AvgSupportFTE    float64 `json:"avg_supportFTE"`
	AvgRfidFTE       float64 `json:"avg_rfidFTE"`
	AvgSupervisorFTE float64 `json:"avg_supervisorFTE"`
	AvgLeaderFTE     float64 `json:"avg_leaderFTE"`

	AvgTotalFTE   float64 `json:"avg_totalFTE"`
	StdevTotalFTE float64 `json:"stdev_totalFTE"`
}

// VolumeSummary aggregates the labor statistics table for the transaction
// volumes view.
type VolumeSummary struct {
	TotalDays              int64   `json:"totalDays"`
	TotalTransactionLines  int64   `json:"totalTransactionLines"`
	TotalQuantityPicked    int64   `json:"totalQuantityPicked"`
	StartDate              string  `json:"startDate"`
	EndDate                string  `json:"endDate"`
	AverageLinesPerDay     float64 `json:"averageLinesPerDay"`
	AverageLinesPerWeekday float64 `json:"averageLinesPerWeekday"`
	AverageLinesPerWeekend float64 `json:"averageLinesPerWeekend"`

	DayOfWeekAverages map[string]float64 `json:"dayOfWeekAverages"`
}
