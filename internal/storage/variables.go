package storage

// Variables is the productivity parameter set driving a simulation run. The
// ratio fields are independent multipliers against the same daily line count,
// not a partition summing to 100: replenishment, receiving and put-away are
// distinct operational categories layered on top of the pick split. Do not
// "fix" them to sum to 100.
type Variables struct {
	TargetStaffProductivityPerHour float64 `json:"targetStaffProductivityPerHour"`
	LumPicksPerHour                float64 `json:"lumPicksPerHour"`
	BulkPicksPerHour               float64 `json:"bulkPicksPerHour"`
	ReceiptLinesProcessedPerHour   float64 `json:"receiptLinesProcessedPerHour"`
	PutAwayLinesPerHour            float64 `json:"putAwayLinesPerHour"`
	LetDownLinesPerHour            float64 `json:"letDownLinesPerHour"`
	RfidLinesPerHour               float64 `json:"rfidLinesPerHour"`
	RfidLinesPerDay                float64 `json:"rfidLinesPerDay"`

	RatioOfBulkPicksToLumPicks   float64 `json:"ratioOfBulkPicksToLumPicks"`
	RatioOfReceiptLinesToPicks   float64 `json:"ratioOfReceiptLinesToPicks"`
	RatioOfPutLinesToPicks       float64 `json:"ratioOfPutLinesToPicks"`
	RatioOfReplenishLinesToPicks float64 `json:"ratioOfReplenishLinesToPicks"`

	LinesPerSupportResource          float64 `json:"linesPerSupportResource"`
	UtilizationPercentage            float64 `json:"utilizationPercentage"`
	LeadershipAndAdministrationStaff float64 `json:"leadershipAndAdministrationStaff"`
	StaffToSupervisorRatio           float64 `json:"staffToSupervisorRatio"`
	LaborHoursPerDay                 float64 `json:"laborHoursPerDay"`
}

// DefaultVariables are the documented defaults: absent caller input falls back
// here, never to zero.
func DefaultVariables() Variables {
	return Variables{
		TargetStaffProductivityPerHour: 600,
		LumPicksPerHour:                80,
		BulkPicksPerHour:               40,
		ReceiptLinesProcessedPerHour:   15,
		PutAwayLinesPerHour:            20,
		LetDownLinesPerHour:            20,
		RfidLinesPerHour:               60,
		RfidLinesPerDay:                7400,

		RatioOfBulkPicksToLumPicks:   25,
		RatioOfReceiptLinesToPicks:   5,
		RatioOfPutLinesToPicks:       5,
		RatioOfReplenishLinesToPicks: 2,

		LinesPerSupportResource:          1500,
		UtilizationPercentage:            80,
		LeadershipAndAdministrationStaff: 6,
		StaffToSupervisorRatio:           10,
		LaborHoursPerDay:                 8,
	}
}

// VariableOverrides is a partially-populated parameter set as callers send it.
// Apply merges present fields onto a base so the engine always receives a
// fully-populated set.
type VariableOverrides struct {
	TargetStaffProductivityPerHour *float64 `json:"targetStaffProductivityPerHour"`
	LumPicksPerHour                *float64 `json:"lumPicksPerHour"`
	BulkPicksPerHour               *float64 `json:"bulkPicksPerHour"`
	ReceiptLinesProcessedPerHour   *float64 `json:"receiptLinesProcessedPerHour"`
	PutAwayLinesPerHour            *float64 `json:"putAwayLinesPerHour"`
	LetDownLinesPerHour            *float64 `json:"letDownLinesPerHour"`
	RfidLinesPerHour               *float64 `json:"rfidLinesPerHour"`
	RfidLinesPerDay                *float64 `json:"rfidLinesPerDay"`

	RatioOfBulkPicksToLumPicks   *float64 `json:"ratioOfBulkPicksToLumPicks"`
	RatioOfReceiptLinesToPicks   *float64 `json:"ratioOfReceiptLinesToPicks"`
	RatioOfPutLinesToPicks       *float64 `json:"ratioOfPutLinesToPicks"`
	RatioOfReplenishLinesToPicks *float64 `json:"ratioOfReplenishLinesToPicks"`

	LinesPerSupportResource          *float64 `json:"linesPerSupportResource"`
	UtilizationPercentage            *float64 `json:"utilizationPercentage"`
	LeadershipAndAdministrationStaff *float64 `json:"leadershipAndAdministrationStaff"`
	StaffToSupervisorRatio           *float64 `json:"staffToSupervisorRatio"`
	LaborHoursPerDay                 *float64 `json:"laborHoursPerDay"`
}

func (o VariableOverrides) Apply(base Variables) Variables {
	set := func(dst *float64, src *float64) {
		if src != nil {
			*dst = *src
		}
	}

	set(&base.TargetStaffProductivityPerHour, o.TargetStaffProductivityPerHour)
	set(&base.LumPicksPerHour, o.LumPicksPerHour)
	set(&base.BulkPicksPerHour, o.BulkPicksPerHour)
	set(&base.ReceiptLinesProcessedPerHour, o.ReceiptLinesProcessedPerHour)
	set(&base.PutAwayLinesPerHour, o.PutAwayLinesPerHour)
	set(&base.LetDownLinesPerHour, o.LetDownLinesPerHour)
	set(&base.RfidLinesPerHour, o.RfidLinesPerHour)
	set(&base.RfidLinesPerDay, o.RfidLinesPerDay)

	set(&base.RatioOfBulkPicksToLumPicks, o.RatioOfBulkPicksToLumPicks)
	set(&base.RatioOfReceiptLinesToPicks, o.RatioOfReceiptLinesToPicks)
	set(&base.RatioOfPutLinesToPicks, o.RatioOfPutLinesToPicks)
	set(&base.RatioOfReplenishLinesToPicks, o.RatioOfReplenishLinesToPicks)

	set(&base.LinesPerSupportResource, o.LinesPerSupportResource)
	set(&base.UtilizationPercentage, o.UtilizationPercentage)
	set(&base.LeadershipAndAdministrationStaff, o.LeadershipAndAdministrationStaff)
	set(&base.StaffToSupervisorRatio, o.StaffToSupervisorRatio)
	set(&base.LaborHoursPerDay, o.LaborHoursPerDay)

	return base
}
