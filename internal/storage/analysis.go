package storage

// DateRange is the span of PO dates seen for one rollup group. Dates are the
// stored string values; Days is the inclusive span, never less than one.
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Days  int    `json:"days"`
}

type UniqueCounts struct {
	UniqueEntities  int64 `json:"uniqueEntities"`
	UniqueSuppliers int64 `json:"uniqueSuppliers"`
	UniqueItems     int64 `json:"uniqueItems"`
	UniquePONumbers int64 `json:"uniquePONumbers"`
	UniqueUNSPSC    int64 `json:"uniqueUNSPSC"`
	TotalRecords    int64 `json:"totalRecords"`
}

type SupplierRollup struct {
	SupplierName      string    `json:"supplierName"`
	UniqueItemCount   int64     `json:"uniqueItemCount"`
	TotalRecordCount  int64     `json:"totalRecordCount"`
	AverageDailyValue float64   `json:"averageDailyValue"`
	DistinctDays      int64     `json:"distinctDays"`
	DateRange         DateRange `json:"dateRange"`
}

type ShipToRollup struct {
	ShipToName        string    `json:"shipToName"`
	UniqueItemCount   int64     `json:"uniqueItemCount"`
	TotalRecordCount  int64     `json:"totalRecordCount"`
	AverageDailyValue float64   `json:"averageDailyValue"`
	DistinctDays      int64     `json:"distinctDays"`
	DateRange         DateRange `json:"dateRange"`
}

type ItemRollup struct {
	OracleItemNumber  string    `json:"oracleItemNumber"`
	ItemDescription   string    `json:"itemDescription"`
	TotalRecordCount  int64     `json:"totalRecordCount"`
	AverageDailyValue float64   `json:"averageDailyValue"`
	DistinctDays      int64     `json:"distinctDays"`
	DateRange         DateRange `json:"dateRange"`
	Suppliers         []string  `json:"suppliers"`
	ShipToLocations   []string  `json:"shipToLocations"`
}

type DataQuality struct {
	TotalRecords         int64              `json:"totalRecords"`
	IncompleteRecords    int64              `json:"incompleteRecords"`
	CompleteRecords      int64              `json:"completeRecords"`
	IncompletePercentage float64            `json:"incompletePercentage"`
	FieldCompleteness    map[string]float64 `json:"fieldCompleteness"`
}

// ShipToDetail is one destination location under a Ship_To, for the detail
// view behind the ship-to rollup.
type ShipToDetail struct {
	DestinationLocationName string  `json:"destinationLocationName"`
	RecordCount             int64   `json:"recordCount"`
	UniqueItemCount         int64   `json:"uniqueItemCount"`
	StartDate               string  `json:"startDate"`
	EndDate                 string  `json:"endDate"`
	AverageDailyValue       float64 `json:"averageDailyValue"`
}

// AnalysisReport bundles the four read-only rollups the reporting UI shows.
type AnalysisReport struct {
	UniqueCounts UniqueCounts     `json:"uniqueCounts"`
	Suppliers    []SupplierRollup `json:"suppliers"`
	ShipTos      []ShipToRollup   `json:"shipTos"`
	Items        []ItemRollup     `json:"items"`
	DataQuality  DataQuality      `json:"dataQuality"`
}

type DatabaseStats struct {
	TotalRecords int64            `json:"totalRecords"`
	TableCounts  map[string]int64 `json:"tableCounts"`
	DatabaseSize string           `json:"databaseSize"`
	LastUpdated  string           `json:"lastUpdated"`
}
