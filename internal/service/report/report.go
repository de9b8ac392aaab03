package report

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"ccf-analysis/internal/storage"
)

type ReportStorage interface {
	LaborStatistics(ctx context.Context) ([]*storage.LaborStatistic, error)
	LaborSummaries(ctx context.Context) ([]*storage.LaborSummary, error)
}

type ReportService struct {
	storage ReportStorage
}

func NewReportService(storage ReportStorage) *ReportService {
	return &ReportService{storage: storage}
}

var dailyHeaders = []string{
	"Date", "Day", "Day Type", "Transaction Lines", "Quantity Picked",
	"Bulk Points", "LUM Points", "Replenish Points", "Receive Points", "Put Away Points",
	"Bulk FTE", "LUM FTE", "Receive FTE", "Inventory FTE", "Support FTE",
	"RFID FTE", "Supervisor FTE", "Leader FTE", "Total FTE",
}

var summaryHeaders = []string{
	"Cohort", "Days", "Avg Bulk FTE", "Avg LUM FTE", "Avg Receive FTE",
	"Avg Inventory FTE", "Avg Support FTE", "Avg RFID FTE", "Avg Supervisor FTE",
	"Avg Leader FTE", "Avg Total FTE", "Stdev Total FTE",
}

// GenerateExcel renders the daily labor statistics and the cohort summary
// into a two-sheet workbook and returns the serialized bytes.
func (g *ReportService) GenerateExcel(ctx context.Context) ([]byte, error) {
	const op = "service.report.GenerateExcel"

	stats, err := g.storage.LaborStatistics(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: fetch statistics: %w", op, err)
	}
	summaries, err := g.storage.LaborSummaries(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: fetch summaries: %w", op, err)
	}

	f := excelize.NewFile()
	defer f.Close()

	dailySheet := "Daily Statistics"
	f.SetSheetName("Sheet1", dailySheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"E0E0E0"}, Pattern: 1},
		Border: []excelize.Border{{Type: "bottom", Color: "000000", Style: 2}},
	})

	for i, name := range dailyHeaders {
		f.SetCellValue(dailySheet, cellName(i+1, 1), name)
	}
	f.SetCellStyle(dailySheet, "A1", cellName(len(dailyHeaders), 1), headerStyle)

	for rowIdx, st := range stats {
		rowNum := rowIdx + 2
		f.SetCellValue(dailySheet, cellName(1, rowNum), st.Date)
		f.SetCellValue(dailySheet, cellName(2, rowNum), st.DayOfWeek)
		f.SetCellValue(dailySheet, cellName(3, rowNum), st.DayType)
		f.SetCellValue(dailySheet, cellName(4, rowNum), st.TransactionLines)
		f.SetCellValue(dailySheet, cellName(5, rowNum), st.QuantityPicked)
		f.SetCellValue(dailySheet, cellName(6, rowNum), st.BulkPoints)
		f.SetCellValue(dailySheet, cellName(7, rowNum), st.LumPoints)
		f.SetCellValue(dailySheet, cellName(8, rowNum), st.ReplenPoints)
		f.SetCellValue(dailySheet, cellName(9, rowNum), st.ReceivePoints)
		f.SetCellValue(dailySheet, cellName(10, rowNum), st.PutPoints)
		f.SetCellValue(dailySheet, cellName(11, rowNum), st.BulkFTE)
		f.SetCellValue(dailySheet, cellName(12, rowNum), st.LumFTE)
		f.SetCellValue(dailySheet, cellName(13, rowNum), st.ReceiveFTE)
		f.SetCellValue(dailySheet, cellName(14, rowNum), st.InventoryFTE)
		f.SetCellValue(dailySheet, cellName(15, rowNum), st.SupportFTE)
		f.SetCellValue(dailySheet, cellName(16, rowNum), st.RfidFTE)
		f.SetCellValue(dailySheet, cellName(17, rowNum), st.SupervisorFTE)
		f.SetCellValue(dailySheet, cellName(18, rowNum), st.LeaderFTE)
		f.SetCellValue(dailySheet, cellName(19, rowNum), st.TotalFTE())
	}

	f.SetPanes(dailySheet, &excelize.Panes{
		Freeze:      true,
		XSplit:      0,
		YSplit:      1,
		TopLeftCell: "A2",
	})
	f.SetColWidth(dailySheet, "A", "S", 15)

	summarySheet := "Summary"
	f.NewSheet(summarySheet)
	for i, name := range summaryHeaders {
		f.SetCellValue(summarySheet, cellName(i+1, 1), name)
	}
	f.SetCellStyle(summarySheet, "A1", cellName(len(summaryHeaders), 1), headerStyle)

	for rowIdx, sm := range summaries {
		rowNum := rowIdx + 2
		f.SetCellValue(summarySheet, cellName(1, rowNum), sm.DayType)
		f.SetCellValue(summarySheet, cellName(2, rowNum), sm.Days)
		f.SetCellValue(summarySheet, cellName(3, rowNum), sm.AvgBulkFTE)
		f.SetCellValue(summarySheet, cellName(4, rowNum), sm.AvgLumFTE)
		f.SetCellValue(summarySheet, cellName(5, rowNum), sm.AvgReceiveFTE)
		f.SetCellValue(summarySheet, cellName(6, rowNum), sm.AvgInventoryFTE)
		f.SetCellValue(summarySheet, cellName(7, rowNum), sm.AvgSupportFTE)
		f.SetCellValue(summarySheet, cellName(8, rowNum), sm.AvgRfidFTE)
		f.SetCellValue(summarySheet, cellName(9, rowNum), sm.AvgSupervisorFTE)
		f.SetCellValue(summarySheet, cellName(10, rowNum), sm.AvgLeaderFTE)
		f.SetCellValue(summarySheet, cellName(11, rowNum), sm.AvgTotalFTE)
		f.SetCellValue(summarySheet, cellName(12, rowNum), sm.StdevTotalFTE)
	}
	f.SetColWidth(summarySheet, "A", "L", 18)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return buf.Bytes(), nil
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
