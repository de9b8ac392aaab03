package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"strings"

	"ccf-analysis/internal/storage"
)

// distinctDates is the number of distinct non-empty PO dates in the whole
// dataset, the denominator every average-daily-value shares.
func (s *Storage) distinctDates(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(DISTINCT PO_Date)
		FROM purchase_orders
		WHERE PO_Date IS NOT NULL AND PO_Date != ''
	`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count distinct dates: %w", err)
	}
	return n, nil
}

func (s *Storage) UniqueCounts(ctx context.Context) (*storage.UniqueCounts, error) {
	const op = "storage.sqlite.UniqueCounts"

	counts := &storage.UniqueCounts{}

	queries := []struct {
		column string
		dst    *int64
	}{
		{"Entity", &counts.UniqueEntities},
		{"Supplier_Name", &counts.UniqueSuppliers},
		{"Oracle_Item_Number", &counts.UniqueItems},
		{"PO_Number", &counts.UniquePONumbers},
		{"UNSPSC_Code", &counts.UniqueUNSPSC},
	}

	for _, q := range queries {
		stmt := fmt.Sprintf(`SELECT COUNT(DISTINCT %s) FROM purchase_orders WHERE %s IS NOT NULL`, q.column, q.column)
		if err := s.db.QueryRowContext(ctx, stmt).Scan(q.dst); err != nil {
			return nil, fmt.Errorf("%s: %s: %w", op, q.column, err)
		}
	}

	total, err := s.RecordCount(ctx, storage.TablePurchaseOrders)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	counts.TotalRecords = total

	return counts, nil
}

func (s *Storage) SupplierAnalysis(ctx context.Context) ([]*storage.SupplierRollup, error) {
	const op = "storage.sqlite.SupplierAnalysis"

	distinct, err := s.distinctDates(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	stmt := `
		SELECT
			Supplier_Name,
			COUNT(DISTINCT Oracle_Item_Number) AS uniqueItemCount,
			COUNT(*) AS totalRecordCount,
			MIN(PO_Date) AS startDate,
			MAX(PO_Date) AS endDate
		FROM purchase_orders
		WHERE Supplier_Name IS NOT NULL AND Supplier_Name != ''
		  AND PO_Date IS NOT NULL AND PO_Date != ''
		GROUP BY Supplier_Name
		ORDER BY uniqueItemCount DESC
	`

	rows, err := s.db.QueryContext(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var result []*storage.SupplierRollup
	for rows.Next() {
		var r storage.SupplierRollup
		var start, end string

		if err := rows.Scan(&r.SupplierName, &r.UniqueItemCount, &r.TotalRecordCount, &start, &end); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}

		r.AverageDailyValue = averageDaily(r.TotalRecordCount, distinct)
		r.DistinctDays = distinct
		r.DateRange = dateRange(start, end)

		result = append(result, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}

	return result, nil
}

func (s *Storage) ShipToAnalysis(ctx context.Context) ([]*storage.ShipToRollup, error) {
	const op = "storage.sqlite.ShipToAnalysis"

	distinct, err := s.distinctDates(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	stmt := `
		SELECT
			Ship_To,
			COUNT(DISTINCT Oracle_Item_Number) AS uniqueItemCount,
			COUNT(*) AS totalRecordCount,
			MIN(PO_Date) AS startDate,
			MAX(PO_Date) AS endDate
		FROM purchase_orders
		WHERE Ship_To IS NOT NULL AND Ship_To != ''
		  AND PO_Date IS NOT NULL AND PO_Date != ''
		GROUP BY Ship_To
		ORDER BY uniqueItemCount DESC
	`

	rows, err := s.db.QueryContext(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var result []*storage.ShipToRollup
	for rows.Next() {
		var r storage.ShipToRollup
		var start, end string

		if err := rows.Scan(&r.ShipToName, &r.UniqueItemCount, &r.TotalRecordCount, &start, &end); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}

		r.AverageDailyValue = averageDaily(r.TotalRecordCount, distinct)
		r.DistinctDays = distinct
		r.DateRange = dateRange(start, end)

		result = append(result, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}

	return result, nil
}

func (s *Storage) ItemAnalysis(ctx context.Context) ([]*storage.ItemRollup, error) {
	const op = "storage.sqlite.ItemAnalysis"

	distinct, err := s.distinctDates(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	stmt := `
		SELECT
			Oracle_Item_Number,
			Item_Description,
			COUNT(*) AS totalRecordCount,
			MIN(PO_Date) AS startDate,
			MAX(PO_Date) AS endDate,
			GROUP_CONCAT(DISTINCT Supplier_Name) AS suppliers,
			GROUP_CONCAT(DISTINCT Ship_To) AS shipToLocations
		FROM purchase_orders
		WHERE Oracle_Item_Number IS NOT NULL AND Oracle_Item_Number != ''
		  AND Item_Description IS NOT NULL AND Item_Description != ''
		  AND PO_Date IS NOT NULL AND PO_Date != ''
		GROUP BY Oracle_Item_Number, Item_Description
		ORDER BY totalRecordCount DESC
	`

	rows, err := s.db.QueryContext(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var result []*storage.ItemRollup
	for rows.Next() {
		var r storage.ItemRollup
		var start, end string
		var suppliers, shipTos sql.NullString

		if err := rows.Scan(&r.OracleItemNumber, &r.ItemDescription, &r.TotalRecordCount, &start, &end, &suppliers, &shipTos); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}

		r.AverageDailyValue = averageDaily(r.TotalRecordCount, distinct)
		r.DistinctDays = distinct
		r.DateRange = dateRange(start, end)
		r.Suppliers = splitConcat(suppliers)
		r.ShipToLocations = splitConcat(shipTos)

		result = append(result, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}

	return result, nil
}

// keyFields are the columns data-quality completeness is measured over; the
// first four also define an incomplete record.
var keyFields = []string{
	"Entity", "Supplier_Name", "Oracle_Item_Number", "PO_Number",
	"Ship_To", "Item_Description", "PO_Quantity_Ordered",
}

func (s *Storage) DataQuality(ctx context.Context) (*storage.DataQuality, error) {
	const op = "storage.sqlite.DataQuality"

	total, err := s.RecordCount(ctx, storage.TablePurchaseOrders)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var incomplete int64
	err = s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM purchase_orders
		WHERE Entity IS NULL OR Entity = ''
		   OR Supplier_Name IS NULL OR Supplier_Name = ''
		   OR Oracle_Item_Number IS NULL OR Oracle_Item_Number = ''
		   OR PO_Number IS NULL OR PO_Number = ''
	`).Scan(&incomplete)
	if err != nil {
		return nil, fmt.Errorf("%s: incomplete count: %w", op, err)
	}

	completeness := make(map[string]float64, len(keyFields))
	for _, field := range keyFields {
		stmt := fmt.Sprintf(`SELECT COUNT(*) FROM purchase_orders WHERE %s IS NOT NULL AND %s != ''`, field, field)

		var n int64
		if err := s.db.QueryRowContext(ctx, stmt).Scan(&n); err != nil {
			return nil, fmt.Errorf("%s: completeness %s: %w", op, field, err)
		}

		if total > 0 {
			completeness[field] = float64(n) / float64(total) * 100
		} else {
			completeness[field] = 0
		}
	}

	q := &storage.DataQuality{
		TotalRecords:      total,
		IncompleteRecords: incomplete,
		CompleteRecords:   total - incomplete,
		FieldCompleteness: completeness,
	}
	if total > 0 {
		q.IncompletePercentage = round2(float64(incomplete) / float64(total) * 100)
	}

	return q, nil
}

// ShipToDetails breaks one Ship_To location down by destination location.
func (s *Storage) ShipToDetails(ctx context.Context, shipTo string) ([]*storage.ShipToDetail, error) {
	const op = "storage.sqlite.ShipToDetails"

	distinct, err := s.distinctDates(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	stmt := `
		SELECT
			Destination_Location_Name,
			COUNT(*) AS recordCount,
			COUNT(DISTINCT Oracle_Item_Number) AS uniqueItemCount,
			MIN(PO_Date) AS startDate,
			MAX(PO_Date) AS endDate
		FROM purchase_orders
		WHERE Ship_To = ?
		  AND Destination_Location_Name IS NOT NULL AND Destination_Location_Name != ''
		  AND PO_Date IS NOT NULL AND PO_Date != ''
		GROUP BY Destination_Location_Name
		ORDER BY recordCount DESC
	`

	rows, err := s.db.QueryContext(ctx, stmt, shipTo)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var result []*storage.ShipToDetail
	for rows.Next() {
		var d storage.ShipToDetail

		if err := rows.Scan(&d.DestinationLocationName, &d.RecordCount, &d.UniqueItemCount, &d.StartDate, &d.EndDate); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}

		d.AverageDailyValue = averageDaily(d.RecordCount, distinct)
		result = append(result, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}

	return result, nil
}

// TruncateRetention deletes every order whose supplier name is missing or does
// not start with the retention prefix. Returns deleted and remaining counts.
func (s *Storage) TruncateRetention(ctx context.Context, supplierPrefix string) (deleted, remaining int64, err error) {
	const op = "storage.sqlite.TruncateRetention"

	res, err := s.db.ExecContext(ctx, `
		DELETE FROM purchase_orders
		WHERE Supplier_Name IS NULL OR Supplier_Name = '' OR Supplier_Name NOT LIKE ?
	`, supplierPrefix+"%")
	if err != nil {
		return 0, 0, fmt.Errorf("%s: %w", op, err)
	}

	deleted, err = res.RowsAffected()
	if err != nil {
		return 0, 0, fmt.Errorf("%s: %w", op, err)
	}

	remaining, err = s.RecordCount(ctx, storage.TablePurchaseOrders)
	if err != nil {
		return 0, 0, fmt.Errorf("%s: %w", op, err)
	}

	return deleted, remaining, nil
}

func averageDaily(records, distinctDates int64) float64 {
	if distinctDates == 0 {
		return 0
	}
	return round2(float64(records) / float64(distinctDates))
}

func dateRange(start, end string) storage.DateRange {
	r := storage.DateRange{Start: start, End: end, Days: 1}

	s, okS := storage.ParseDay(start)
	e, okE := storage.ParseDay(end)
	if okS && okE {
		days := int(math.Ceil(e.Sub(s).Hours() / 24))
		if days > r.Days {
			r.Days = days
		}
	}

	return r
}

func splitConcat(v sql.NullString) []string {
	if !v.Valid || v.String == "" {
		return []string{}
	}
	return strings.Split(v.String, ",")
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
