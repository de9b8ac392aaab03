package sqlite

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ccf-analysis/internal/storage"
)

const testCSV = `PO_Number,Supplier_Name,PO_Date,PO_Quantity_Ordered
"PO-001","Cardinal Health",2024-01-02,5
"PO-002","Cardinal Health",2024-01-02,7
"PO-003","ACME Supply",2024-01-03,3
`

func TestImportTable_ReplaceThenAppend(t *testing.T) {
	st := newTestStorage(t)
	ctx := context.Background()

	inserted, err := st.ImportTable(ctx, storage.TablePurchaseOrders, testCSV, storage.ModeReplace)
	require.NoError(t, err)
	assert.Equal(t, int64(3), inserted)

	count, err := st.RecordCount(ctx, storage.TablePurchaseOrders)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	inserted, err = st.ImportTable(ctx, storage.TablePurchaseOrders, testCSV, storage.ModeAppend)
	require.NoError(t, err)
	assert.Equal(t, int64(3), inserted)

	count, err = st.RecordCount(ctx, storage.TablePurchaseOrders)
	require.NoError(t, err)
	assert.Equal(t, int64(6), count)

	// Replace again wipes the appended rows and restarts ids from 1.
	_, err = st.ImportTable(ctx, storage.TablePurchaseOrders, testCSV, storage.ModeReplace)
	require.NoError(t, err)

	var minID int64
	require.NoError(t, st.db.QueryRow(`SELECT MIN(id) FROM purchase_orders`).Scan(&minID))
	assert.Equal(t, int64(1), minID)

	count, err = st.RecordCount(ctx, storage.TablePurchaseOrders)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestImportTable_SanitizesValues(t *testing.T) {
	st := newTestStorage(t)
	ctx := context.Background()

	csvContent := `PO_Number,Supplier_Name,Ship_To
"PO-001",null,"  Main DC  "
PO-002,NULL,""
`

	inserted, err := st.ImportTable(ctx, storage.TablePurchaseOrders, csvContent, storage.ModeReplace)
	require.NoError(t, err)
	assert.Equal(t, int64(2), inserted)

	var supplier, shipTo sql.NullString
	err = st.db.QueryRow(`SELECT Supplier_Name, Ship_To FROM purchase_orders WHERE PO_Number = 'PO-001'`).
		Scan(&supplier, &shipTo)
	require.NoError(t, err)

	assert.False(t, supplier.Valid)
	assert.Equal(t, "Main DC", shipTo.String)

	err = st.db.QueryRow(`SELECT Supplier_Name, Ship_To FROM purchase_orders WHERE PO_Number = 'PO-002'`).
		Scan(&supplier, &shipTo)
	require.NoError(t, err)

	assert.False(t, supplier.Valid)
	assert.False(t, shipTo.Valid)
}

func TestImportTable_DropsUnknownColumns(t *testing.T) {
	st := newTestStorage(t)
	ctx := context.Background()

	csvContent := `PO_Number,Totally Made Up,Supplier Name
PO-001,ignored,Cardinal Health
`

	inserted, err := st.ImportTable(ctx, storage.TablePurchaseOrders, csvContent, storage.ModeReplace)
	require.NoError(t, err)
	assert.Equal(t, int64(1), inserted)

	var supplier string
	err = st.db.QueryRow(`SELECT Supplier_Name FROM purchase_orders WHERE PO_Number = 'PO-001'`).Scan(&supplier)
	require.NoError(t, err)
	assert.Equal(t, "Cardinal Health", supplier)
}

func TestImportTable_NoValidColumnsLeavesDataIntact(t *testing.T) {
	st := newTestStorage(t)
	ctx := context.Background()

	_, err := st.ImportTable(ctx, storage.TablePurchaseOrders, testCSV, storage.ModeReplace)
	require.NoError(t, err)

	badCSV := "foo,bar\n1,2\n"
	_, err = st.ImportTable(ctx, storage.TablePurchaseOrders, badCSV, storage.ModeReplace)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no valid columns")

	// The failed replace must not have touched the table.
	count, err := st.RecordCount(ctx, storage.TablePurchaseOrders)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestImportTable_InsertErrorRollsBackAppend(t *testing.T) {
	st := newTestStorage(t)
	ctx := context.Background()

	_, err := st.ImportTable(ctx, storage.TablePurchaseOrders, testCSV, storage.ModeReplace)
	require.NoError(t, err)

	// Force a store-level failure mid-call: with PO_Number unique, the
	// second row of the append collides with an existing one.
	_, err = st.db.Exec(`CREATE UNIQUE INDEX idx_po_number_unique ON purchase_orders(PO_Number)`)
	require.NoError(t, err)

	appendCSV := `PO_Number,Supplier_Name
PO-010,Cardinal Health
PO-002,Cardinal Health
PO-011,Cardinal Health
`

	_, err = st.ImportTable(ctx, storage.TablePurchaseOrders, appendCSV, storage.ModeAppend)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert row 2")

	// The whole call rolled back: the row before the failure is gone too.
	count, err := st.RecordCount(ctx, storage.TablePurchaseOrders)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	var n int64
	require.NoError(t, st.db.QueryRow(`SELECT COUNT(*) FROM purchase_orders WHERE PO_Number = 'PO-010'`).Scan(&n))
	assert.Equal(t, int64(0), n)
}

func TestImportTable_InsertErrorRollsBackReplace(t *testing.T) {
	st := newTestStorage(t)
	ctx := context.Background()

	_, err := st.ImportTable(ctx, storage.TablePurchaseOrders, testCSV, storage.ModeReplace)
	require.NoError(t, err)

	_, err = st.db.Exec(`CREATE UNIQUE INDEX idx_po_number_unique ON purchase_orders(PO_Number)`)
	require.NoError(t, err)

	// The replace batch collides with itself on its last row.
	replaceCSV := `PO_Number,Supplier_Name
PO-020,Cardinal Health
PO-020,Cardinal Health
`

	_, err = st.ImportTable(ctx, storage.TablePurchaseOrders, replaceCSV, storage.ModeReplace)
	require.Error(t, err)

	// The failed replace rolled back its own delete: pre-call rows survive.
	count, err := st.RecordCount(ctx, storage.TablePurchaseOrders)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	var n int64
	require.NoError(t, st.db.QueryRow(`SELECT COUNT(*) FROM purchase_orders WHERE PO_Number = 'PO-001'`).Scan(&n))
	assert.Equal(t, int64(1), n)
}

func TestImportTable_ShortRowsPaddedWithNull(t *testing.T) {
	st := newTestStorage(t)
	ctx := context.Background()

	csvContent := "PO_Number,Supplier_Name,Ship_To\nPO-001,Cardinal Health\n"

	inserted, err := st.ImportTable(ctx, storage.TablePurchaseOrders, csvContent, storage.ModeReplace)
	require.NoError(t, err)
	assert.Equal(t, int64(1), inserted)

	var shipTo sql.NullString
	err = st.db.QueryRow(`SELECT Ship_To FROM purchase_orders WHERE PO_Number = 'PO-001'`).Scan(&shipTo)
	require.NoError(t, err)
	assert.False(t, shipTo.Valid)
}

func TestImportTable_EmptyContent(t *testing.T) {
	st := newTestStorage(t)
	ctx := context.Background()

	_, err := st.ImportTable(ctx, storage.TablePurchaseOrders, "", storage.ModeReplace)
	require.Error(t, err)

	headerOnly := "PO_Number,Supplier_Name\n"
	_, err = st.ImportTable(ctx, storage.TablePurchaseOrders, headerOnly, storage.ModeReplace)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no usable rows")
}

func TestClearTable(t *testing.T) {
	st := newTestStorage(t)
	ctx := context.Background()

	_, err := st.ImportTable(ctx, storage.TablePurchaseOrders, testCSV, storage.ModeReplace)
	require.NoError(t, err)

	require.NoError(t, st.ClearTable(ctx, storage.TablePurchaseOrders))

	count, err := st.RecordCount(ctx, storage.TablePurchaseOrders)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}
