package ingest

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"ccf-analysis/internal/storage"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDecodeFile_CSVPassesThroughUntouched(t *testing.T) {
	data := []byte("PO_Number,Supplier_Name\nPO-001,Cardinal Health\n")

	tables, err := DecodeFile(testLogger(), "orders.csv", data)
	require.NoError(t, err)
	require.Len(t, tables, 1)

	assert.Equal(t, string(data), tables[storage.TablePurchaseOrders])
}

func TestDecodeFile_UnsupportedExtension(t *testing.T) {
	_, err := DecodeFile(testLogger(), "orders.pdf", []byte("whatever"))
	require.Error(t, err)

	var decodeErr *DecodeError
	require.True(t, errors.As(err, &decodeErr))
	assert.Equal(t, "orders.pdf", decodeErr.File)
}

func TestDecodeFile_Spreadsheet(t *testing.T) {
	f := excelize.NewFile()
	f.SetSheetName("Sheet1", "PO Data")
	require.NoError(t, f.SetSheetRow("PO Data", "A1", &[]interface{}{"PO_Number", "Supplier_Name"}))
	require.NoError(t, f.SetSheetRow("PO Data", "A2", &[]interface{}{"PO-001", "Cardinal Health"}))
	// Blank row in the middle gets dropped.
	require.NoError(t, f.SetSheetRow("PO Data", "A4", &[]interface{}{"PO-002", "ACME Supply"}))

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	f.Close()

	tables, err := DecodeFile(testLogger(), "orders.xlsx", buf.Bytes())
	require.NoError(t, err)
	require.Len(t, tables, 1)

	csv := tables[storage.TablePurchaseOrders]
	assert.Equal(t, "PO_Number,Supplier_Name\nPO-001,Cardinal Health\nPO-002,ACME Supply\n", csv)
}

func TestDecodeFile_CorruptSpreadsheet(t *testing.T) {
	_, err := DecodeFile(testLogger(), "orders.xlsx", []byte("this is not a zip archive"))
	require.Error(t, err)

	var decodeErr *DecodeError
	assert.True(t, errors.As(err, &decodeErr))
}

func TestMapSheetToTable(t *testing.T) {
	tests := []struct {
		sheet string
	}{
		{"Purchase Orders"},
		{"PO_History"},
		{"ccf-analysis data"},
		{"Sheet1"},
		{"random junk"},
	}

	// With a single destination table, every sheet lands on it; the scoring
	// matters once more destinations exist.
	for _, tt := range tests {
		assert.Equal(t, storage.TablePurchaseOrders, mapSheetToTable(tt.sheet), tt.sheet)
	}
}
