package ingest

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"ccf-analysis/internal/storage"
)

type MockImportStorage struct {
	mock.Mock
}

func (m *MockImportStorage) ImportTable(ctx context.Context, table storage.Table, csvContent string, mode storage.ImportMode) (int64, error) {
	args := m.Called(ctx, table, csvContent, mode)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockImportStorage) RecordCount(ctx context.Context, table storage.Table) (int64, error) {
	args := m.Called(ctx, table)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockImportStorage) ClearTable(ctx context.Context, table storage.Table) error {
	args := m.Called(ctx, table)
	return args.Error(0)
}

func TestImportFiles_FirstReplacesRestAppend(t *testing.T) {
	mockStorage := new(MockImportStorage)

	csvA := "PO_Number,Supplier_Name\nPO-001,Cardinal Health\n"
	csvB := "PO_Number,Supplier_Name\nPO-002,ACME Supply\n"

	mockStorage.On("ImportTable", mock.Anything, storage.TablePurchaseOrders, csvA, storage.ModeReplace).
		Return(int64(1), nil).Once()
	mockStorage.On("RecordCount", mock.Anything, storage.TablePurchaseOrders).
		Return(int64(1), nil).Once()
	mockStorage.On("ImportTable", mock.Anything, storage.TablePurchaseOrders, csvB, storage.ModeAppend).
		Return(int64(1), nil).Once()
	mockStorage.On("RecordCount", mock.Anything, storage.TablePurchaseOrders).
		Return(int64(2), nil).Once()

	svc := NewService(testLogger(), mockStorage)

	results := svc.ImportFiles(context.Background(), []File{
		{Name: "a.csv", Data: []byte(csvA)},
		{Name: "b.csv", Data: []byte(csvB)},
	})

	require.Len(t, results, 2)

	assert.True(t, results[0].Success)
	assert.Equal(t, "a.csv", results[0].FileName)
	assert.Equal(t, "purchase_orders", results[0].TableName)
	assert.Equal(t, int64(1), results[0].RecordsImported)

	assert.True(t, results[1].Success)
	// The table count after the append, not this file's row count.
	assert.Equal(t, int64(2), results[1].RecordsImported)

	mockStorage.AssertExpectations(t)
}

func TestImportFiles_DecodeFailureDoesNotStopBatch(t *testing.T) {
	mockStorage := new(MockImportStorage)

	csvB := "PO_Number,Supplier_Name\nPO-002,ACME Supply\n"
	mockStorage.On("ImportTable", mock.Anything, storage.TablePurchaseOrders, csvB, storage.ModeAppend).
		Return(int64(1), nil)
	mockStorage.On("RecordCount", mock.Anything, storage.TablePurchaseOrders).
		Return(int64(1), nil)

	svc := NewService(testLogger(), mockStorage)

	results := svc.ImportFiles(context.Background(), []File{
		{Name: "bad.pdf", Data: []byte("nope")},
		{Name: "b.csv", Data: []byte(csvB)},
	})

	require.Len(t, results, 2)

	assert.False(t, results[0].Success)
	require.Len(t, results[0].Errors, 1)
	assert.Contains(t, results[0].Errors[0], "bad.pdf")

	// The second file still imported, in Append mode: the failed first file
	// already consumed the Replace slot.
	assert.True(t, results[1].Success)
}

func TestImportFiles_StoreErrorReported(t *testing.T) {
	mockStorage := new(MockImportStorage)

	mockStorage.On("ImportTable", mock.Anything, storage.TablePurchaseOrders, mock.Anything, storage.ModeReplace).
		Return(int64(0), errors.New("no valid columns"))

	svc := NewService(testLogger(), mockStorage)

	results := svc.ImportFiles(context.Background(), []File{
		{Name: "a.csv", Data: []byte("PO_Number\nPO-001\n")},
	})

	require.Len(t, results, 1)
	assert.False(t, results[0].Success)
	assert.Contains(t, results[0].Errors[0], "no valid columns")
}

func TestClearAll(t *testing.T) {
	mockStorage := new(MockImportStorage)
	mockStorage.On("ClearTable", mock.Anything, storage.TablePurchaseOrders).Return(nil)

	svc := NewService(testLogger(), mockStorage)
	require.NoError(t, svc.ClearAll(context.Background()))

	mockStorage.AssertExpectations(t)
}

func TestValidate_DelegatesToValidateFile(t *testing.T) {
	svc := NewService(testLogger(), new(MockImportStorage))

	res := svc.Validate(File{Name: "orders.txt", Size: 3, Data: []byte("abc")})
	assert.False(t, res.Valid)
}
