package analysis

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"ccf-analysis/internal/storage"
)

type MockAnalysisStorage struct {
	mock.Mock
}

func (m *MockAnalysisStorage) UniqueCounts(ctx context.Context) (*storage.UniqueCounts, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.UniqueCounts), args.Error(1)
}

func (m *MockAnalysisStorage) SupplierAnalysis(ctx context.Context) ([]*storage.SupplierRollup, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*storage.SupplierRollup), args.Error(1)
}

func (m *MockAnalysisStorage) ShipToAnalysis(ctx context.Context) ([]*storage.ShipToRollup, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*storage.ShipToRollup), args.Error(1)
}

func (m *MockAnalysisStorage) ItemAnalysis(ctx context.Context) ([]*storage.ItemRollup, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*storage.ItemRollup), args.Error(1)
}

func (m *MockAnalysisStorage) DataQuality(ctx context.Context) (*storage.DataQuality, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.DataQuality), args.Error(1)
}

func TestReport_GathersAllRollups(t *testing.T) {
	mockStorage := new(MockAnalysisStorage)

	mockStorage.On("UniqueCounts", mock.Anything).
		Return(&storage.UniqueCounts{TotalRecords: 100, UniqueSuppliers: 5}, nil)
	mockStorage.On("SupplierAnalysis", mock.Anything).
		Return([]*storage.SupplierRollup{{SupplierName: "Cardinal Health"}}, nil)
	mockStorage.On("ShipToAnalysis", mock.Anything).
		Return([]*storage.ShipToRollup{{ShipToName: "DC-North"}, {ShipToName: "DC-South"}}, nil)
	mockStorage.On("ItemAnalysis", mock.Anything).
		Return([]*storage.ItemRollup{{OracleItemNumber: "ITEM-1"}}, nil)
	mockStorage.On("DataQuality", mock.Anything).
		Return(&storage.DataQuality{TotalRecords: 100, CompleteRecords: 90}, nil)

	svc := NewService(mockStorage)

	report, err := svc.Report(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(100), report.UniqueCounts.TotalRecords)
	require.Len(t, report.Suppliers, 1)
	assert.Equal(t, "Cardinal Health", report.Suppliers[0].SupplierName)
	assert.Len(t, report.ShipTos, 2)
	assert.Len(t, report.Items, 1)
	assert.Equal(t, int64(90), report.DataQuality.CompleteRecords)

	mockStorage.AssertExpectations(t)
}

func TestReport_AnyRollupErrorFailsTheReport(t *testing.T) {
	mockStorage := new(MockAnalysisStorage)

	mockStorage.On("UniqueCounts", mock.Anything).
		Return(&storage.UniqueCounts{}, nil).Maybe()
	mockStorage.On("SupplierAnalysis", mock.Anything).
		Return(nil, errors.New("db closed"))
	mockStorage.On("ShipToAnalysis", mock.Anything).
		Return([]*storage.ShipToRollup{}, nil).Maybe()
	mockStorage.On("ItemAnalysis", mock.Anything).
		Return([]*storage.ItemRollup{}, nil).Maybe()
	mockStorage.On("DataQuality", mock.Anything).
		Return(&storage.DataQuality{}, nil).Maybe()

	svc := NewService(mockStorage)

	_, err := svc.Report(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "suppliers")
}
