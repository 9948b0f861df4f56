package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"healthrecord/internal/analyzer"
	"healthrecord/internal/models"
	"healthrecord/internal/storage"
)

type MockObjectStore struct {
	mock.Mock
}

func (m *MockObjectStore) Put(ctx context.Context, data []byte, opts storage.PutOptions) (*storage.Object, error) {
	args := m.Called(ctx, data, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.Object), args.Error(1)
}

func (m *MockObjectStore) Delete(ctx context.Context, handle string) error {
	args := m.Called(ctx, handle)
	return args.Error(0)
}

type MockAnalyzer struct {
	mock.Mock
}

func (m *MockAnalyzer) Analyze(ctx context.Context, data []byte, mimeType string) (*analyzer.Result, error) {
	args := m.Called(ctx, data, mimeType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*analyzer.Result), args.Error(1)
}

type MockReportCache struct {
	mock.Mock
}

func (m *MockReportCache) GetReports(ctx context.Context, userID uint) ([]models.Report, bool, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).([]models.Report), args.Bool(1), args.Error(2)
}

func (m *MockReportCache) Version(ctx context.Context, userID uint) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReportCache) SetReports(ctx context.Context, userID uint, version int64, reports []models.Report) (bool, error) {
	args := m.Called(ctx, userID, version, reports)
	return args.Bool(0), args.Error(1)
}

func (m *MockReportCache) Invalidate(ctx context.Context, userID uint) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}
