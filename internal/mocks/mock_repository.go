package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"healthrecord/internal/models"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindAll(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

type MockReportRepository struct {
	mock.Mock
}

func (m *MockReportRepository) Create(ctx context.Context, report *models.Report) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

func (m *MockReportRepository) ListByUser(ctx context.Context, userID uint) ([]models.Report, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Report), args.Error(1)
}

func (m *MockReportRepository) FindOwned(ctx context.Context, reportID, userID uint) (*models.Report, error) {
	args := m.Called(ctx, reportID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Report), args.Error(1)
}

func (m *MockReportRepository) Delete(ctx context.Context, reportID, userID uint) error {
	args := m.Called(ctx, reportID, userID)
	return args.Error(0)
}

type MockVitalsRepository struct {
	mock.Mock
}

func (m *MockVitalsRepository) Create(ctx context.Context, vitals *models.Vitals) error {
	args := m.Called(ctx, vitals)
	return args.Error(0)
}

func (m *MockVitalsRepository) ListByUser(ctx context.Context, userID uint) ([]models.Vitals, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Vitals), args.Error(1)
}

func (m *MockVitalsRepository) FindByID(ctx context.Context, id uint) (*models.Vitals, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Vitals), args.Error(1)
}

func (m *MockVitalsRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
