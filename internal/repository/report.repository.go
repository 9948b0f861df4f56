package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"healthrecord/internal/models"
)

type ReportRepository interface {
	Create(ctx context.Context, report *models.Report) error
	ListByUser(ctx context.Context, userID uint) ([]models.Report, error)
	FindOwned(ctx context.Context, reportID, userID uint) (*models.Report, error)
	Delete(ctx context.Context, reportID, userID uint) error
}

type reportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Create(ctx context.Context, report *models.Report) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(report).Error)
}

// ListByUser returns the user's reports, newest first.
func (r *reportRepository) ListByUser(ctx context.Context, userID uint) ([]models.Report, error) {
	reports := []models.Report{}
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&reports).Error
	return reports, translate(err)
}

func (r *reportRepository) FindOwned(ctx context.Context, reportID, userID uint) (*models.Report, error) {
	var report models.Report
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", reportID, userID).
		First(&report).Error
	if err != nil {
		return nil, translate(err)
	}
	return &report, nil
}

func (r *reportRepository) Delete(ctx context.Context, reportID, userID uint) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", reportID, userID).
		Delete(&models.Report{})
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
