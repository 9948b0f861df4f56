package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"healthrecord/internal/models"
)

type VitalsRepository interface {
	Create(ctx context.Context, vitals *models.Vitals) error
	ListByUser(ctx context.Context, userID uint) ([]models.Vitals, error)
	FindByID(ctx context.Context, id uint) (*models.Vitals, error)
	Delete(ctx context.Context, id uint) error
}

type vitalsRepository struct {
	db *gorm.DB
}

func NewVitalsRepository(db *gorm.DB) VitalsRepository {
	return &vitalsRepository{db: db}
}

func (r *vitalsRepository) Create(ctx context.Context, vitals *models.Vitals) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(vitals).Error)
}

func (r *vitalsRepository) ListByUser(ctx context.Context, userID uint) ([]models.Vitals, error) {
	vitals := []models.Vitals{}
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC").
		Find(&vitals).Error
	return vitals, translate(err)
}

func (r *vitalsRepository) FindByID(ctx context.Context, id uint) (*models.Vitals, error) {
	var vitals models.Vitals
	err := r.db.WithContext(ctx).First(&vitals, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &vitals, nil
}

func (r *vitalsRepository) Delete(ctx context.Context, id uint) error {
	return translate(r.db.WithContext(ctx).Delete(&models.Vitals{}, id).Error)
}
