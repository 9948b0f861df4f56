package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"healthrecord/internal/apperrors"
	"healthrecord/internal/models"
	"healthrecord/internal/repository"
)

type VitalsInput struct {
	BP     string     `json:"bp" example:"120/80"`
	Sugar  string     `json:"sugar" example:"95"`
	Weight string     `json:"weight" example:"72"`
	Note   string     `json:"note" example:"after breakfast"`
	Date   *time.Time `json:"date,omitempty" example:"2024-01-01T08:00:00Z"`
}

type VitalsService struct {
	vitals repository.VitalsRepository
	now    func() time.Time
}

func NewVitalsService(vitals repository.VitalsRepository) *VitalsService {
	return &VitalsService{vitals: vitals, now: time.Now}
}

func (s *VitalsService) Add(ctx context.Context, userID uint, in VitalsInput) (*models.Vitals, error) {
	bp, sugar, weight := strings.TrimSpace(in.BP), strings.TrimSpace(in.Sugar), strings.TrimSpace(in.Weight)
	if bp == "" && sugar == "" && weight == "" {
		return nil, apperrors.Validation("At least one vital is required")
	}

	date := s.now()
	if in.Date != nil && !in.Date.IsZero() {
		date = *in.Date
	}

	vitals := &models.Vitals{
		UserID: userID,
		BP:     bp,
		Sugar:  sugar,
		Weight: weight,
		Note:   in.Note,
		Date:   date,
	}
	if err := s.vitals.Create(ctx, vitals); err != nil {
		return nil, apperrors.Persistence("Server error while adding vitals", err)
	}
	return vitals, nil
}

func (s *VitalsService) List(ctx context.Context, userID uint) ([]models.Vitals, error) {
	vitals, err := s.vitals.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.Persistence("Server error while fetching vitals", err)
	}
	return vitals, nil
}

// Delete removes a snapshot owned by userID. Someone else's snapshot is
// reported as missing.
func (s *VitalsService) Delete(ctx context.Context, id, userID uint) error {
	vitals, err := s.vitals.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound("Vital not found")
		}
		return apperrors.Persistence("Server error while deleting", err)
	}
	if vitals.UserID != userID {
		return apperrors.NotFound("Vital not found")
	}

	if err := s.vitals.Delete(ctx, id); err != nil {
		return apperrors.Persistence("Server error while deleting", err)
	}
	return nil
}
