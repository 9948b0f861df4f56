package utils

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"healthrecord/internal/models"
	"healthrecord/internal/repository"
	"healthrecord/internal/services"
)

const DefaultVitalsCount = 30

var seedNotes = []string{"", "before breakfast", "after lunch", "after a walk", "felt dizzy", "evening reading"}

// Seeder creates demo accounts and synthetic vitals through the same services the API uses.
type Seeder struct {
	users  repository.UserRepository
	auth   *services.AuthService
	vitals *services.VitalsService
	rng    *rand.Rand
	now    func() time.Time
	log    *zap.Logger
}

func NewSeeder(users repository.UserRepository, auth *services.AuthService, vitals *services.VitalsService, log *zap.Logger) *Seeder {
	return &Seeder{
		users:  users,
		auth:   auth,
		vitals: vitals,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		now:    time.Now,
		log:    log.Named("seeder"),
	}
}

func (s *Seeder) SeedUser(ctx context.Context, in services.SignupInput) (*models.User, error) {
	result, err := s.auth.Signup(ctx, in)
	if err != nil {
		return nil, err
	}
	s.log.Info("created user", zap.Uint("user_id", result.User.ID), zap.String("email", result.User.Email))
	return result.User, nil
}

// SeedVitals inserts count daily snapshots ending today for the account behind email.
func (s *Seeder) SeedVitals(ctx context.Context, email string, count int) (int, error) {
	if count <= 0 {
		return 0, fmt.Errorf("count must be positive, got %d", count)
	}

	user, err := s.users.FindByEmail(ctx, repository.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, fmt.Errorf("no user registered with email %q", email)
		}
		return 0, fmt.Errorf("failed to look up user: %w", err)
	}

	today := s.now()
	created := 0
	for i := count - 1; i >= 0; i-- {
		date := today.AddDate(0, 0, -i)
		if _, err := s.vitals.Add(ctx, user.ID, s.randomVitals(date)); err != nil {
			return created, fmt.Errorf("failed to insert vitals %d of %d: %w", created+1, count, err)
		}
		created++
	}

	s.log.Info("seeded vitals", zap.Uint("user_id", user.ID), zap.Int("count", created))
	return created, nil
}

func (s *Seeder) randomVitals(date time.Time) services.VitalsInput {
	systolic := 105 + s.rng.Intn(40)
	diastolic := 65 + s.rng.Intn(25)
	return services.VitalsInput{
		BP:     fmt.Sprintf("%d/%d", systolic, diastolic),
		Sugar:  fmt.Sprintf("%d", 80+s.rng.Intn(70)),
		Weight: fmt.Sprintf("%.1f", 55+s.rng.Float64()*40),
		Note:   seedNotes[s.rng.Intn(len(seedNotes))],
		Date:   &date,
	}
}
