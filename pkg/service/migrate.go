package service

import (
	"context"

	"github.com/matzehuels/portfolio/pkg/errors"
	"github.com/matzehuels/portfolio/pkg/portfolio"
	"github.com/matzehuels/portfolio/pkg/storage"
)

// Natural keys used to upsert seeded items. Re-running a migration
// replaces matching items instead of duplicating them.
var (
	skillKeys       = []string{"portfolioId", "title"}
	experienceKeys  = []string{"portfolioId", "title", "company"}
	projectKeys     = []string{"portfolioId", "title"}
	achievementKeys = []string{"portfolioId", "title"}
	publicationKeys = []string{"portfolioId", "title"}
)

const msgMigrationFailed = "Migration failed"

// Migrate replaces the profile with the seed and upserts every seeded
// item, assigning order from its position. Any failure is reported as
// ErrCodeInvalidSeed.
func (s *Service) Migrate(ctx context.Context, seed portfolio.SeedData) (portfolio.Message, error) {
	if err := seed.Validate(); err != nil {
		s.logger.Warn("rejecting seed", "error", err)
		return portfolio.Message{}, errors.Wrap(errors.ErrCodeInvalidSeed, err, msgMigrationFailed)
	}

	snap := seed.Snapshot(s.now())
	snap.Portfolio.ID = s.newID()
	snap.Portfolio.UserID = s.userID

	if err := s.store.SaveProfile(ctx, snap.Portfolio); err != nil {
		return s.migrationFailed(err)
	}
	if err := upsertAll(ctx, s, s.store.Skills(), snap.Skills, skillKeys, func(v *portfolio.SkillCategory) (*string, *string) {
		return &v.ID, &v.PortfolioID
	}); err != nil {
		return s.migrationFailed(err)
	}
	if err := upsertAll(ctx, s, s.store.Experiences(), snap.Experiences, experienceKeys, func(v *portfolio.Experience) (*string, *string) {
		return &v.ID, &v.PortfolioID
	}); err != nil {
		return s.migrationFailed(err)
	}
	if err := upsertAll(ctx, s, s.store.Projects(), snap.Projects, projectKeys, func(v *portfolio.Project) (*string, *string) {
		return &v.ID, &v.PortfolioID
	}); err != nil {
		return s.migrationFailed(err)
	}
	if err := upsertAll(ctx, s, s.store.Achievements(), snap.Achievements, achievementKeys, func(v *portfolio.Achievement) (*string, *string) {
		return &v.ID, &v.PortfolioID
	}); err != nil {
		return s.migrationFailed(err)
	}
	if err := upsertAll(ctx, s, s.store.Publications(), snap.Publications, publicationKeys, func(v *portfolio.Publication) (*string, *string) {
		return &v.ID, &v.PortfolioID
	}); err != nil {
		return s.migrationFailed(err)
	}

	counts := snap.Counts()
	s.logger.Info("migrated seed data",
		"skills", counts.Skills,
		"experiences", counts.Experiences,
		"projects", counts.Projects,
		"achievements", counts.Achievements,
		"publications", counts.Publications)
	return portfolio.Message{Message: "Data migrated successfully"}, nil
}

// upsertAll rewrites the ids and owner of items before upserting them.
func upsertAll[T portfolio.Item](ctx context.Context, s *Service, c storage.Collection[T], items []T, keys []string, ids func(*T) (*string, *string)) error {
	for i := range items {
		id, owner := ids(&items[i])
		*id = s.newID()
		*owner = s.userID
		if err := c.Upsert(ctx, items[i], keys...); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) migrationFailed(err error) (portfolio.Message, error) {
	s.logger.Error("migration failed", "error", err)
	return portfolio.Message{}, errors.Wrap(errors.ErrCodeInvalidSeed, err, msgMigrationFailed)
}
