package service

import (
	"context"
	stderrors "errors"
	"strings"
	"time"

	"github.com/matzehuels/portfolio/pkg/errors"
	"github.com/matzehuels/portfolio/pkg/portfolio"
	"github.com/matzehuels/portfolio/pkg/storage"
)

func list[T portfolio.Item](ctx context.Context, c storage.Collection[T], portfolioID, what string) ([]T, error) {
	items, err := c.List(ctx, portfolioID)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "list %s", what)
	}
	return items, nil
}

// creator is implemented by the create bodies of every resource.
type creator[T any] interface {
	Validate() error
	Build(id, portfolioID string, now time.Time) T
}

func create[T portfolio.Item, C creator[T]](ctx context.Context, s *Service, c storage.Collection[T], in C, noun string) (T, error) {
	var zero T
	if err := in.Validate(); err != nil {
		return zero, errors.Wrap(errors.ErrCodeValidation, err, "%s", err.Error())
	}
	item := in.Build(s.newID(), s.userID, s.now())
	if err := c.Insert(ctx, item); err != nil {
		return zero, errors.Wrap(errors.ErrCodeStorage, err, "create %s", strings.ToLower(noun))
	}
	return item, nil
}

// update reports a missing item and an empty patch alike, as 404.
func update[T portfolio.Item](ctx context.Context, s *Service, c storage.Collection[T], id string, patch portfolio.Patch[T], noun string) (portfolio.Message, error) {
	if err := errors.ValidateID(id); err != nil {
		return portfolio.Message{}, err
	}
	notFound := errors.New(errors.ErrCodeNotFound, "%s not found or no updates provided", noun)
	if patch.Empty() {
		return portfolio.Message{}, notFound
	}
	err := c.Update(ctx, id, patch, s.now())
	if stderrors.Is(err, storage.ErrNotFound) {
		return portfolio.Message{}, notFound
	}
	if err != nil {
		return portfolio.Message{}, errors.Wrap(errors.ErrCodeStorage, err, "update %s", strings.ToLower(noun))
	}
	return portfolio.Message{Message: noun + " updated successfully"}, nil
}

func remove[T portfolio.Item](ctx context.Context, c storage.Collection[T], id, noun string) (portfolio.Message, error) {
	if err := errors.ValidateID(id); err != nil {
		return portfolio.Message{}, err
	}
	err := c.Delete(ctx, id)
	if stderrors.Is(err, storage.ErrNotFound) {
		return portfolio.Message{}, errors.New(errors.ErrCodeNotFound, "%s not found", noun)
	}
	if err != nil {
		return portfolio.Message{}, errors.Wrap(errors.ErrCodeStorage, err, "delete %s", strings.ToLower(noun))
	}
	return portfolio.Message{Message: noun + " deleted successfully"}, nil
}

// Skills

func (s *Service) Skills(ctx context.Context) ([]portfolio.SkillCategory, error) {
	return list(ctx, s.store.Skills(), s.userID, "skills")
}

func (s *Service) CreateSkill(ctx context.Context, in portfolio.SkillCategoryCreate) (portfolio.SkillCategory, error) {
	return create(ctx, s, s.store.Skills(), in, "Skill category")
}

func (s *Service) UpdateSkill(ctx context.Context, id string, u portfolio.SkillCategoryUpdate) (portfolio.Message, error) {
	return update[portfolio.SkillCategory](ctx, s, s.store.Skills(), id, u, "Skill category")
}

func (s *Service) DeleteSkill(ctx context.Context, id string) (portfolio.Message, error) {
	return remove(ctx, s.store.Skills(), id, "Skill category")
}

// Experience

func (s *Service) Experiences(ctx context.Context) ([]portfolio.Experience, error) {
	return list(ctx, s.store.Experiences(), s.userID, "experiences")
}

func (s *Service) CreateExperience(ctx context.Context, in portfolio.ExperienceCreate) (portfolio.Experience, error) {
	return create(ctx, s, s.store.Experiences(), in, "Experience")
}

func (s *Service) UpdateExperience(ctx context.Context, id string, u portfolio.ExperienceUpdate) (portfolio.Message, error) {
	return update[portfolio.Experience](ctx, s, s.store.Experiences(), id, u, "Experience")
}

func (s *Service) DeleteExperience(ctx context.Context, id string) (portfolio.Message, error) {
	return remove(ctx, s.store.Experiences(), id, "Experience")
}

// Projects

func (s *Service) Projects(ctx context.Context) ([]portfolio.Project, error) {
	return list(ctx, s.store.Projects(), s.userID, "projects")
}

func (s *Service) CreateProject(ctx context.Context, in portfolio.ProjectCreate) (portfolio.Project, error) {
	return create(ctx, s, s.store.Projects(), in, "Project")
}

func (s *Service) UpdateProject(ctx context.Context, id string, u portfolio.ProjectUpdate) (portfolio.Message, error) {
	return update[portfolio.Project](ctx, s, s.store.Projects(), id, u, "Project")
}

func (s *Service) DeleteProject(ctx context.Context, id string) (portfolio.Message, error) {
	return remove(ctx, s.store.Projects(), id, "Project")
}

// Achievements

func (s *Service) Achievements(ctx context.Context) ([]portfolio.Achievement, error) {
	return list(ctx, s.store.Achievements(), s.userID, "achievements")
}

func (s *Service) CreateAchievement(ctx context.Context, in portfolio.AchievementCreate) (portfolio.Achievement, error) {
	return create(ctx, s, s.store.Achievements(), in, "Achievement")
}

func (s *Service) UpdateAchievement(ctx context.Context, id string, u portfolio.AchievementUpdate) (portfolio.Message, error) {
	return update[portfolio.Achievement](ctx, s, s.store.Achievements(), id, u, "Achievement")
}

func (s *Service) DeleteAchievement(ctx context.Context, id string) (portfolio.Message, error) {
	return remove(ctx, s.store.Achievements(), id, "Achievement")
}

// Publications

func (s *Service) Publications(ctx context.Context) ([]portfolio.Publication, error) {
	return list(ctx, s.store.Publications(), s.userID, "publications")
}

func (s *Service) CreatePublication(ctx context.Context, in portfolio.PublicationCreate) (portfolio.Publication, error) {
	return create(ctx, s, s.store.Publications(), in, "Publication")
}

func (s *Service) UpdatePublication(ctx context.Context, id string, u portfolio.PublicationUpdate) (portfolio.Message, error) {
	return update[portfolio.Publication](ctx, s, s.store.Publications(), id, u, "Publication")
}

func (s *Service) DeletePublication(ctx context.Context, id string) (portfolio.Message, error) {
	return remove(ctx, s.store.Publications(), id, "Publication")
}
