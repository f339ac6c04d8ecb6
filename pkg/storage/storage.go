// Package storage defines the persistence interface of the portfolio API.
//
// Two implementations exist:
//
//   - memory: process-local maps, used by tests and `portfolio serve` when
//     no MongoDB URL is configured
//   - mongo: one MongoDB collection per resource
//
// Collections are scoped by portfolio id and listed in ascending "order".
// Missing documents are reported as [ErrNotFound].
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/matzehuels/portfolio/pkg/portfolio"
)

// ErrNotFound is returned when the addressed document does not exist.
var ErrNotFound = errors.New("document not found")

// Store is the persistence layer of the portfolio service.
type Store interface {
	// Profile returns the portfolio document owned by userID.
	Profile(ctx context.Context, userID string) (*portfolio.Profile, error)
	// SaveProfile creates or replaces the profile of p.UserID.
	SaveProfile(ctx context.Context, p portfolio.Profile) error
	// UpdatePersonal merges u into the personal block.
	UpdatePersonal(ctx context.Context, userID string, u portfolio.PersonalInfoUpdate, now time.Time) error
	// UpdateAbout merges u into the about section.
	UpdateAbout(ctx context.Context, userID string, u portfolio.AboutSectionUpdate, now time.Time) error

	Skills() Collection[portfolio.SkillCategory]
	Experiences() Collection[portfolio.Experience]
	Projects() Collection[portfolio.Project]
	Achievements() Collection[portfolio.Achievement]
	Publications() Collection[portfolio.Publication]

	StatusChecks() StatusChecks

	// Ping verifies the backend is reachable.
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// Collection stores the ordered items of one resource.
type Collection[T portfolio.Item] interface {
	// List returns the items of portfolioID sorted by order.
	List(ctx context.Context, portfolioID string) ([]T, error)
	Insert(ctx context.Context, item T) error
	// Update applies patch to the item with the given id and stamps now
	// as its update time.
	Update(ctx context.Context, id string, patch portfolio.Patch[T], now time.Time) error
	Delete(ctx context.Context, id string) error
	// Upsert replaces the item whose key fields equal those of item, or
	// inserts item when none matches. Key fields use stored names
	// ("portfolioId", "title", ...).
	Upsert(ctx context.Context, item T, keys ...string) error
}

// StatusChecks stores client status pings.
type StatusChecks interface {
	Insert(ctx context.Context, s portfolio.StatusCheck) error
	List(ctx context.Context, limit int) ([]portfolio.StatusCheck, error)
}

// MaxStatusChecks bounds StatusChecks.List.
const MaxStatusChecks = 1000
