// Package service implements the portfolio API operations on top of a
// [storage.Store]. Errors are [*errors.Error] values whose codes map to
// HTTP statuses (see errors.HTTPStatus).
package service

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/portfolio/pkg/errors"
	"github.com/matzehuels/portfolio/pkg/portfolio"
	"github.com/matzehuels/portfolio/pkg/storage"
)

// RootMessage is returned by the API root.
const RootMessage = "Portfolio API is running"

const msgNoUpdates = "No updates provided or portfolio not found"

// Service is safe for concurrent use if its store is.
type Service struct {
	store  storage.Store
	userID string
	now    func() time.Time
	newID  func() string
	logger *log.Logger
}

// Option configures a [Service].
type Option func(*Service)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDs replaces the uuid generator.
func WithIDs(newID func() string) Option {
	return func(s *Service) { s.newID = newID }
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a service serving the default portfolio of store.
func New(store storage.Store, opts ...Option) *Service {
	s := &Service{
		store:  store,
		userID: portfolio.DefaultUserID,
		now:    func() time.Time { return time.Now().UTC() },
		newID:  uuid.NewString,
		logger: log.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// UserID returns the id of the served portfolio.
func (s *Service) UserID() string { return s.userID }

// Portfolio assembles the full snapshot.
func (s *Service) Portfolio(ctx context.Context) (*portfolio.Snapshot, error) {
	return s.snapshot(ctx, "Portfolio not found")
}

// Export returns the same aggregate as Portfolio.
func (s *Service) Export(ctx context.Context) (*portfolio.Snapshot, error) {
	return s.snapshot(ctx, "No data found")
}

func (s *Service) snapshot(ctx context.Context, notFound string) (*portfolio.Snapshot, error) {
	profile, err := s.store.Profile(ctx, s.userID)
	if stderrors.Is(err, storage.ErrNotFound) {
		return nil, errors.New(errors.ErrCodeNotFound, "%s", notFound)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "load portfolio")
	}

	snap := &portfolio.Snapshot{Portfolio: *profile}
	if snap.Skills, err = list(ctx, s.store.Skills(), s.userID, "skills"); err != nil {
		return nil, err
	}
	if snap.Experiences, err = list(ctx, s.store.Experiences(), s.userID, "experiences"); err != nil {
		return nil, err
	}
	if snap.Projects, err = list(ctx, s.store.Projects(), s.userID, "projects"); err != nil {
		return nil, err
	}
	if snap.Achievements, err = list(ctx, s.store.Achievements(), s.userID, "achievements"); err != nil {
		return nil, err
	}
	if snap.Publications, err = list(ctx, s.store.Publications(), s.userID, "publications"); err != nil {
		return nil, err
	}
	return snap, nil
}

// UpdatePersonal merges u into the personal block.
func (s *Service) UpdatePersonal(ctx context.Context, u portfolio.PersonalInfoUpdate) (portfolio.Message, error) {
	if u.Empty() {
		return portfolio.Message{}, errors.New(errors.ErrCodeNoUpdates, msgNoUpdates)
	}
	if err := s.store.UpdatePersonal(ctx, s.userID, u, s.now()); err != nil {
		return portfolio.Message{}, profileError(err)
	}
	return portfolio.Message{Message: "Personal information updated successfully"}, nil
}

// UpdateAbout merges u into the about section.
func (s *Service) UpdateAbout(ctx context.Context, u portfolio.AboutSectionUpdate) (portfolio.Message, error) {
	if u.Empty() {
		return portfolio.Message{}, errors.New(errors.ErrCodeNoUpdates, msgNoUpdates)
	}
	if err := s.store.UpdateAbout(ctx, s.userID, u, s.now()); err != nil {
		return portfolio.Message{}, profileError(err)
	}
	return portfolio.Message{Message: "About section updated successfully"}, nil
}

func profileError(err error) error {
	if stderrors.Is(err, storage.ErrNotFound) {
		return errors.New(errors.ErrCodeNoUpdates, msgNoUpdates)
	}
	return errors.Wrap(errors.ErrCodeStorage, err, "update portfolio")
}

// Status lists recorded status checks.
func (s *Service) Status(ctx context.Context) ([]portfolio.StatusCheck, error) {
	checks, err := s.store.StatusChecks().List(ctx, storage.MaxStatusChecks)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "list status checks")
	}
	return checks, nil
}

// CreateStatus records a status check from clientName.
func (s *Service) CreateStatus(ctx context.Context, clientName string) (portfolio.StatusCheck, error) {
	if clientName == "" {
		return portfolio.StatusCheck{}, errors.New(errors.ErrCodeInvalidInput, "client_name is required")
	}
	check := portfolio.StatusCheck{ID: s.newID(), ClientName: clientName, Timestamp: s.now()}
	if err := s.store.StatusChecks().Insert(ctx, check); err != nil {
		return portfolio.StatusCheck{}, errors.Wrap(errors.ErrCodeStorage, err, "record status check")
	}
	return check, nil
}

// Ping reports whether the store is reachable.
func (s *Service) Ping(ctx context.Context) error {
	if err := s.store.Ping(ctx); err != nil {
		return errors.Wrap(errors.ErrCodeUnavailable, err, "storage unavailable")
	}
	return nil
}
