// Package memory is an in-process [storage.Store].
package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/matzehuels/portfolio/pkg/portfolio"
	"github.com/matzehuels/portfolio/pkg/storage"
)

// Store keeps all documents in memory. The zero value is not usable; call New.
type Store struct {
	mu       sync.RWMutex
	profiles map[string]portfolio.Profile

	skills       *collection[portfolio.SkillCategory]
	experiences  *collection[portfolio.Experience]
	projects     *collection[portfolio.Project]
	achievements *collection[portfolio.Achievement]
	publications *collection[portfolio.Publication]
	status       *statusChecks
}

// New returns an empty store.
func New() *Store {
	return &Store{
		profiles: make(map[string]portfolio.Profile),
		skills: newCollection(func(v *portfolio.SkillCategory, t time.Time) {
			v.UpdatedAt = t
		}),
		experiences: newCollection(func(v *portfolio.Experience, t time.Time) {
			v.UpdatedAt = t
		}),
		projects: newCollection(func(v *portfolio.Project, t time.Time) {
			v.UpdatedAt = t
		}),
		achievements: newCollection(func(v *portfolio.Achievement, t time.Time) {
			v.UpdatedAt = t
		}),
		publications: newCollection(func(v *portfolio.Publication, t time.Time) {
			v.UpdatedAt = t
		}),
		status: &statusChecks{},
	}
}

func (s *Store) Profile(_ context.Context, userID string) (*portfolio.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.profiles[userID]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &p, nil
}

func (s *Store) SaveProfile(_ context.Context, p portfolio.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[p.UserID] = p
	return nil
}

func (s *Store) UpdatePersonal(_ context.Context, userID string, u portfolio.PersonalInfoUpdate, now time.Time) error {
	return s.updateProfile(userID, now, func(p *portfolio.Profile) { u.Apply(&p.Personal) })
}

func (s *Store) UpdateAbout(_ context.Context, userID string, u portfolio.AboutSectionUpdate, now time.Time) error {
	return s.updateProfile(userID, now, func(p *portfolio.Profile) { u.Apply(&p.About) })
}

func (s *Store) updateProfile(userID string, now time.Time, apply func(*portfolio.Profile)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[userID]
	if !ok {
		return storage.ErrNotFound
	}
	apply(&p)
	p.UpdatedAt = now
	s.profiles[userID] = p
	return nil
}

func (s *Store) Skills() storage.Collection[portfolio.SkillCategory]     { return s.skills }
func (s *Store) Experiences() storage.Collection[portfolio.Experience]   { return s.experiences }
func (s *Store) Projects() storage.Collection[portfolio.Project]         { return s.projects }
func (s *Store) Achievements() storage.Collection[portfolio.Achievement] { return s.achievements }
func (s *Store) Publications() storage.Collection[portfolio.Publication] { return s.publications }
func (s *Store) StatusChecks() storage.StatusChecks                      { return s.status }

func (s *Store) Ping(context.Context) error  { return nil }
func (s *Store) Close(context.Context) error { return nil }

type collection[T portfolio.Item] struct {
	mu    sync.RWMutex
	items []T
	touch func(*T, time.Time)
}

func newCollection[T portfolio.Item](touch func(*T, time.Time)) *collection[T] {
	return &collection[T]{touch: touch}
}

func (c *collection[T]) List(_ context.Context, portfolioID string) ([]T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]T, 0, len(c.items))
	for _, it := range c.items {
		if it.ItemPortfolio() == portfolioID {
			out = append(out, it)
		}
	}
	slices.SortStableFunc(out, func(a, b T) int { return cmp.Compare(a.ItemOrder(), b.ItemOrder()) })
	return out, nil
}

func (c *collection[T]) Insert(_ context.Context, item T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append(c.items, item)
	return nil
}

func (c *collection[T]) Update(_ context.Context, id string, patch portfolio.Patch[T], now time.Time) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.index(id)
	if i < 0 {
		return storage.ErrNotFound
	}
	patch.Apply(&c.items[i])
	c.touch(&c.items[i], now)
	return nil
}

func (c *collection[T]) Delete(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.index(id)
	if i < 0 {
		return storage.ErrNotFound
	}
	c.items = slices.Delete(c.items, i, i+1)
	return nil
}

func (c *collection[T]) Upsert(_ context.Context, item T, keys ...string) error {
	want, err := fields(item)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, existing := range c.items {
		have, err := fields(existing)
		if err != nil {
			return err
		}
		if matches(want, have, keys) {
			c.items[i] = item
			return nil
		}
	}
	c.items = append(c.items, item)
	return nil
}

func (c *collection[T]) index(id string) int {
	return slices.IndexFunc(c.items, func(it T) bool { return it.ItemID() == id })
}

// fields renders v with its stored field names so natural keys can be
// compared the same way the mongo store filters on them.
func fields(v any) (bson.M, error) {
	raw, err := bson.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	var m bson.M
	if err := bson.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return m, nil
}

func matches(want, have bson.M, keys []string) bool {
	if len(keys) == 0 {
		return false
	}
	for _, k := range keys {
		if want[k] != have[k] {
			return false
		}
	}
	return true
}

type statusChecks struct {
	mu     sync.RWMutex
	checks []portfolio.StatusCheck
}

func (s *statusChecks) Insert(_ context.Context, c portfolio.StatusCheck) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.checks = append(s.checks, c)
	return nil
}

func (s *statusChecks) List(_ context.Context, limit int) ([]portfolio.StatusCheck, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if limit <= 0 || limit > storage.MaxStatusChecks {
		limit = storage.MaxStatusChecks
	}
	limit = min(limit, len(s.checks))
	return slices.Clone(s.checks[:limit]), nil
}

var _ storage.Store = (*Store)(nil)
