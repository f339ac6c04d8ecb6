package loader

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/singleflight"

	"github.com/matzehuels/portfolio/pkg/api"
	"github.com/matzehuels/portfolio/pkg/cache"
	"github.com/matzehuels/portfolio/pkg/observability"
	"github.com/matzehuels/portfolio/pkg/portfolio"
)

// DefaultTTL is how long a fetched snapshot is served without re-fetching.
const DefaultTTL = 5 * time.Minute

const keyType = "snapshot"

var errEmptyResponse = errors.New("empty portfolio response")

// Client is the subset of [api.Client] the loader needs.
type Client interface {
	FetchPortfolio(ctx context.Context) (*portfolio.Snapshot, error)
	UpdatePersonalInfo(ctx context.Context, u portfolio.PersonalInfoUpdate) (portfolio.Message, error)
	UpdateAboutSection(ctx context.Context, u portfolio.AboutSectionUpdate) (portfolio.Message, error)
}

// State is a point-in-time view of the loader.
type State struct {
	Data        *portfolio.Snapshot
	Loading     bool
	Error       string
	LastFetched time.Time
}

// HasData reports whether a snapshot is loaded.
func (s State) HasData() bool { return s.Data != nil }

// Entry is the persisted form of the cached snapshot.
type Entry struct {
	Data      *portfolio.Snapshot `json:"data"`
	FetchedAt time.Time           `json:"fetched_at"`
}

// Loader caches the portfolio snapshot. It is safe for concurrent use.
type Loader struct {
	client Client
	ttl    time.Duration
	now    func() time.Time
	logger *log.Logger
	hooks  observability.CacheHooks
	store  cache.Cache
	key    string
	group  singleflight.Group

	mu        sync.RWMutex
	data      *portfolio.Snapshot
	fetchedAt time.Time
	loading   int
	errMsg    string
}

// Option configures a [Loader].
type Option func(*Loader)

// WithTTL sets the cache lifetime. Non-positive values disable caching.
func WithTTL(ttl time.Duration) Option {
	return func(l *Loader) { l.ttl = ttl }
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(l *Loader) {
		if now != nil {
			l.now = now
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *log.Logger) Option {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithCacheHooks sets the hooks notified on cache hits, misses and writes.
func WithCacheHooks(h observability.CacheHooks) Option {
	return func(l *Loader) {
		if h != nil {
			l.hooks = h
		}
	}
}

// WithStore persists every successful fetch under key so a later process
// can [Loader.Restore] it.
func WithStore(store cache.Cache, key string) Option {
	return func(l *Loader) {
		l.store = store
		l.key = key
	}
}

// New creates a loader in front of client.
func New(client Client, opts ...Option) *Loader {
	l := &Loader{
		client: client,
		ttl:    DefaultTTL,
		now:    time.Now,
		logger: log.Default(),
		hooks:  observability.NoopCacheHooks{},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// State returns the current state.
func (l *Loader) State() State {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return State{
		Data:        l.data,
		Loading:     l.loading > 0,
		Error:       l.errMsg,
		LastFetched: l.fetchedAt,
	}
}

// Valid reports whether the cached snapshot is younger than the TTL.
func (l *Loader) Valid() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.validLocked()
}

func (l *Loader) validLocked() bool {
	return !l.fetchedAt.IsZero() && l.now().Sub(l.fetchedAt) < l.ttl
}

// FetchPortfolio returns the cached snapshot while it is valid, unless force
// is set; otherwise it fetches from the API. On failure the previously
// loaded snapshot is kept and the error is returned.
func (l *Loader) FetchPortfolio(ctx context.Context, force bool) (*portfolio.Snapshot, error) {
	snap, _, err := l.fetchPortfolio(ctx, force)
	return snap, err
}

// Refresh is FetchPortfolio with force set.
func (l *Loader) Refresh(ctx context.Context) (*portfolio.Snapshot, error) {
	return l.FetchPortfolio(ctx, true)
}

func (l *Loader) fetchPortfolio(ctx context.Context, force bool) (*portfolio.Snapshot, bool, error) {
	if !force {
		l.mu.RLock()
		data, valid := l.data, l.validLocked()
		l.mu.RUnlock()
		if data != nil && valid {
			l.hooks.OnCacheHit(ctx, keyType)
			return data, true, nil
		}
	}
	l.hooks.OnCacheMiss(ctx, keyType)

	// The first caller's ctx governs the shared fetch. Joined callers stop
	// waiting when their own ctx ends; the caller running the fetch waits
	// for it, since the fetch ends with the same ctx.
	var running atomic.Bool
	ch := l.group.DoChan(keyType, func() (any, error) {
		running.Store(true)
		return l.fetch(ctx)
	})
	var res singleflight.Result
	select {
	case <-ctx.Done():
		if !running.Load() {
			l.logger.Debug("stopped waiting for portfolio fetch", "err", ctx.Err())
			return nil, false, api.ContextError(ctx.Err())
		}
		res = <-ch
	case res = <-ch:
	}
	if res.Shared {
		l.logger.Debug("joined in-flight portfolio fetch")
	}
	if res.Err != nil {
		return nil, false, res.Err
	}
	return res.Val.(*portfolio.Snapshot), false, nil
}

func (l *Loader) fetch(ctx context.Context) (*portfolio.Snapshot, error) {
	l.mu.Lock()
	l.loading++
	l.errMsg = ""
	l.mu.Unlock()

	snap, err := l.client.FetchPortfolio(ctx)
	if err == nil && snap == nil {
		err = errEmptyResponse
	}

	l.mu.Lock()
	l.loading--
	if err != nil {
		l.errMsg = api.Message(err)
		l.mu.Unlock()
		l.logger.Debug("portfolio fetch failed", "err", err, "status", api.StatusOf(err))
		return nil, err
	}
	l.data = snap
	l.fetchedAt = l.now()
	l.errMsg = ""
	entry := Entry{Data: snap, FetchedAt: l.fetchedAt}
	l.mu.Unlock()

	l.save(ctx, entry)
	return snap, nil
}

// UpdatePersonalInfo sends u to the API and, on success, merges its set
// fields into the cached personal block. It does not re-fetch.
func (l *Loader) UpdatePersonalInfo(ctx context.Context, u portfolio.PersonalInfoUpdate) error {
	return l.update(ctx, func(ctx context.Context) error {
		_, err := l.client.UpdatePersonalInfo(ctx, u)
		return err
	}, func(s *portfolio.Snapshot) {
		u.Apply(&s.Portfolio.Personal)
	})
}

// UpdateAboutSection sends u to the API and, on success, merges its set
// fields into the cached about section. It does not re-fetch.
func (l *Loader) UpdateAboutSection(ctx context.Context, u portfolio.AboutSectionUpdate) error {
	return l.update(ctx, func(ctx context.Context) error {
		_, err := l.client.UpdateAboutSection(ctx, u)
		return err
	}, func(s *portfolio.Snapshot) {
		u.Apply(&s.Portfolio.About)
	})
}

func (l *Loader) update(ctx context.Context, send func(context.Context) error, merge func(*portfolio.Snapshot)) error {
	l.mu.Lock()
	l.loading++
	l.mu.Unlock()

	err := send(ctx)

	l.mu.Lock()
	l.loading--
	if err != nil {
		l.errMsg = api.Message(err)
		l.mu.Unlock()
		return err
	}
	if l.data == nil {
		l.mu.Unlock()
		return nil
	}
	next := l.data.Clone()
	merge(next)
	l.data = next
	entry := Entry{Data: next, FetchedAt: l.fetchedAt}
	l.mu.Unlock()

	l.save(ctx, entry)
	return nil
}

// Restore loads a snapshot persisted by a previous process. The entry keeps
// its original fetch time, so it is only served from cache while it is
// within the TTL. Restore reports whether an entry was found.
func (l *Loader) Restore(ctx context.Context) (bool, error) {
	if l.store == nil {
		return false, nil
	}
	raw, hit, err := l.store.Get(ctx, l.key)
	if err != nil || !hit {
		return false, err
	}
	var entry Entry
	if err := json.Unmarshal(raw, &entry); err != nil || entry.Data == nil {
		l.logger.Debug("discarding unreadable persisted snapshot", "err", err)
		_ = l.store.Delete(ctx, l.key)
		return false, nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.data != nil && !entry.FetchedAt.After(l.fetchedAt) {
		return false, nil
	}
	l.data = entry.Data
	l.fetchedAt = entry.FetchedAt
	return true, nil
}

// Forget drops the in-memory and persisted snapshot.
func (l *Loader) Forget(ctx context.Context) error {
	l.mu.Lock()
	l.data = nil
	l.fetchedAt = time.Time{}
	l.mu.Unlock()
	if l.store == nil {
		return nil
	}
	return l.store.Delete(ctx, l.key)
}

func (l *Loader) save(ctx context.Context, entry Entry) {
	if l.store == nil {
		return
	}
	raw, err := json.Marshal(entry)
	if err != nil {
		l.logger.Warn("encode snapshot for cache", "err", err)
		return
	}
	if err := l.store.Set(ctx, l.key, raw, 0); err != nil {
		l.logger.Warn("persist snapshot", "err", err)
		return
	}
	l.hooks.OnCacheSet(ctx, keyType, len(raw))
}
