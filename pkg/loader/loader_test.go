package loader

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/portfolio/pkg/api"
	"github.com/matzehuels/portfolio/pkg/cache"
	"github.com/matzehuels/portfolio/pkg/portfolio"
)

type fakeClient struct {
	mu       sync.Mutex
	fetches  int
	updates  int
	snap     *portfolio.Snapshot
	fetchErr error
	updErr   error
	gate     chan struct{}
}

func (f *fakeClient) FetchPortfolio(ctx context.Context) (*portfolio.Snapshot, error) {
	f.mu.Lock()
	f.fetches++
	gate, snap, err := f.gate, f.snap, f.fetchErr
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}
	if err != nil {
		return nil, err
	}
	return snap.Clone(), nil
}

func (f *fakeClient) UpdatePersonalInfo(ctx context.Context, u portfolio.PersonalInfoUpdate) (portfolio.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates++
	return portfolio.Message{Message: "ok"}, f.updErr
}

func (f *fakeClient) UpdateAboutSection(ctx context.Context, u portfolio.AboutSectionUpdate) (portfolio.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates++
	return portfolio.Message{Message: "ok"}, f.updErr
}

func (f *fakeClient) set(fn func(f *fakeClient)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn(f)
}

func (f *fakeClient) fetchCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fetches
}

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newClock() *fakeClock { return &fakeClock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)} }

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func ptr[T any](v T) *T { return &v }

func testSnapshot() *portfolio.Snapshot {
	return &portfolio.Snapshot{
		Portfolio: portfolio.Profile{
			UserID: portfolio.DefaultUserID,
			Personal: portfolio.PersonalInfo{
				Name:  "A",
				Email: "a@x.com",
			},
			About: portfolio.AboutSection{Title: "About Me", Description: "old"},
		},
		Skills: []portfolio.SkillCategory{{ID: "s1", Title: "Languages", Items: []string{"Go"}}},
	}
}

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}

func newTestLoader(client Client, clock *fakeClock, opts ...Option) *Loader {
	opts = append([]Option{WithClock(clock.Now), WithLogger(quietLogger())}, opts...)
	return New(client, opts...)
}

func TestFetchCacheHit(t *testing.T) {
	ctx := context.Background()
	fc := &fakeClient{snap: testSnapshot()}
	l := newTestLoader(fc, newClock())

	first, err := l.FetchPortfolio(ctx, false)
	if err != nil {
		t.Fatal(err)
	}
	second, err := l.FetchPortfolio(ctx, false)
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Error("cache hit should return the identical snapshot")
	}
	if n := fc.fetchCount(); n != 1 {
		t.Errorf("fetches = %d, want 1", n)
	}
	st := l.State()
	if st.Loading || st.Error != "" || !st.HasData() {
		t.Errorf("unexpected state %+v", st)
	}
}

func TestFetchTTL(t *testing.T) {
	ctx := context.Background()
	clock := newClock()
	fc := &fakeClient{snap: testSnapshot()}
	l := newTestLoader(fc, clock)

	if _, err := l.FetchPortfolio(ctx, false); err != nil {
		t.Fatal(err)
	}
	fetchedAt := l.State().LastFetched

	clock.Advance(DefaultTTL - time.Second)
	_, _ = l.FetchPortfolio(ctx, false)
	if n := fc.fetchCount(); n != 1 {
		t.Fatalf("fetches within TTL = %d, want 1", n)
	}

	clock.Advance(time.Second)
	if l.Valid() {
		t.Error("entry exactly TTL old should be invalid")
	}
	_, _ = l.FetchPortfolio(ctx, false)
	if n := fc.fetchCount(); n != 2 {
		t.Fatalf("fetches after TTL = %d, want 2", n)
	}
	if !l.State().LastFetched.After(fetchedAt) {
		t.Error("LastFetched should advance after a refetch")
	}
}

func TestRefreshBypassesCache(t *testing.T) {
	ctx := context.Background()
	fc := &fakeClient{snap: testSnapshot()}
	l := newTestLoader(fc, newClock())

	first, _ := l.FetchPortfolio(ctx, false)
	second, err := l.Refresh(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if fc.fetchCount() != 2 {
		t.Errorf("fetches = %d, want 2", fc.fetchCount())
	}
	if first == second {
		t.Error("refresh should replace the cached snapshot")
	}
}

func TestZeroTTLDisablesCache(t *testing.T) {
	ctx := context.Background()
	fc := &fakeClient{snap: testSnapshot()}
	l := newTestLoader(fc, newClock(), WithTTL(0))

	_, _ = l.FetchPortfolio(ctx, false)
	_, _ = l.FetchPortfolio(ctx, false)
	if fc.fetchCount() != 2 {
		t.Errorf("fetches = %d, want 2", fc.fetchCount())
	}
}

func TestFetchErrorPreservesData(t *testing.T) {
	ctx := context.Background()
	fc := &fakeClient{snap: testSnapshot()}
	l := newTestLoader(fc, newClock())

	good, _ := l.FetchPortfolio(ctx, false)
	lastFetched := l.State().LastFetched

	fc.set(func(f *fakeClient) {
		f.fetchErr = &api.RequestError{Message: "database unavailable", Status: 500}
	})
	snap, err := l.Refresh(ctx)
	if err == nil || snap != nil {
		t.Fatalf("Refresh = %v, %v; want error", snap, err)
	}

	st := l.State()
	if st.Data != good {
		t.Error("failed fetch should keep the previous snapshot")
	}
	if st.Error != "database unavailable" {
		t.Errorf("Error = %q", st.Error)
	}
	if st.Loading {
		t.Error("Loading should be false after a failed fetch")
	}
	if !st.LastFetched.Equal(lastFetched) {
		t.Error("failed fetch should not touch LastFetched")
	}

	fc.set(func(f *fakeClient) { f.fetchErr = nil })
	if _, err := l.Refresh(ctx); err != nil {
		t.Fatal(err)
	}
	if l.State().Error != "" {
		t.Error("successful fetch should clear the error")
	}
}

func TestFetchErrorUnknown(t *testing.T) {
	fc := &fakeClient{fetchErr: errors.New("boom")}
	l := newTestLoader(fc, newClock())

	if _, err := l.FetchPortfolio(context.Background(), false); err == nil {
		t.Fatal("expected error")
	}
	if got := l.State().Error; got != api.MsgUnknown {
		t.Errorf("Error = %q, want %q", got, api.MsgUnknown)
	}
}

func TestFetchTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	cfg := api.DefaultConfig()
	cfg.BaseURL = srv.URL
	cfg.Timeout = 20 * time.Millisecond
	l := newTestLoader(api.New(cfg), newClock())

	_, err := l.FetchPortfolio(context.Background(), false)
	if api.StatusOf(err) != api.StatusTimeout {
		t.Fatalf("status = %d, want %d", api.StatusOf(err), api.StatusTimeout)
	}
	st := l.State()
	if st.Error != api.MsgTimeout || st.Data != nil || st.Loading {
		t.Errorf("unexpected state %+v", st)
	}
}

func TestFetchCoalesced(t *testing.T) {
	ctx := context.Background()
	gate := make(chan struct{})
	fc := &fakeClient{snap: testSnapshot(), gate: gate}
	l := newTestLoader(fc, newClock())

	var wg sync.WaitGroup
	var failures atomic.Int32
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if snap, err := l.FetchPortfolio(ctx, false); err != nil || snap == nil {
				failures.Add(1)
			}
		}()
	}

	for fc.fetchCount() == 0 {
		time.Sleep(time.Millisecond)
	}
	if !l.State().Loading {
		t.Error("Loading should be true while a fetch is in flight")
	}
	close(gate)
	wg.Wait()

	if n := fc.fetchCount(); n != 1 {
		t.Errorf("fetches = %d, want 1", n)
	}
	if failures.Load() != 0 {
		t.Errorf("%d callers failed", failures.Load())
	}
}

func TestFetchJoinedCallerDeadline(t *testing.T) {
	gate := make(chan struct{})
	fc := &fakeClient{snap: testSnapshot(), gate: gate}
	l := newTestLoader(fc, newClock())

	leader := make(chan error, 1)
	go func() {
		_, err := l.FetchPortfolio(context.Background(), false)
		leader <- err
	}()
	for fc.fetchCount() == 0 {
		time.Sleep(time.Millisecond)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	start := time.Now()
	snap, err := l.FetchPortfolio(ctx, false)
	if d := time.Since(start); d > time.Second {
		t.Errorf("joined caller returned after %v", d)
	}
	if snap != nil {
		t.Error("joined caller got a snapshot after its deadline")
	}
	if api.StatusOf(err) != api.StatusTimeout || api.Message(err) != api.MsgTimeout {
		t.Errorf("err = %v (status %d), want timeout", err, api.StatusOf(err))
	}

	close(gate)
	if err := <-leader; err != nil {
		t.Fatalf("leader: %v", err)
	}
	if n := fc.fetchCount(); n != 1 {
		t.Errorf("fetches = %d, want 1", n)
	}
	if !l.State().HasData() {
		t.Error("leader's fetch should still populate the cache")
	}
}

func TestUpdatePersonalInfoMerges(t *testing.T) {
	ctx := context.Background()
	fc := &fakeClient{snap: testSnapshot()}
	l := newTestLoader(fc, newClock())

	before, _ := l.FetchPortfolio(ctx, false)
	lastFetched := l.State().LastFetched

	if err := l.UpdatePersonalInfo(ctx, portfolio.PersonalInfoUpdate{Name: ptr("X")}); err != nil {
		t.Fatal(err)
	}

	after := l.State().Data
	if after.Portfolio.Personal.Name != "X" {
		t.Errorf("Name = %q, want X", after.Portfolio.Personal.Name)
	}
	if after.Portfolio.Personal.Email != "a@x.com" {
		t.Errorf("Email = %q, unset fields must be preserved", after.Portfolio.Personal.Email)
	}
	if before.Portfolio.Personal.Name != "A" {
		t.Error("snapshots handed out earlier must not change")
	}
	if fc.fetchCount() != 1 {
		t.Error("updates must not re-fetch")
	}
	if !l.State().LastFetched.Equal(lastFetched) {
		t.Error("updates must not touch LastFetched")
	}
}

func TestUpdateAboutSectionMerges(t *testing.T) {
	ctx := context.Background()
	fc := &fakeClient{snap: testSnapshot()}
	l := newTestLoader(fc, newClock())
	_, _ = l.FetchPortfolio(ctx, false)

	err := l.UpdateAboutSection(ctx, portfolio.AboutSectionUpdate{Description: ptr("new")})
	if err != nil {
		t.Fatal(err)
	}
	about := l.State().Data.Portfolio.About
	if about.Description != "new" || about.Title != "About Me" {
		t.Errorf("about = %+v", about)
	}
}

func TestUpdateFailureLeavesData(t *testing.T) {
	ctx := context.Background()
	fc := &fakeClient{snap: testSnapshot()}
	l := newTestLoader(fc, newClock())
	before, _ := l.FetchPortfolio(ctx, false)

	fc.set(func(f *fakeClient) {
		f.updErr = &api.RequestError{Message: "No updates provided or portfolio not found", Status: 400}
	})
	err := l.UpdatePersonalInfo(ctx, portfolio.PersonalInfoUpdate{Name: ptr("X")})
	if api.StatusOf(err) != 400 {
		t.Fatalf("err = %v", err)
	}
	st := l.State()
	if st.Data != before || st.Data.Portfolio.Personal.Name != "A" {
		t.Error("failed update must not modify data")
	}
	if st.Error != "No updates provided or portfolio not found" || st.Loading {
		t.Errorf("unexpected state %+v", st)
	}
}

func TestUpdateWithoutData(t *testing.T) {
	fc := &fakeClient{}
	l := newTestLoader(fc, newClock())

	if err := l.UpdatePersonalInfo(context.Background(), portfolio.PersonalInfoUpdate{Name: ptr("X")}); err != nil {
		t.Fatal(err)
	}
	if l.State().HasData() {
		t.Error("update without loaded data should not create a snapshot")
	}
}

func TestRestore(t *testing.T) {
	ctx := context.Background()
	store, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	clock := newClock()
	key := cache.SnapshotKey("http://localhost:8000/api")

	fc := &fakeClient{snap: testSnapshot()}
	first := newTestLoader(fc, clock, WithStore(store, key))
	if _, err := first.FetchPortfolio(ctx, false); err != nil {
		t.Fatal(err)
	}
	_ = first.UpdatePersonalInfo(ctx, portfolio.PersonalInfoUpdate{Name: ptr("Persisted")})

	clock.Advance(time.Minute)
	second := newTestLoader(fc, clock, WithStore(store, key))
	ok, err := second.Restore(ctx)
	if err != nil || !ok {
		t.Fatalf("Restore = %v, %v", ok, err)
	}
	st := second.State()
	if st.Data.Portfolio.Personal.Name != "Persisted" {
		t.Errorf("restored name = %q", st.Data.Portfolio.Personal.Name)
	}
	if !st.LastFetched.Equal(first.State().LastFetched) {
		t.Error("restored entry should keep its original fetch time")
	}

	if _, err := second.FetchPortfolio(ctx, false); err != nil {
		t.Fatal(err)
	}
	if fc.fetchCount() != 1 {
		t.Error("restored entry within TTL should be served from cache")
	}

	clock.Advance(DefaultTTL)
	_, _ = second.FetchPortfolio(ctx, false)
	if fc.fetchCount() != 2 {
		t.Error("restored entry past TTL should be refetched")
	}
}

func TestRestoreWithoutStore(t *testing.T) {
	l := newTestLoader(&fakeClient{}, newClock())
	if ok, err := l.Restore(context.Background()); ok || err != nil {
		t.Errorf("Restore = %v, %v", ok, err)
	}
}

func TestForget(t *testing.T) {
	ctx := context.Background()
	store, _ := cache.NewFileCache(t.TempDir())
	fc := &fakeClient{snap: testSnapshot()}
	l := newTestLoader(fc, newClock(), WithStore(store, "k"))
	_, _ = l.FetchPortfolio(ctx, false)

	if err := l.Forget(ctx); err != nil {
		t.Fatal(err)
	}
	if l.State().HasData() {
		t.Error("Forget should drop the snapshot")
	}
	if _, hit, _ := store.Get(ctx, "k"); hit {
		t.Error("Forget should delete the persisted entry")
	}
}

func TestLoadOrFallback(t *testing.T) {
	ctx := context.Background()
	fc := &fakeClient{fetchErr: errors.New("offline")}
	l := newTestLoader(fc, newClock())

	snap, src, err := l.LoadOrFallback(ctx)
	if err == nil || src != SourceBundled {
		t.Fatalf("source = %v, err = %v; want bundled with error", src, err)
	}
	if snap == nil || snap.Portfolio.Personal.Name != portfolio.Fallback().Portfolio.Personal.Name {
		t.Error("bundled snapshot expected")
	}

	fc.set(func(f *fakeClient) { f.fetchErr = nil; f.snap = testSnapshot() })
	if _, src, _ := l.LoadOrFallback(ctx); src != SourceNetwork {
		t.Errorf("source = %v, want network", src)
	}
	if _, src, _ := l.LoadOrFallback(ctx); src != SourceCache {
		t.Errorf("source = %v, want cache", src)
	}

	fc.set(func(f *fakeClient) { f.fetchErr = errors.New("offline") })
	_, _ = l.Refresh(ctx)
	l2 := newTestLoader(fc, newClock(), WithTTL(0))
	l2.data = l.State().Data
	if snap, src, _ := l2.LoadOrFallback(ctx); src != SourceStale || snap.Portfolio.Personal.Name != "A" {
		t.Errorf("source = %v, want stale", src)
	}
}

func TestProfile(t *testing.T) {
	fc := &fakeClient{snap: testSnapshot()}
	l := newTestLoader(fc, newClock())
	if l.Profile() != nil {
		t.Error("Profile() should be nil without data")
	}

	_, _ = l.FetchPortfolio(context.Background(), false)
	p := l.Profile()
	if p == nil || p.Personal.Name != "A" {
		t.Fatalf("Profile() = %+v", p)
	}
	p.Personal.Name = "changed"
	if l.Profile().Personal.Name != "A" {
		t.Error("Profile() shares the cached profile")
	}
}
