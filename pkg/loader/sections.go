package loader

import (
	"context"

	"github.com/matzehuels/portfolio/pkg/portfolio"
)

// Source identifies where [Loader.LoadOrFallback] found its snapshot.
type Source int

const (
	// SourceCache is a snapshot fetched within the TTL.
	SourceCache Source = iota
	// SourceNetwork is a snapshot fetched by this call.
	SourceNetwork
	// SourceStale is an older snapshot kept after a failed fetch.
	SourceStale
	// SourceBundled is the placeholder dataset compiled into the binary.
	SourceBundled
)

func (s Source) String() string {
	switch s {
	case SourceCache:
		return "cache"
	case SourceNetwork:
		return "network"
	case SourceStale:
		return "stale"
	case SourceBundled:
		return "bundled"
	default:
		return "unknown"
	}
}

// LoadOrFallback never returns a nil snapshot. It tries the cache and the
// API first; when the fetch fails it serves the last snapshot it holds
// (including one restored from the store) and finally the bundled
// placeholder data. The fetch error, if any, is returned alongside.
func (l *Loader) LoadOrFallback(ctx context.Context) (*portfolio.Snapshot, Source, error) {
	snap, cached, err := l.fetchPortfolio(ctx, false)
	if err == nil {
		if cached {
			return snap, SourceCache, nil
		}
		return snap, SourceNetwork, nil
	}

	if data := l.State().Data; data != nil {
		return data, SourceStale, err
	}
	if ok, _ := l.Restore(ctx); ok {
		return l.State().Data, SourceStale, err
	}
	l.logger.Warn("serving bundled portfolio data", "err", err)
	return portfolio.Fallback(), SourceBundled, err
}

// Profile returns the cached profile, or nil when nothing is loaded.
func (l *Loader) Profile() *portfolio.Profile {
	if data := l.State().Data; data != nil {
		p := data.Portfolio
		return &p
	}
	return nil
}
