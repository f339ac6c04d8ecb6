// Package loader keeps a TTL-cached copy of the portfolio snapshot in front
// of the API client.
//
// A [Loader] serves [Loader.FetchPortfolio] from memory while the last
// successful fetch is younger than the TTL (5 minutes by default), fetches
// otherwise, and applies successful personal/about updates to the cached
// copy without re-fetching. Failures never discard data that was already
// loaded; they are recorded in [State.Error] and returned to the caller.
//
// Snapshots handed out by the loader are shared and must be treated as
// read-only. Updates replace the cached snapshot with a modified copy.
//
// Concurrent fetches are coalesced: callers that miss the cache while a
// fetch is in flight wait for that fetch instead of starting their own.
//
// A [Monitor] polls the API health endpoint on an interval.
package loader
