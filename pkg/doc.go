// Package pkg holds the libraries behind the portfolio CLI and API server.
//
// # Overview
//
// A portfolio is one profile document plus five ordered collections
// (skills, experience, projects, achievements, publications). The
// packages split into a client side and a server side that share the
// domain types:
//
//  1. [portfolio] - Domain types, partial updates, seed data
//  2. [api], [loader] - REST client and the TTL-cached snapshot loader
//  3. [service], [server], [storage] - The REST API and its persistence
//  4. [cache], [config], [errors], [httputil], [observability] - Shared infrastructure
//
// # Data Flow
//
//	portfolio show
//	     ↓
//	[loader] (5 minute TTL, file cache, fallback data)
//	     ↓
//	[api] (timeout, retry on 5xx)
//	     ↓  HTTP
//	[server] (chi, snapshot cache in Redis)
//	     ↓
//	[service] → [storage] (MongoDB or memory)
//
// # Quick Start
//
//	client := api.New(api.DefaultConfig())
//	l := loader.New(client)
//	snap, err := l.FetchPortfolio(ctx, false)
package pkg
