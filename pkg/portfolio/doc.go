// Package portfolio defines the data model shared by the portfolio API server,
// its storage backends and the client layer.
//
// # Overview
//
// A [Snapshot] is the complete aggregate served by GET /portfolio: the
// [Profile] (personal info plus the about section) and the ordered item
// collections ([SkillCategory], [Experience], [Project], [Achievement],
// [Publication]).
//
// Snapshots are treated as immutable once fetched. Code that needs to modify
// one works on a [Snapshot.Clone].
//
// # Patches
//
// Partial updates are expressed with patch types whose fields are pointers.
// A nil field means "leave unchanged":
//
//	name := "Jane Doe"
//	patch := portfolio.PersonalInfoUpdate{Name: &name}
//	patch.Apply(&snap.Portfolio.Personal)  // shallow merge, other fields kept
//
// Every patch implements [Patch]: Apply merges into a value, Fields produces
// the dotted-path document used by document stores, and Empty reports a no-op.
//
// # Seed data
//
// [SeedData] is the bulk payload accepted by POST /migrate. [Fallback]
// returns the bundled placeholder dataset that clients display when the API
// cannot be reached.
package portfolio
