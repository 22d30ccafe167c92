// Package domain contains the aggregate entities of the tracker: users, days,
// meals, recipes, ingredients, workouts and workout templates. Each aggregate
// owns its identity and invariants and is persisted as a unit by one
// repository. The types are intentionally free of storage concerns so that
// every storage backend maps them the same way.
//
// Aggregates reference each other by id only (a Day lists meal ids, it never
// embeds meals). Nutritional totals are always recomputed from embedded
// ingredient lines and never stored, so they cannot drift.
package domain
