// Package stats aggregates historical study sessions into accuracy, volume,
// and streak metrics. The summary is a stateless snapshot recomputed on
// demand from the full session history; it is never persisted and never
// updated incrementally.
package stats
