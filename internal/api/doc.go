// Package api handles incoming HTTP requests, routing, request validation,
// and response formatting for capture ingestion, draft review, answer
// grading, and study statistics. It adapts HTTP concerns to the internal
// services and never contains business logic of its own.
package api
