// Package ingest turns raw captured text into a draft of candidate study
// cards. The builder cleans the text, segments it into sentences, drives
// the translation orchestrator over them, and zips the results into draft
// cards annotated with confidence and review flags. Failures never abort an
// ingestion run; they surface as warnings and per-card flags for the human
// reviewer.
package ingest
