// Package domain contains the core business entities and invariants of the
// application: captured text, draft and permanent study cards, review state,
// study sessions, and grading verdicts. It is independent of any specific
// infrastructure or delivery mechanism.
package domain
