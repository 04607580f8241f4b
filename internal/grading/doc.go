// Package grading scores a learner's typed answer against the reference
// answer using normalized edit-distance similarity. Grading is a total, pure
// function: every pair of inputs maps to a valid verdict, with no error
// cases and no shared state between calls.
package grading
