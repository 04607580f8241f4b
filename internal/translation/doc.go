// Package translation defines the Translator capability boundary and the
// orchestrator that drives per-sentence translation batches against it.
//
// The orchestrator issues calls strictly sequentially with a fixed
// inter-call throttle to respect third-party rate limits, and it never
// fails: every backend problem degrades to an in-band bracketed marker
// string in the output slice, so one bad sentence can never block the rest
// of the batch.
package translation
