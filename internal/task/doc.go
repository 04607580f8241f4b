// Package task provides in-process background task processing. Draft builds
// run asynchronously after a capture is submitted so the HTTP request can
// return immediately; the draft row tracks progress for polling. Tasks are
// queued in memory and processed by a small worker pool. Concurrency exists
// only between independent tasks — inside a single draft build, translation
// calls remain strictly sequential.
package task
