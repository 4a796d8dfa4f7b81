// Package fetcher retrieves HiPS tiles from remote surveys.
//
// A Fetcher turns a list of nested pixel indices into tile URLs via the
// survey descriptor, downloads all payloads concurrently and returns the
// tiles in submission order.
//
// # Strategies
//
// Two interchangeable execution strategies implement the same contract:
//
//   - [StrategyPool]: a bounded worker pool (Options.Workers goroutines)
//     built on github.com/panjf2000/ants
//   - [StrategyConcurrent]: one goroutine per tile, so concurrency equals
//     the number of requested tiles
//
// Both write results into per-index slots, so the output order is always
// the input order regardless of completion order, and both produce the
// same result set for the same inputs.
//
// # Failure
//
// Any single fetch failure cancels the remaining fetches and fails the
// whole batch: no retries, no partial results.
package fetcher
