// Package http provides the HTTP client used to fetch HiPS tiles.
//
// This package handles:
//   - Connection pooling for high parallelism
//   - Full-body GET requests with a fixed per-request timeout
//   - Status-code mapping to sentinel errors
//
// Failures surface immediately: tile fetching is deliberately fail-fast,
// with no retries and no partial results.
//
// # Usage
//
//	client := http.NewClient(http.Options{
//	    MaxIdleConnsPerHost: 100,
//	    Timeout:             10 * time.Second,
//	})
//
//	body, err := client.Get(ctx, url)
package http
