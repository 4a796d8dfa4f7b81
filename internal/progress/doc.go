// Package progress provides progress reporting for tile fetching and
// conversion.
//
// This package outputs human-readable progress information, including the
// completed tile count, in-flight count, transfer volume and elapsed time.
// Reporting is purely observational: it never changes fetch ordering or
// results.
//
// # Usage
//
//	reporter := progress.NewReporter(progress.Options{
//	    Total:  len(indices),
//	    Source: surveyURL,
//	})
//
//	reporter.Start()
//	defer reporter.Stop()
//
//	// Update as tiles complete
//	reporter.TileCompleted(int64(len(body)))
//
// # Output Format
//
//	[hips] Fetching tiles: http://alasky.unistra.fr/DSS/DSS2Merged
//	[hips] Tiles: 6 | Workers: 4
//	[hips] Progress: 4/6 tiles | 2 in-flight | 1.20 MB | Elapsed: 3s
package progress
