// Package config defines configuration structures for the hips CLI.
//
// Configuration can be provided via:
//   - Command-line flags
//   - Environment variables (HIPS_ prefix)
//   - YAML configuration file
//
// # Structure
//
//	type Config struct {
//	    Survey    string
//	    Order     int
//	    Format    string
//	    Frame     string
//	    TileWidth int
//	    Out       string
//	    Workers   int
//	    Strategy  string
//	    Progress  bool
//	    Timeout   time.Duration
//	}
package config
