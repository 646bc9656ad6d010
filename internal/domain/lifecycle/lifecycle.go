// Package lifecycle holds shared constants for component start/stop handling.
package lifecycle

import "time"

// DefaultTimeout bounds graceful startup and shutdown steps such as database
// pings and HTTP server drain.
const DefaultTimeout = 10 * time.Second
