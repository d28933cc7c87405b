// Package lifecycle holds process lifecycle constants shared by infra components.
package lifecycle

import "time"

// DefaultTimeout bounds startup pings and graceful shutdown of external resources.
const DefaultTimeout = 10 * time.Second
