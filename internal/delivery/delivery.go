// Package delivery defines the contract every transport-facing server in the
// application satisfies, so the composition root can start them uniformly.
package delivery

import "context"

// Delivery is a long-running server. Serve blocks until the server stops or
// the context is cancelled; shutdown is driven through lifecycle hooks.
type Delivery interface {
	Serve(ctx context.Context) error
}
