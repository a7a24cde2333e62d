package delivery

import "context"

// Delivery is a transport that serves until it fails or is shut down.
type Delivery interface {
	Serve(ctx context.Context) error
}
