package output

import "context"

// TaskRunner runs fire-and-forget work off the request path.
type TaskRunner interface {
	Submit(ctx context.Context, task func()) error
}
