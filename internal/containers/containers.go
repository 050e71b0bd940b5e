// Package containers provides test container utilities
package containers

import "context"

type Container interface {
	Terminate(ctx context.Context)
}
