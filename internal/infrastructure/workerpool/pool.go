package workerpool

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/panjf2000/ants/v2"
)

// ErrPoolOverload is returned by Submit when every worker is busy.
var ErrPoolOverload = ants.ErrPoolOverload

// Pool runs fire-and-forget tasks on a bounded set of goroutines.
// Submit never blocks: when the pool is full the task is rejected.
type Pool struct {
	pool   *ants.Pool
	logger *slog.Logger
}

type antsLogger struct {
	logger *slog.Logger
}

func (l antsLogger) Printf(format string, args ...any) {
	l.logger.Debug(fmt.Sprintf(format, args...), "component", "workerpool")
}

// New creates a pool of at most size concurrent workers.
func New(size int, logger *slog.Logger) (*Pool, error) {
	if logger == nil {
		logger = slog.Default()
	}
	p, err := ants.NewPool(size,
		ants.WithNonblocking(true),
		ants.WithLogger(antsLogger{logger: logger}),
		ants.WithPanicHandler(func(v any) {
			logger.Error("background task panicked",
				slog.Any("panic", v),
				slog.String("stack", string(debug.Stack())),
			)
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("workerpool: create: %w", err)
	}
	return &Pool{pool: p, logger: logger}, nil
}

// Submit schedules task. It fails fast if ctx is done or the pool is full.
func (p *Pool) Submit(ctx context.Context, task func()) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return p.pool.Submit(task)
}

// Running is the number of tasks currently executing.
func (p *Pool) Running() int {
	return p.pool.Running()
}

// Shutdown waits up to timeout for running tasks, then releases the pool.
func (p *Pool) Shutdown(timeout time.Duration) error {
	if err := p.pool.ReleaseTimeout(timeout); err != nil {
		return fmt.Errorf("workerpool: release: %w", err)
	}
	return nil
}
