package scanner

import (
	"context"
	"log/slog"
	"time"

	"github.com/nicholasadamou/avscan-api/internal/domain"
	"golang.org/x/sync/semaphore"
)

type Invoker interface {
	Invoke(ctx context.Context, path string) *domain.Invocation
}

// Service runs scans through an Invoker, bounding both the number of
// concurrent engine processes and the time a single scan may take.
type Service struct {
	log     *slog.Logger
	invoker Invoker
	timeout time.Duration
	sem     *semaphore.Weighted // nil when the cap is disabled
}

// NewService creates a scan service. timeout <= 0 disables the per-scan
// deadline and maxConcurrent <= 0 disables the process cap.
func NewService(log *slog.Logger, invoker Invoker, timeout time.Duration, maxConcurrent int64) *Service {
	var sem *semaphore.Weighted
	if maxConcurrent > 0 {
		sem = semaphore.NewWeighted(maxConcurrent)
	}

	return &Service{
		log:     log,
		invoker: invoker,
		timeout: timeout,
		sem:     sem,
	}
}

// Scan runs the engine against path and interprets the result. It blocks
// until the engine terminates, the timeout expires, or ctx is cancelled.
// Every failure mode is folded into the returned outcome.
func (s *Service) Scan(ctx context.Context, path string) domain.Outcome {
	if s.sem != nil {
		if err := s.sem.Acquire(ctx, 1); err != nil {
			return domain.Failed(err.Error())
		}
		defer s.sem.Release(1)
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	inv := s.invoker.Invoke(ctx, path)
	outcome := Interpret(inv)

	s.log.DebugContext(ctx, "scan finished",
		slog.String("path", path),
		slog.Int("exit_code", inv.ExitCode),
		slog.String("verdict", string(outcome.Verdict)),
	)

	return outcome
}
