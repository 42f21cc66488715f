package scheduler

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/aekiratli/medicine-reminder/internal/domain"
	"github.com/aekiratli/medicine-reminder/internal/store"
)

// Notifier is the minimal interface the scheduler needs to deliver a
// reminder text to a chat. telegram.Router implements it.
type Notifier interface {
	Notify(chatID int64, text string) error
}

// Clock supplies the current instant. Tests inject a fixed clock.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns a Clock backed by time.Now.
func SystemClock() Clock { return systemClock{} }

// Scheduler periodically sweeps the store and dispatches due medicines.
type Scheduler struct {
	repo         store.Repo
	log          *zap.Logger
	notifier     Notifier
	clock        Clock
	tick         time.Duration
	initialDelay time.Duration

	sweeping atomic.Bool
}

// New creates a Scheduler polling at the given tick. The first sweep
// runs after initialDelay (zero means immediately).
func New(repo store.Repo, log *zap.Logger, notifier Notifier, clock Clock, tick, initialDelay time.Duration) *Scheduler {
	if clock == nil {
		clock = SystemClock()
	}
	return &Scheduler{
		repo:         repo,
		log:          log,
		notifier:     notifier,
		clock:        clock,
		tick:         tick,
		initialDelay: initialDelay,
	}
}

// Run starts the loop until ctx is canceled.
func (s *Scheduler) Run(ctx context.Context) {
	if s.initialDelay > 0 {
		select {
		case <-ctx.Done():
			return
		case <-time.After(s.initialDelay):
		}
	}
	s.Sweep(ctx)

	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("scheduler stopping")
			return
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

// Sweep performs one due-check-and-advance cycle over all medicines.
// Overlapping sweeps are skipped so a slow cycle cannot advance the
// same medicine twice.
func (s *Scheduler) Sweep(ctx context.Context) {
	if !s.sweeping.CompareAndSwap(false, true) {
		s.log.Warn("previous sweep still running, skipping tick")
		return
	}
	defer s.sweeping.Store(false)

	now := s.clock.Now()

	medicines, err := s.repo.ListAllMedicines(ctx)
	if err != nil {
		// Nothing to iterate; the next tick retries.
		s.log.Error("list medicines failed", zap.Error(err))
		return
	}

	var fired, failed int
	for _, m := range medicines {
		if m.NextRun.After(now) {
			continue
		}
		// Due, boundary inclusive. Delivery failure is isolated per
		// medicine and the schedule advances either way: a missed
		// delivery skips the cycle rather than blocking the sweep.
		if err := s.notify(ctx, m); err != nil {
			failed++
			s.log.Warn("notify failed",
				zap.Error(err),
				zap.String("medicine", m.Name),
				zap.Int64("userID", m.UserID),
			)
		} else {
			fired++
		}

		next := domain.NextRun(m.NextRun, m.IntervalDays)
		if err := s.repo.SetNextRun(ctx, m.ID, next); err != nil {
			s.log.Error("advance next run failed",
				zap.Error(err),
				zap.String("medicine", m.Name),
				zap.Int64("id", m.ID),
			)
		}
	}

	if fired > 0 || failed > 0 {
		s.log.Info("sweep finished",
			zap.Int("fired", fired),
			zap.Int("failed", failed),
			zap.Int("total", len(medicines)),
		)
	}
}

func (s *Scheduler) notify(ctx context.Context, m domain.Medicine) error {
	u, err := s.repo.GetUserByID(ctx, m.UserID)
	if err != nil {
		return err
	}
	text := fmt.Sprintf("It's time to take your medicine: %s!", m.Name)
	return s.notifier.Notify(u.ChatID, text)
}
