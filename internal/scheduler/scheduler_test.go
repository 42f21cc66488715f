package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aekiratli/medicine-reminder/internal/domain"
	"github.com/aekiratli/medicine-reminder/internal/store"
)

type fixedClock struct{ now time.Time }

func (c *fixedClock) Now() time.Time { return c.now }

type fakeNotifier struct {
	sent    []string
	failFor map[int64]error // chatID -> forced error
}

func (n *fakeNotifier) Notify(chatID int64, text string) error {
	if err := n.failFor[chatID]; err != nil {
		return err
	}
	n.sent = append(n.sent, text)
	return nil
}

func newSweepFixture(t *testing.T, now time.Time) (*store.MemoryRepo, *fakeNotifier, *fixedClock, *Scheduler) {
	t.Helper()
	repo := store.NewMemory()
	notifier := &fakeNotifier{failFor: map[int64]error{}}
	clock := &fixedClock{now: now}
	sched := New(repo, zap.NewNop(), notifier, clock, time.Minute, 0)
	return repo, notifier, clock, sched
}

func TestSweep_DueAtExactInstant(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, time.January, 3, 9, 0, 0, 0, time.Local)
	repo, notifier, _, sched := newSweepFixture(t, now)

	u, err := repo.CreateUser(ctx, 100)
	require.NoError(t, err)
	m := &domain.Medicine{UserID: u.ID, Name: "aspirin", IntervalDays: 2, TimeOfDay: "09:00", NextRun: now}
	require.NoError(t, repo.CreateMedicine(ctx, m))

	sched.Sweep(ctx)

	// nextRun == now counts as due.
	require.Len(t, notifier.sent, 1)
	require.Contains(t, notifier.sent[0], "aspirin")

	all, err := repo.ListAllMedicines(ctx)
	require.NoError(t, err)
	require.True(t, all[0].NextRun.Equal(now.AddDate(0, 0, 2)))
}

func TestSweep_NotYetDueIsUntouched(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, time.January, 3, 8, 59, 0, 0, time.Local)
	repo, notifier, _, sched := newSweepFixture(t, now)

	u, err := repo.CreateUser(ctx, 100)
	require.NoError(t, err)
	next := time.Date(2024, time.January, 3, 9, 0, 0, 0, time.Local)
	m := &domain.Medicine{UserID: u.ID, Name: "aspirin", IntervalDays: 2, TimeOfDay: "09:00", NextRun: next}
	require.NoError(t, repo.CreateMedicine(ctx, m))

	sched.Sweep(ctx)

	require.Empty(t, notifier.sent)
	all, err := repo.ListAllMedicines(ctx)
	require.NoError(t, err)
	require.True(t, all[0].NextRun.Equal(next))
}

func TestSweep_DeliveryFailureIsolatedAndBothAdvance(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.Local)
	repo, notifier, _, sched := newSweepFixture(t, now)

	ua, err := repo.CreateUser(ctx, 1)
	require.NoError(t, err)
	ub, err := repo.CreateUser(ctx, 2)
	require.NoError(t, err)
	notifier.failFor[ua.ChatID] = errors.New("chat unreachable")

	a := &domain.Medicine{UserID: ua.ID, Name: "a", IntervalDays: 1, TimeOfDay: "12:00", NextRun: now}
	b := &domain.Medicine{UserID: ub.ID, Name: "b", IntervalDays: 1, TimeOfDay: "12:00", NextRun: now}
	require.NoError(t, repo.CreateMedicine(ctx, a))
	require.NoError(t, repo.CreateMedicine(ctx, b))

	sched.Sweep(ctx)

	// B was delivered despite A's failure.
	require.Len(t, notifier.sent, 1)
	require.Contains(t, notifier.sent[0], "b")

	// Both schedules advance: a failed delivery skips the cycle, it is
	// not retried.
	advanced := now.AddDate(0, 0, 1)
	all, err := repo.ListAllMedicines(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	for _, m := range all {
		require.True(t, m.NextRun.Equal(advanced), "medicine %s: want %v, got %v", m.Name, advanced, m.NextRun)
	}
}

func TestSweep_SecondSweepSameInstantDoesNotRefire(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.Local)
	repo, notifier, _, sched := newSweepFixture(t, now)

	u, err := repo.CreateUser(ctx, 1)
	require.NoError(t, err)
	m := &domain.Medicine{UserID: u.ID, Name: "a", IntervalDays: 1, TimeOfDay: "12:00", NextRun: now}
	require.NoError(t, repo.CreateMedicine(ctx, m))

	sched.Sweep(ctx)
	sched.Sweep(ctx)

	require.Len(t, notifier.sent, 1)
}

func TestSweep_EndToEnd(t *testing.T) {
	ctx := context.Background()
	createdAt := time.Date(2024, time.January, 1, 10, 0, 0, 0, time.Local)
	repo, notifier, clock, sched := newSweepFixture(t, createdAt)

	u, err := repo.CreateUser(ctx, 100)
	require.NoError(t, err)

	// Creation at 10:00 with time-of-day 09:00: today's slot already
	// passed, so the first run lands a full interval out.
	next := domain.InitialNextRun(createdAt, 9, 0, 2)
	require.True(t, next.Equal(time.Date(2024, time.January, 3, 9, 0, 0, 0, time.Local)))

	m := &domain.Medicine{UserID: u.ID, Name: "aspirin", IntervalDays: 2, TimeOfDay: "09:00", NextRun: next}
	require.NoError(t, repo.CreateMedicine(ctx, m))

	clock.now = next
	sched.Sweep(ctx)

	require.Len(t, notifier.sent, 1)
	require.Equal(t, "It's time to take your medicine: aspirin!", notifier.sent[0])

	all, err := repo.ListAllMedicines(ctx)
	require.NoError(t, err)
	require.True(t, all[0].NextRun.Equal(time.Date(2024, time.January, 5, 9, 0, 0, 0, time.Local)))
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	_, _, _, sched := newSweepFixture(t, time.Now())

	done := make(chan struct{})
	go func() {
		sched.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop after cancel")
	}
}
