package batch_update_availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mentara/scheduling-service/internal/domain"
)

type fakeAvailabilityRepo struct {
	overrides map[domain.SlotKey]*domain.AvailabilityOverride
	upserts   int
	deleted   int64
}

func newFakeAvailabilityRepo() *fakeAvailabilityRepo {
	return &fakeAvailabilityRepo{overrides: make(map[domain.SlotKey]*domain.AvailabilityOverride)}
}

func (f *fakeAvailabilityRepo) ListByExpertDateRange(_ context.Context, _ int64, from, to time.Time) ([]*domain.AvailabilityOverride, error) {
	var result []*domain.AvailabilityOverride
	for _, o := range f.overrides {
		if !o.Date.Before(from) && !o.Date.After(to) {
			result = append(result, o)
		}
	}
	return result, nil
}

func (f *fakeAvailabilityRepo) UpsertBatch(_ context.Context, overrides []*domain.AvailabilityOverride) error {
	for _, o := range overrides {
		copied := *o
		f.overrides[o.Key()] = &copied
		f.upserts++
	}
	return nil
}

func (f *fakeAvailabilityRepo) DeleteBefore(_ context.Context, _ int64, cutoff time.Time) (int64, error) {
	var removed int64
	for key, o := range f.overrides {
		if o.Date.Before(cutoff) {
			delete(f.overrides, key)
			removed++
		}
	}
	f.deleted += removed
	return removed, nil
}

type fakeAppointmentRepo struct {
	appointments []*domain.Appointment
}

func (f *fakeAppointmentRepo) ListActiveByExpertDateRange(_ context.Context, _ int64, _, _ time.Time) ([]*domain.Appointment, error) {
	return f.appointments, nil
}

type fakeTxManager struct{}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct{ t time.Time }

func (f *fixedTime) Now() time.Time { return f.t }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var testNow = time.Date(2026, time.September, 1, 7, 0, 0, 0, time.Local)

func day(offset int) time.Time {
	return domain.Midnight(testNow).AddDate(0, 0, offset)
}

func newTestUseCase(avail *fakeAvailabilityRepo, appts *fakeAppointmentRepo) *UseCase {
	return NewUseCase(avail, appts, &fakeTxManager{}, nopLogger{}).
		WithTimeProvider(&fixedTime{t: testNow})
}

func TestExecute_BlockAndUnblock(t *testing.T) {
	avail := newFakeAvailabilityRepo()
	uc := newTestUseCase(avail, &fakeAppointmentRepo{})

	resp, err := uc.Execute(context.Background(), &Request{
		ExpertID: 1,
		Updates: []Entry{
			{DayOffset: 2, PeriodIndex: 0, Available: false},
			{DayOffset: 2, PeriodIndex: 1, Available: false},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.AppliedCount)
	assert.Empty(t, resp.Rejected)

	key := domain.SlotKeyOf(day(2), 0)
	require.Contains(t, avail.overrides, key)
	assert.True(t, avail.overrides[key].Blocked)

	// Открываем один из закрытых слотов обратно
	resp, err = uc.Execute(context.Background(), &Request{
		ExpertID: 1,
		Updates:  []Entry{{DayOffset: 2, PeriodIndex: 0, Available: true}},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.AppliedCount)
	assert.False(t, avail.overrides[key].Blocked)
}

func TestExecute_PartialSuccess(t *testing.T) {
	avail := newFakeAvailabilityRepo()
	appts := &fakeAppointmentRepo{appointments: []*domain.Appointment{
		{ExpertID: 1, Date: day(5), PeriodIndex: 3, Status: domain.StatusConfirmed},
	}}
	uc := newTestUseCase(avail, appts)

	resp, err := uc.Execute(context.Background(), &Request{
		ExpertID: 1,
		Updates: []Entry{
			{DayOffset: 1, PeriodIndex: 2, Available: false},  // валидный
			{DayOffset: 20, PeriodIndex: 0, Available: false}, // вне окна
			{DayOffset: 3, PeriodIndex: 9, Available: false},  // нет такого периода
			{DayOffset: 5, PeriodIndex: 3, Available: false},  // занят записью
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, resp.AppliedCount)
	require.Len(t, resp.Rejected, 3)

	assert.Equal(t, RejectedEntry{DayOffset: 20, PeriodIndex: 0, Reason: ReasonOutOfRange}, resp.Rejected[0])
	assert.Equal(t, RejectedEntry{DayOffset: 3, PeriodIndex: 9, Reason: ReasonOutOfRange}, resp.Rejected[1])
	assert.Equal(t, RejectedEntry{DayOffset: 5, PeriodIndex: 3, Reason: ReasonSlotBooked}, resp.Rejected[2])
}

func TestExecute_RejectionReasons(t *testing.T) {
	avail := newFakeAvailabilityRepo()
	appts := &fakeAppointmentRepo{appointments: []*domain.Appointment{
		{ExpertID: 1, Date: day(0), PeriodIndex: 5, Status: domain.StatusPending},
	}}

	// 10:30: утренние периоды сегодняшнего дня уже прошли
	now := time.Date(2026, time.September, 1, 10, 30, 0, 0, time.Local)
	uc := NewUseCase(avail, appts, &fakeTxManager{}, nopLogger{}).
		WithTimeProvider(&fixedTime{t: now})

	resp, err := uc.Execute(context.Background(), &Request{
		ExpertID: 1,
		Updates: []Entry{
			{DayOffset: 0, PeriodIndex: 0, Available: false},  // 08:00 прошёл
			{DayOffset: 0, PeriodIndex: 5, Available: false},  // занят
			{DayOffset: -1, PeriodIndex: 0, Available: false}, // вне окна
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 0, resp.AppliedCount)
	require.Len(t, resp.Rejected, 3)
	assert.Equal(t, ReasonSlotExpired, resp.Rejected[0].Reason)
	assert.Equal(t, ReasonSlotBooked, resp.Rejected[1].Reason)
	assert.Equal(t, ReasonOutOfRange, resp.Rejected[2].Reason)
}

func TestExecute_IdempotentSecondCall(t *testing.T) {
	avail := newFakeAvailabilityRepo()
	uc := newTestUseCase(avail, &fakeAppointmentRepo{})

	req := &Request{
		ExpertID: 1,
		Updates: []Entry{
			{DayOffset: 4, PeriodIndex: 2, Available: false},
			{DayOffset: 4, PeriodIndex: 3, Available: false},
		},
	}

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 2, resp.AppliedCount)

	// Повтор того же пакета ничего не меняет
	resp, err = uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 0, resp.AppliedCount)
	assert.Empty(t, resp.Rejected)
	assert.Equal(t, 2, avail.upserts)
}

func TestExecute_UnblockAbsentSlotIsNoop(t *testing.T) {
	avail := newFakeAvailabilityRepo()
	uc := newTestUseCase(avail, &fakeAppointmentRepo{})

	// Слот без строки блокировки и так открыт
	resp, err := uc.Execute(context.Background(), &Request{
		ExpertID: 1,
		Updates:  []Entry{{DayOffset: 6, PeriodIndex: 1, Available: true}},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, resp.AppliedCount)
	assert.Empty(t, resp.Rejected)
	assert.Equal(t, 0, avail.upserts)
}

func TestExecute_DuplicateAddressLastEntryWins(t *testing.T) {
	avail := newFakeAvailabilityRepo()
	uc := newTestUseCase(avail, &fakeAppointmentRepo{})

	// Первый элемент сам по себе ничего не меняет (слот и так открыт),
	// но побеждает последний: слот должен закрыться
	resp, err := uc.Execute(context.Background(), &Request{
		ExpertID: 1,
		Updates: []Entry{
			{DayOffset: 7, PeriodIndex: 4, Available: true},
			{DayOffset: 7, PeriodIndex: 4, Available: false},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.AppliedCount)
	assert.Empty(t, resp.Rejected)

	key := domain.SlotKeyOf(day(7), 4)
	require.Contains(t, avail.overrides, key)
	assert.True(t, avail.overrides[key].Blocked)
}

func TestExecute_DuplicateRevertToCurrentStateWritesNothing(t *testing.T) {
	avail := newFakeAvailabilityRepo()
	uc := newTestUseCase(avail, &fakeAppointmentRepo{})

	// Закрыть и тут же открыть: итоговое состояние совпадает с текущим,
	// поэтому не пишется ни одной строки
	resp, err := uc.Execute(context.Background(), &Request{
		ExpertID: 1,
		Updates: []Entry{
			{DayOffset: 7, PeriodIndex: 4, Available: false},
			{DayOffset: 7, PeriodIndex: 4, Available: true},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, resp.AppliedCount)
	assert.Empty(t, resp.Rejected)
	assert.Equal(t, 0, avail.upserts)
	assert.NotContains(t, avail.overrides, domain.SlotKeyOf(day(7), 4))
}

func TestExecute_ReclaimsStaleOverrides(t *testing.T) {
	avail := newFakeAvailabilityRepo()
	stale := &domain.AvailabilityOverride{ExpertID: 1, Date: day(-10), PeriodIndex: 0, Blocked: true}
	avail.overrides[stale.Key()] = stale

	uc := newTestUseCase(avail, &fakeAppointmentRepo{})

	_, err := uc.Execute(context.Background(), &Request{
		ExpertID: 1,
		Updates:  []Entry{{DayOffset: 1, PeriodIndex: 0, Available: false}},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), avail.deleted)
	assert.NotContains(t, avail.overrides, stale.Key())
}

func TestExecute_ValidationErrors(t *testing.T) {
	uc := newTestUseCase(newFakeAvailabilityRepo(), &fakeAppointmentRepo{})

	t.Run("zero expert", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), &Request{Updates: []Entry{{DayOffset: 0, PeriodIndex: 0}}})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("empty batch", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), &Request{ExpertID: 1})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("oversized batch", func(t *testing.T) {
		updates := make([]Entry, maxBatchSize+1)
		_, err := uc.Execute(context.Background(), &Request{ExpertID: 1, Updates: updates})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
