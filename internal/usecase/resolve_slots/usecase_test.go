package resolve_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mentara/scheduling-service/internal/domain"
)

type fakeAppointmentRepo struct {
	appointments []*domain.Appointment
	err          error
}

func (f *fakeAppointmentRepo) ListActiveByExpertDateRange(_ context.Context, _ int64, _, _ time.Time) ([]*domain.Appointment, error) {
	if f.err != nil {
		return nil, f.err
	}
	var active []*domain.Appointment
	for _, a := range f.appointments {
		if a.IsActive() {
			active = append(active, a)
		}
	}
	return active, nil
}

type fakeAvailabilityRepo struct {
	overrides []*domain.AvailabilityOverride
	err       error
}

func (f *fakeAvailabilityRepo) ListByExpertDateRange(_ context.Context, _ int64, _, _ time.Time) ([]*domain.AvailabilityOverride, error) {
	return f.overrides, f.err
}

type fakeTxManager struct{}

func (f *fakeTxManager) DoRepeatableRead(ctx context.Context, fn func(ctx context.Context) error) error {
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

func newTestUseCase(appts *fakeAppointmentRepo, overrides *fakeAvailabilityRepo) *UseCase {
	return NewUseCase(appts, overrides, &fakeTxManager{}, nopLogger{}).
		WithTimeProvider(&fixedTime{t: testNow})
}

func TestExecute_EmptyGridIsAllFree(t *testing.T) {
	uc := newTestUseCase(&fakeAppointmentRepo{}, &fakeAvailabilityRepo{})

	resp, err := uc.Execute(context.Background(), &Request{ExpertID: 1})
	require.NoError(t, err)

	assert.Equal(t, domain.Midnight(testNow), resp.BaseDate)
	for d := 0; d < domain.WindowDays; d++ {
		for p := 0; p < domain.PeriodsPerDay; p++ {
			assert.Equal(t, domain.SlotFree, resp.Grid[d][p])
		}
	}
}

func TestExecute_ActiveAppointmentMarksSlotBooked(t *testing.T) {
	appts := &fakeAppointmentRepo{appointments: []*domain.Appointment{
		{ExpertID: 1, Date: day(3), PeriodIndex: 2, Status: domain.StatusPending},
		{ExpertID: 1, Date: day(5), PeriodIndex: 7, Status: domain.StatusConfirmed},
	}}
	uc := newTestUseCase(appts, &fakeAvailabilityRepo{})

	resp, err := uc.Execute(context.Background(), &Request{ExpertID: 1})
	require.NoError(t, err)

	assert.Equal(t, domain.SlotBooked, resp.Grid[3][2])
	assert.Equal(t, domain.SlotBooked, resp.Grid[5][7])
	assert.Equal(t, domain.SlotFree, resp.Grid[3][3])
}

func TestExecute_OverrideMarksSlotBlocked(t *testing.T) {
	overrides := &fakeAvailabilityRepo{overrides: []*domain.AvailabilityOverride{
		{ExpertID: 1, Date: day(2), PeriodIndex: 0, Blocked: true},
		{ExpertID: 1, Date: day(2), PeriodIndex: 1, Blocked: false}, // снятая блокировка
	}}
	uc := newTestUseCase(&fakeAppointmentRepo{}, overrides)

	resp, err := uc.Execute(context.Background(), &Request{ExpertID: 1})
	require.NoError(t, err)

	assert.Equal(t, domain.SlotBlocked, resp.Grid[2][0])
	assert.Equal(t, domain.SlotFree, resp.Grid[2][1])
}

func TestExecute_TerminalAppointmentFreesSlot(t *testing.T) {
	appts := &fakeAppointmentRepo{appointments: []*domain.Appointment{
		{ExpertID: 1, Date: day(6), PeriodIndex: 1, Status: domain.StatusCancelled},
		{ExpertID: 1, Date: day(6), PeriodIndex: 2, Status: domain.StatusRejected},
		{ExpertID: 1, Date: day(6), PeriodIndex: 3, Status: domain.StatusConfirmed},
	}}
	uc := newTestUseCase(appts, &fakeAvailabilityRepo{})

	resp, err := uc.Execute(context.Background(), &Request{ExpertID: 1})
	require.NoError(t, err)

	assert.Equal(t, domain.SlotFree, resp.Grid[6][1])
	assert.Equal(t, domain.SlotFree, resp.Grid[6][2])
	assert.Equal(t, domain.SlotBooked, resp.Grid[6][3])
}

func TestExecute_BookedWinsOverBlocked(t *testing.T) {
	appts := &fakeAppointmentRepo{appointments: []*domain.Appointment{
		{ExpertID: 1, Date: day(4), PeriodIndex: 5, Status: domain.StatusConfirmed},
	}}
	overrides := &fakeAvailabilityRepo{overrides: []*domain.AvailabilityOverride{
		{ExpertID: 1, Date: day(4), PeriodIndex: 5, Blocked: true},
	}}
	uc := newTestUseCase(appts, overrides)

	resp, err := uc.Execute(context.Background(), &Request{ExpertID: 1})
	require.NoError(t, err)

	assert.Equal(t, domain.SlotBooked, resp.Grid[4][5])
}

func TestExecute_BookableMatrixMatchesFreeMask(t *testing.T) {
	appts := &fakeAppointmentRepo{appointments: []*domain.Appointment{
		{ExpertID: 1, Date: day(0), PeriodIndex: 0, Status: domain.StatusPending},
	}}
	overrides := &fakeAvailabilityRepo{overrides: []*domain.AvailabilityOverride{
		{ExpertID: 1, Date: day(1), PeriodIndex: 3, Blocked: true},
	}}
	uc := newTestUseCase(appts, overrides)

	resp, err := uc.Execute(context.Background(), &Request{ExpertID: 1})
	require.NoError(t, err)

	matrix := resp.BookableMatrix()
	for d := 0; d < domain.WindowDays; d++ {
		for p := 0; p < domain.PeriodsPerDay; p++ {
			assert.Equal(t, resp.Grid[d][p] == domain.SlotFree, matrix[p][d],
				"day=%d period=%d", d, p)
		}
	}
}

func TestExecute_PastFlagsFollowClock(t *testing.T) {
	// 10:30: периоды 08:00-10:00 сегодняшнего дня уже прошли
	now := time.Date(2026, time.September, 1, 10, 30, 0, 0, time.Local)
	uc := NewUseCase(&fakeAppointmentRepo{}, &fakeAvailabilityRepo{}, &fakeTxManager{}, nopLogger{}).
		WithTimeProvider(&fixedTime{t: now})

	resp, err := uc.Execute(context.Background(), &Request{ExpertID: 1})
	require.NoError(t, err)

	assert.True(t, resp.IsPast[0][0])
	assert.True(t, resp.IsPast[0][2])
	assert.False(t, resp.IsPast[0][3])
	assert.False(t, resp.IsPast[1][0])
}

func TestExecute_InvalidExpertID(t *testing.T) {
	uc := newTestUseCase(&fakeAppointmentRepo{}, &fakeAvailabilityRepo{})

	_, err := uc.Execute(context.Background(), &Request{ExpertID: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_RepositoryErrorSurfacesAsInternal(t *testing.T) {
	appts := &fakeAppointmentRepo{err: errors.New("connection refused")}
	uc := newTestUseCase(appts, &fakeAvailabilityRepo{})

	_, err := uc.Execute(context.Background(), &Request{ExpertID: 1})
	assert.ErrorIs(t, err, ErrInternal)
}
