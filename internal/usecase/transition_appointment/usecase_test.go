package transition_appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mentara/scheduling-service/internal/domain"
	appointmentRepo "github.com/mentara/scheduling-service/internal/infra/storage/appointment"
	"github.com/mentara/scheduling-service/pkg/ptr"
)

type fakeAppointmentRepo struct {
	byID map[int64]*domain.Appointment
}

func newFakeAppointmentRepo(appts ...*domain.Appointment) *fakeAppointmentRepo {
	f := &fakeAppointmentRepo{byID: make(map[int64]*domain.Appointment)}
	for _, a := range appts {
		f.byID[a.ID] = a
	}
	return f
}

func (f *fakeAppointmentRepo) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	if a, ok := f.byID[id]; ok {
		copied := *a
		return &copied, nil
	}
	return nil, appointmentRepo.ErrAppointmentNotFound
}

func (f *fakeAppointmentRepo) UpdateStatus(_ context.Context, id int64, status domain.AppointmentStatus, reply *string) error {
	a, ok := f.byID[id]
	if !ok {
		return appointmentRepo.ErrAppointmentNotFound
	}
	a.Status = status
	if reply != nil {
		a.ExpertReply = reply
	}
	return nil
}

func (f *fakeAppointmentRepo) UpdateReply(_ context.Context, id int64, reply string) error {
	a, ok := f.byID[id]
	if !ok {
		return appointmentRepo.ErrAppointmentNotFound
	}
	a.ExpertReply = &reply
	return nil
}

func (f *fakeAppointmentRepo) UpdateRating(_ context.Context, id int64, rating int, comment string) error {
	a, ok := f.byID[id]
	if !ok {
		return appointmentRepo.ErrAppointmentNotFound
	}
	a.Rating = &rating
	a.UserRating = &comment
	return nil
}

type fakeTxManager struct{}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeNotifyClient struct {
	events []domain.AppointmentEvent
}

func (f *fakeNotifyClient) PublishBestEffort(_ context.Context, event domain.AppointmentEvent) {
	f.events = append(f.events, event)
}

type fixedTime struct{ t time.Time }

func (f *fixedTime) Now() time.Time { return f.t }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

const (
	expertID = int64(10)
	userID   = int64(100)
)

var testNow = time.Date(2026, time.September, 1, 18, 0, 0, 0, time.Local)

func appointment(status domain.AppointmentStatus) *domain.Appointment {
	// Приём 1 сентября в 14:00, к testNow (18:00) уже завершился
	return &domain.Appointment{
		ID:              1,
		ExpertID:        expertID,
		UserID:          userID,
		Date:            time.Date(2026, time.September, 1, 0, 0, 0, 0, time.Local),
		PeriodIndex:     4,
		DurationMinutes: domain.AppointmentDurationMinutes,
		Status:          status,
	}
}

func newTestUseCase(repo *fakeAppointmentRepo) (*UseCase, *fakeNotifyClient) {
	notify := &fakeNotifyClient{}
	uc := NewUseCase(repo, &fakeTxManager{}, notify, nopLogger{}).
		WithTimeProvider(&fixedTime{t: testNow})
	return uc, notify
}

func request(op Operation, actorID int64) *Request {
	return &Request{AppointmentID: 1, ActorID: actorID, Operation: op}
}

func TestExecute_Confirm(t *testing.T) {
	repo := newFakeAppointmentRepo(appointment(domain.StatusPending))
	uc, notify := newTestUseCase(repo)

	req := request(OpConfirm, expertID)
	req.Reply = ptr.Ptr("see you at 14:00")

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	require.NotNil(t, resp.ExpertReply)
	assert.Equal(t, "see you at 14:00", *resp.ExpertReply)

	require.Len(t, notify.events, 1)
	assert.Equal(t, domain.EventAppointmentStatusChanged, notify.events[0].Type)
	assert.Equal(t, domain.StatusPending, notify.events[0].OldStatus)
	assert.Equal(t, domain.StatusConfirmed, notify.events[0].NewStatus)
}

func TestExecute_TransitionLegality(t *testing.T) {
	// Полная таблица: операция × исходный статус
	cases := []struct {
		op      Operation
		actor   int64
		from    domain.AppointmentStatus
		allowed bool
	}{
		{OpConfirm, expertID, domain.StatusPending, true},
		{OpConfirm, expertID, domain.StatusConfirmed, false},
		{OpConfirm, expertID, domain.StatusRejected, false},
		{OpConfirm, expertID, domain.StatusCancelled, false},
		{OpConfirm, expertID, domain.StatusCompleted, false},

		{OpReject, expertID, domain.StatusPending, true},
		{OpReject, expertID, domain.StatusConfirmed, false},
		{OpReject, expertID, domain.StatusCompleted, false},

		{OpCancel, userID, domain.StatusConfirmed, true},
		{OpCancel, userID, domain.StatusPending, false},
		{OpCancel, userID, domain.StatusRejected, false},
		{OpCancel, userID, domain.StatusCompleted, false},

		{OpComplete, expertID, domain.StatusConfirmed, true},
		{OpComplete, expertID, domain.StatusPending, false},
		{OpComplete, expertID, domain.StatusCancelled, false},
		{OpComplete, expertID, domain.StatusCompleted, false},
	}

	for _, tc := range cases {
		t.Run(string(tc.op)+" from "+string(tc.from), func(t *testing.T) {
			repo := newFakeAppointmentRepo(appointment(tc.from))
			uc, _ := newTestUseCase(repo)

			_, err := uc.Execute(context.Background(), request(tc.op, tc.actor))
			if tc.allowed {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidTransition)
			}
		})
	}
}

func TestExecute_Authorization(t *testing.T) {
	t.Run("user cannot confirm", func(t *testing.T) {
		repo := newFakeAppointmentRepo(appointment(domain.StatusPending))
		uc, _ := newTestUseCase(repo)

		_, err := uc.Execute(context.Background(), request(OpConfirm, userID))
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("expert cannot cancel", func(t *testing.T) {
		repo := newFakeAppointmentRepo(appointment(domain.StatusConfirmed))
		uc, _ := newTestUseCase(repo)

		_, err := uc.Execute(context.Background(), request(OpCancel, expertID))
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("stranger can do nothing", func(t *testing.T) {
		repo := newFakeAppointmentRepo(appointment(domain.StatusConfirmed))
		uc, _ := newTestUseCase(repo)

		_, err := uc.Execute(context.Background(), request(OpCancel, 999))
		assert.ErrorIs(t, err, ErrAccessDenied)
	})
}

func TestExecute_CompleteTimeGate(t *testing.T) {
	t.Run("before end of appointment", func(t *testing.T) {
		repo := newFakeAppointmentRepo(appointment(domain.StatusConfirmed))
		uc, _ := newTestUseCase(repo)
		// 14:30 — приём 14:00-14:55 ещё идёт
		uc.WithTimeProvider(&fixedTime{t: time.Date(2026, time.September, 1, 14, 30, 0, 0, time.Local)})

		_, err := uc.Execute(context.Background(), request(OpComplete, expertID))
		assert.ErrorIs(t, err, ErrAppointmentNotEnded)
	})

	t.Run("exactly at end", func(t *testing.T) {
		repo := newFakeAppointmentRepo(appointment(domain.StatusConfirmed))
		uc, _ := newTestUseCase(repo)
		uc.WithTimeProvider(&fixedTime{t: time.Date(2026, time.September, 1, 14, 55, 0, 0, time.Local)})

		resp, err := uc.Execute(context.Background(), request(OpComplete, expertID))
		require.NoError(t, err)
		assert.Equal(t, string(domain.StatusCompleted), resp.Status)
	})
}

func TestExecute_Reply(t *testing.T) {
	t.Run("annotation does not change status", func(t *testing.T) {
		repo := newFakeAppointmentRepo(appointment(domain.StatusConfirmed))
		uc, notify := newTestUseCase(repo)

		req := request(OpReply, expertID)
		req.Reply = ptr.Ptr("please prepare your documents")

		resp, err := uc.Execute(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
		require.NotNil(t, resp.ExpertReply)
		assert.Equal(t, "please prepare your documents", *resp.ExpertReply)

		// Без смены статуса события нет
		assert.Empty(t, notify.events)
	})

	t.Run("reply on pending is not allowed", func(t *testing.T) {
		repo := newFakeAppointmentRepo(appointment(domain.StatusPending))
		uc, _ := newTestUseCase(repo)

		req := request(OpReply, expertID)
		req.Reply = ptr.Ptr("note")

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("reply allowed on terminal statuses", func(t *testing.T) {
		for _, s := range []domain.AppointmentStatus{domain.StatusRejected, domain.StatusCancelled, domain.StatusCompleted} {
			repo := newFakeAppointmentRepo(appointment(s))
			uc, _ := newTestUseCase(repo)

			req := request(OpReply, expertID)
			req.Reply = ptr.Ptr("follow-up note")

			_, err := uc.Execute(context.Background(), req)
			assert.NoError(t, err, "status %s", s)
		}
	})

	t.Run("empty reply is rejected", func(t *testing.T) {
		repo := newFakeAppointmentRepo(appointment(domain.StatusConfirmed))
		uc, _ := newTestUseCase(repo)

		_, err := uc.Execute(context.Background(), request(OpReply, expertID))
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestExecute_Rate(t *testing.T) {
	t.Run("user rates completed appointment", func(t *testing.T) {
		repo := newFakeAppointmentRepo(appointment(domain.StatusCompleted))
		uc, notify := newTestUseCase(repo)

		req := request(OpRate, userID)
		req.Rating = ptr.Ptr(5)
		req.RatingComment = ptr.Ptr("very helpful")

		resp, err := uc.Execute(context.Background(), req)
		require.NoError(t, err)
		require.NotNil(t, resp.Rating)
		assert.Equal(t, 5, *resp.Rating)
		assert.Empty(t, notify.events)
	})

	t.Run("rating is accepted only once", func(t *testing.T) {
		appt := appointment(domain.StatusCompleted)
		appt.Rating = ptr.Ptr(4)
		repo := newFakeAppointmentRepo(appt)
		uc, _ := newTestUseCase(repo)

		req := request(OpRate, userID)
		req.Rating = ptr.Ptr(5)

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrAlreadyRated)
	})

	t.Run("rating out of range", func(t *testing.T) {
		repo := newFakeAppointmentRepo(appointment(domain.StatusCompleted))
		uc, _ := newTestUseCase(repo)

		for _, rating := range []int{0, 6, -1} {
			req := request(OpRate, userID)
			req.Rating = ptr.Ptr(rating)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput, "rating %d", rating)
		}
	})

	t.Run("rate before completion", func(t *testing.T) {
		repo := newFakeAppointmentRepo(appointment(domain.StatusConfirmed))
		uc, _ := newTestUseCase(repo)

		req := request(OpRate, userID)
		req.Rating = ptr.Ptr(5)

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})
}

func TestExecute_NotFound(t *testing.T) {
	repo := newFakeAppointmentRepo()
	uc, _ := newTestUseCase(repo)

	_, err := uc.Execute(context.Background(), request(OpConfirm, expertID))
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestExecute_UnknownOperation(t *testing.T) {
	repo := newFakeAppointmentRepo(appointment(domain.StatusPending))
	uc, _ := newTestUseCase(repo)

	_, err := uc.Execute(context.Background(), request(Operation("escalate"), expertID))
	assert.ErrorIs(t, err, ErrInvalidInput)
}
