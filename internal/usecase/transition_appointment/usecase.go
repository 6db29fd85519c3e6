package transition_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/mentara/scheduling-service/internal/domain"
	appointmentRepo "github.com/mentara/scheduling-service/internal/infra/storage/appointment"
)

// UseCase use case для операций жизненного цикла записи
//
// Таблица переходов:
//
//	PENDING   --confirm-->  CONFIRMED
//	PENDING   --reject-->   REJECTED   (слот снова виден свободным)
//	CONFIRMED --cancel-->   CANCELLED  (слот снова виден свободным)
//	CONFIRMED --complete--> COMPLETED  (только после окончания приёма)
//
// reject/cancel не пишут в сетку: Resolver выводит статус слота из активных
// записей, поэтому освобождение видно следующему resolve без каких-либо
// дополнительных действий и без кэша, который мог бы отдать устаревший BOOKED.
type UseCase struct {
	appointmentRepo AppointmentRepository
	txManager       TransactionManager
	notifyClient    NotificationClient
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	txManager TransactionManager,
	notifyClient NotificationClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		txManager:       txManager,
		notifyClient:    notifyClient,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// WithTimeProvider подменяет источник времени (используется в тестах)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет операцию жизненного цикла
// При отказе ничего не меняется: проверка и запись выполняются в одной
// транзакции, частичных состояний после ошибки не остаётся
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("TransitionAppointment: id=%d, op=%s, actor=%d",
		req.AppointmentID, req.Operation, req.ActorID)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("TransitionAppointment: validation failed: %v", err)
		return nil, err
	}

	var (
		updated   *domain.Appointment
		oldStatus domain.AppointmentStatus
	)

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		appt, err := uc.appointmentRepo.GetByID(txCtx, req.AppointmentID)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			uc.logger.Error("TransitionAppointment: failed to get appointment id=%d: %v", req.AppointmentID, err)
			return fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
		}

		oldStatus = appt.Status

		if err := uc.authorize(appt, req); err != nil {
			uc.logger.Warn("TransitionAppointment: actor=%d not allowed to %s appointment id=%d",
				req.ActorID, req.Operation, req.AppointmentID)
			return err
		}

		if err := uc.apply(txCtx, appt, req); err != nil {
			return err
		}

		updated = appt
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("TransitionAppointment: id=%d, %s -> %s",
		updated.ID, oldStatus, updated.Status)

	// Событие смены статуса для внешнего сервиса уведомлений;
	// reply и rate статус не меняют и событий не порождают
	if updated.Status != oldStatus {
		uc.notifyClient.PublishBestEffort(ctx, domain.AppointmentEvent{
			Type:          domain.EventAppointmentStatusChanged,
			AppointmentID: updated.ID,
			ExpertID:      updated.ExpertID,
			UserID:        updated.UserID,
			Date:          updated.Date,
			PeriodIndex:   updated.PeriodIndex,
			OldStatus:     oldStatus,
			NewStatus:     updated.Status,
			OccurredAt:    uc.timeProvider.Now(),
		})
	}

	return fromDomain(updated), nil
}

// authorize проверяет, что операцию выполняет нужная сторона:
// confirm/reject/complete/reply — эксперт, cancel/rate — записавшийся пользователь
func (uc *UseCase) authorize(appt *domain.Appointment, req *Request) error {
	switch req.Operation {
	case OpConfirm, OpReject, OpComplete, OpReply:
		if req.ActorID != appt.ExpertID {
			return ErrAccessDenied
		}
	case OpCancel, OpRate:
		if req.ActorID != appt.UserID {
			return ErrAccessDenied
		}
	}
	return nil
}

// apply выполняет операцию над записью внутри транзакции
func (uc *UseCase) apply(txCtx context.Context, appt *domain.Appointment, req *Request) error {
	switch req.Operation {
	case OpConfirm:
		if !appt.CanBeConfirmed() {
			return ErrInvalidTransition
		}
		return uc.setStatus(txCtx, appt, domain.StatusConfirmed, req.Reply)

	case OpReject:
		if !appt.CanBeRejected() {
			return ErrInvalidTransition
		}
		return uc.setStatus(txCtx, appt, domain.StatusRejected, req.Reply)

	case OpCancel:
		if !appt.CanBeCancelled() {
			return ErrInvalidTransition
		}
		return uc.setStatus(txCtx, appt, domain.StatusCancelled, nil)

	case OpComplete:
		if !appt.CanBeCompleted() {
			return ErrInvalidTransition
		}
		// Ленивая проверка времени: приём завершается только после его
		// планового окончания, фоновых таймеров нет
		if uc.timeProvider.Now().Before(appt.EndTime()) {
			return ErrAppointmentNotEnded
		}
		return uc.setStatus(txCtx, appt, domain.StatusCompleted, nil)

	case OpReply:
		if !appt.CanBeReplied() {
			return ErrInvalidTransition
		}
		if err := uc.appointmentRepo.UpdateReply(txCtx, appt.ID, *req.Reply); err != nil {
			return fmt.Errorf("%w: failed to update reply: %v", ErrInternal, err)
		}
		appt.ExpertReply = req.Reply
		return nil

	case OpRate:
		if appt.Status != domain.StatusCompleted {
			return ErrInvalidTransition
		}
		if appt.Rating != nil {
			return ErrAlreadyRated
		}
		comment := ""
		if req.RatingComment != nil {
			comment = *req.RatingComment
		}
		if err := uc.appointmentRepo.UpdateRating(txCtx, appt.ID, *req.Rating, comment); err != nil {
			return fmt.Errorf("%w: failed to update rating: %v", ErrInternal, err)
		}
		appt.Rating = req.Rating
		appt.UserRating = &comment
		return nil

	default:
		return fmt.Errorf("%w: unknown operation %q", ErrInvalidInput, req.Operation)
	}
}

func (uc *UseCase) setStatus(txCtx context.Context, appt *domain.Appointment, status domain.AppointmentStatus, reply *string) error {
	if err := uc.appointmentRepo.UpdateStatus(txCtx, appt.ID, status, reply); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			return ErrAppointmentNotFound
		}
		return fmt.Errorf("%w: failed to update status: %v", ErrInternal, err)
	}
	appt.Status = status
	if reply != nil {
		appt.ExpertReply = reply
	}
	return nil
}
