package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/mentara/scheduling-service/internal/domain"
	appointmentRepo "github.com/mentara/scheduling-service/internal/infra/storage/appointment"
	availabilityRepo "github.com/mentara/scheduling-service/internal/infra/storage/availability"
)

// maxBookAttempts одна повторная попытка после обнаруженной гонки
const maxBookAttempts = 2

// pgSerializationFailure код ошибки Postgres serialization_failure:
// проигравшая serializable-транзакция получает его на коммите
const pgSerializationFailure = "40001"

// UseCase use case для создания записи на приём
//
// Проверка доступности и вставка выполняются в одной сериализуемой
// транзакции: разделённые на два шага они позволили бы двум конкурентным
// вызовам обоим пройти проверку и обоим вставить запись. Последняя линия
// защиты — частичный уникальный индекс в хранилище записей.
type UseCase struct {
	appointmentRepo  AppointmentRepository
	availabilityRepo AvailabilityRepository
	txManager        TransactionManager
	notifyClient     NotificationClient
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	availabilityRepo AvailabilityRepository,
	txManager TransactionManager,
	notifyClient NotificationClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo:  appointmentRepo,
		availabilityRepo: availabilityRepo,
		txManager:        txManager,
		notifyClient:     notifyClient,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// WithTimeProvider подменяет источник времени (используется в тестах)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case создания записи
// Порядок проверок фиксирован, первая неудача выигрывает:
// окно → прошедший слот → занят → закрыт экспертом
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: expert=%d, user=%d, date=%s, period=%d",
		req.ExpertID, req.UserID, req.Date.Format(domain.DateFormat), req.PeriodIndex)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время и окно
	now := uc.timeProvider.Now()
	window := domain.NewWindow(now)

	// 3. Дата должна лежать в скользящем окне
	if _, ok := window.Contains(req.Date); !ok {
		uc.logger.Warn("CreateAppointment: date %s outside window for expert=%d",
			req.Date.Format(domain.DateFormat), req.ExpertID)
		return nil, ErrOutOfWindow
	}

	// 4. Прошедшие слоты не бронируются независимо от статуса
	if domain.IsPastSlot(now, req.Date, req.PeriodIndex) {
		uc.logger.Warn("CreateAppointment: slot expired: expert=%d, date=%s, period=%d",
			req.ExpertID, req.Date.Format(domain.DateFormat), req.PeriodIndex)
		return nil, ErrSlotExpired
	}

	date := domain.Midnight(req.Date)

	var result *domain.Appointment

	// 5. Проверка занятости и вставка в одной транзакции; при нарушении
	// уникального индекса на коммите — ровно одна повторная попытка
	// чтения-решения, затем ErrSlotAlreadyBooked вызывающему
	for attempt := 1; attempt <= maxBookAttempts; attempt++ {
		err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
			return uc.tryBook(txCtx, req, date, &result)
		})

		if err == nil {
			break
		}

		if isBookingRace(err) {
			// Гонка: конкурент вставил запись между нашей проверкой и коммитом
			if attempt < maxBookAttempts {
				uc.logger.Warn("CreateAppointment: booking race detected, re-checking: expert=%d, date=%s, period=%d",
					req.ExpertID, date.Format(domain.DateFormat), req.PeriodIndex)
				continue
			}
			return nil, ErrSlotAlreadyBooked
		}

		return nil, err
	}

	uc.logger.Info("CreateAppointment: successfully created appointment id=%d", result.ID)

	// 6. Событие для внешнего сервиса уведомлений (после коммита)
	uc.notifyClient.PublishBestEffort(ctx, domain.AppointmentEvent{
		Type:          domain.EventAppointmentCreated,
		AppointmentID: result.ID,
		ExpertID:      result.ExpertID,
		UserID:        result.UserID,
		Date:          result.Date,
		PeriodIndex:   result.PeriodIndex,
		NewStatus:     result.Status,
		OccurredAt:    now,
	})

	return fromDomain(result), nil
}

// isBookingRace определяет, что транзакция проиграла гонку за слот:
// нарушение уникального индекса либо сбой сериализации на коммите
func isBookingRace(err error) bool {
	if errors.Is(err, appointmentRepo.ErrActiveAppointmentExists) {
		return true
	}
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pgSerializationFailure
}

// tryBook проверяет слот и вставляет запись внутри транзакции
func (uc *UseCase) tryBook(txCtx context.Context, req *Request, date time.Time, result **domain.Appointment) error {
	// 5.1. Активная запись на этом адресе — слот занят
	_, err := uc.appointmentRepo.GetActiveBySlot(txCtx, req.ExpertID, date, req.PeriodIndex)
	if err == nil {
		return ErrSlotAlreadyBooked
	}
	if !errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
		uc.logger.Error("CreateAppointment: failed to check active appointment: %v", err)
		return fmt.Errorf("%w: failed to check active appointment: %v", ErrInternal, err)
	}

	// 5.2. Ограничение эксперта на этом адресе — слот закрыт
	override, err := uc.availabilityRepo.GetBySlot(txCtx, req.ExpertID, date, req.PeriodIndex)
	if err != nil && !errors.Is(err, availabilityRepo.ErrOverrideNotFound) {
		uc.logger.Error("CreateAppointment: failed to check override: %v", err)
		return fmt.Errorf("%w: failed to check override: %v", ErrInternal, err)
	}
	if override != nil && override.Blocked {
		uc.logger.Warn("CreateAppointment: slot blocked by expert=%d: date=%s, period=%d",
			req.ExpertID, date.Format(domain.DateFormat), req.PeriodIndex)
		return ErrSlotUnavailable
	}

	// 5.3. Создаем запись; фиксированная длительность консультации
	appt := &domain.Appointment{
		ExpertID:        req.ExpertID,
		UserID:          req.UserID,
		Date:            date,
		PeriodIndex:     req.PeriodIndex,
		DurationMinutes: domain.AppointmentDurationMinutes,
		Description:     req.Description,
		ContactInfo:     req.ContactInfo,
		Status:          domain.StatusPending,
	}

	created, err := uc.appointmentRepo.Create(txCtx, appt)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrActiveAppointmentExists) {
			return err
		}
		uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
		return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
	}

	*result = created
	return nil
}
