package batch_update_availability

import (
	"context"
	"fmt"

	"github.com/mentara/scheduling-service/internal/domain"
)

// reclaimAfterDays через сколько дней после выхода из окна строка
// блокировки перестаёт быть нужной и подлежит удалению
const reclaimAfterDays = 7

// UseCase use case для пакетного редактирования доступности эксперта
//
// Пакет применяется по принципу частичного успеха: валидные элементы
// применяются, невалидные возвращаются в Rejected с причиной. Весь пакет
// пишется в одной serializable-транзакции, поэтому конкурентное
// бронирование того же слота либо видит блокировку, либо успевает раньше -
// и тогда элемент отклоняется как slot_booked при повторе
type UseCase struct {
	availabilityRepo AvailabilityRepository
	appointmentRepo  AppointmentRepository
	txManager        TransactionManager
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	availabilityRepo AvailabilityRepository,
	appointmentRepo AppointmentRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		availabilityRepo: availabilityRepo,
		appointmentRepo:  appointmentRepo,
		txManager:        txManager,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// WithTimeProvider подменяет источник времени (используется в тестах)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute применяет пакет изменений доступности
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("BatchUpdateAvailability: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("BatchUpdateAvailability: expert_id=%d, entries=%d", req.ExpertID, len(req.Updates))

	now := uc.timeProvider.Now()
	window := domain.NewWindow(now)

	resp := &Response{
		ExpertID: req.ExpertID,
		Rejected: []RejectedEntry{},
	}

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// Снимок текущего состояния окна: блокировки и активные записи.
		// ListByExpertDateRange внутри транзакции блокирует строки (FOR UPDATE),
		// что сериализует конкурентные пакеты одного эксперта
		overrides, err := uc.availabilityRepo.ListByExpertDateRange(txCtx, req.ExpertID, window.BaseDate(), window.End())
		if err != nil {
			uc.logger.Error("BatchUpdateAvailability: failed to list overrides for expert_id=%d: %v", req.ExpertID, err)
			return fmt.Errorf("%w: failed to list overrides: %v", ErrInternal, err)
		}
		appointments, err := uc.appointmentRepo.ListActiveByExpertDateRange(txCtx, req.ExpertID, window.BaseDate(), window.End())
		if err != nil {
			uc.logger.Error("BatchUpdateAvailability: failed to list appointments for expert_id=%d: %v", req.ExpertID, err)
			return fmt.Errorf("%w: failed to list appointments: %v", ErrInternal, err)
		}

		blockedNow := make(map[domain.SlotKey]bool, len(overrides))
		for _, o := range overrides {
			blockedNow[o.Key()] = o.Blocked
		}
		booked := make(map[domain.SlotKey]struct{}, len(appointments))
		for _, a := range appointments {
			booked[domain.SlotKeyOf(a.Date, a.PeriodIndex)] = struct{}{}
		}

		// Первый проход: целевое состояние каждого валидного адреса.
		// При дубликатах адреса в пакете действует последний элемент
		desired := make(map[domain.SlotKey]*domain.AvailabilityOverride, len(req.Updates))
		var order []domain.SlotKey

		for _, e := range req.Updates {
			if !domain.ValidDayOffset(e.DayOffset) || !domain.ValidPeriodIndex(e.PeriodIndex) {
				resp.Rejected = append(resp.Rejected, rejected(e, ReasonOutOfRange))
				continue
			}
			date := window.DateAt(e.DayOffset)
			if domain.IsPastSlot(now, date, e.PeriodIndex) {
				resp.Rejected = append(resp.Rejected, rejected(e, ReasonSlotExpired))
				continue
			}
			key := domain.SlotKeyOf(date, e.PeriodIndex)
			if _, ok := booked[key]; ok {
				// Слотом с активной записью управляет жизненный цикл записи,
				// а не редактор доступности
				resp.Rejected = append(resp.Rejected, rejected(e, ReasonSlotBooked))
				continue
			}

			if prev, dup := desired[key]; dup {
				prev.Blocked = !e.Available
				continue
			}
			desired[key] = &domain.AvailabilityOverride{
				ExpertID:    req.ExpertID,
				Date:        date,
				PeriodIndex: e.PeriodIndex,
				Blocked:     !e.Available,
			}
			order = append(order, key)
		}

		// Второй проход: пишем только адреса, чьё целевое состояние
		// отличается от текущего
		changes := make([]*domain.AvailabilityOverride, 0, len(order))
		for _, key := range order {
			o := desired[key]
			if blockedNow[key] == o.Blocked {
				continue
			}
			changes = append(changes, o)
		}

		if len(changes) > 0 {
			if err := uc.availabilityRepo.UpsertBatch(txCtx, changes); err != nil {
				uc.logger.Error("BatchUpdateAvailability: failed to upsert overrides for expert_id=%d: %v", req.ExpertID, err)
				return fmt.Errorf("%w: failed to upsert overrides: %v", ErrInternal, err)
			}
		}
		resp.AppliedCount = len(changes)
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Попутная уборка: строки блокировок, давно выпавшие из окна, больше
	// никогда не будут прочитаны. Ошибка уборки не влияет на результат
	cutoff := window.BaseDate().AddDate(0, 0, -reclaimAfterDays)
	if removed, err := uc.availabilityRepo.DeleteBefore(ctx, req.ExpertID, cutoff); err != nil {
		uc.logger.Warn("BatchUpdateAvailability: failed to reclaim stale overrides for expert_id=%d: %v", req.ExpertID, err)
	} else if removed > 0 {
		uc.logger.Info("BatchUpdateAvailability: reclaimed %d stale overrides for expert_id=%d", removed, req.ExpertID)
	}

	uc.logger.Info("BatchUpdateAvailability: expert_id=%d, applied=%d, rejected=%d",
		req.ExpertID, resp.AppliedCount, len(resp.Rejected))

	return resp, nil
}

func rejected(e Entry, reason string) RejectedEntry {
	return RejectedEntry{DayOffset: e.DayOffset, PeriodIndex: e.PeriodIndex, Reason: reason}
}
