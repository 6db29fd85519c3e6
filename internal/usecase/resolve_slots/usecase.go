package resolve_slots

import (
	"context"
	"fmt"

	"github.com/mentara/scheduling-service/internal/domain"
)

// UseCase use case для вычисления статусов слотов эксперта на скользящее окно
//
// Статус каждого из 14×8 адресов выводится из двух хранилищ по приоритету
// BOOKED > BLOCKED > FREE. Ни одно место в системе не хранит разрешённый
// статус — он всегда вычисляется здесь из активных записей и ограничений.
type UseCase struct {
	appointmentRepo  AppointmentRepository
	availabilityRepo AvailabilityRepository
	txManager        TransactionManager
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	availabilityRepo AvailabilityRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo:  appointmentRepo,
		availabilityRepo: availabilityRepo,
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

// Execute выполняет use case вычисления сетки слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.ExpertID <= 0 {
		return nil, fmt.Errorf("%w: expertID must be positive", ErrInvalidInput)
	}

	now := uc.timeProvider.Now()
	window := domain.NewWindow(now)

	var (
		overrides    []*domain.AvailabilityOverride
		appointments []*domain.Appointment
	)

	// Два bulk-чтения в одном снимке: матрица не должна отражать запись,
	// которая одновременно и существует, и не существует в рамках вызова
	err := uc.txManager.DoRepeatableRead(ctx, func(txCtx context.Context) error {
		var err error

		overrides, err = uc.availabilityRepo.ListByExpertDateRange(txCtx, req.ExpertID, window.BaseDate(), window.End())
		if err != nil {
			return fmt.Errorf("%w: failed to list overrides: %v", ErrInternal, err)
		}

		appointments, err = uc.appointmentRepo.ListActiveByExpertDateRange(txCtx, req.ExpertID, window.BaseDate(), window.End())
		if err != nil {
			return fmt.Errorf("%w: failed to list active appointments: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		uc.logger.Error("ResolveSlots: snapshot read failed for expert=%d: %v", req.ExpertID, err)
		return nil, err
	}

	resp := &Response{
		ExpertID: req.ExpertID,
		BaseDate: window.BaseDate(),
		Grid:     buildGrid(window, overrides, appointments),
		Periods:  domain.PeriodLabels(),
	}

	for day := 0; day < domain.WindowDays; day++ {
		date := window.DateAt(day)
		for period := 0; period < domain.PeriodsPerDay; period++ {
			resp.IsPast[day][period] = domain.IsPastSlot(now, date, period)
		}
	}

	uc.logger.Info("ResolveSlots: expert=%d, window=%s..%s, overrides=%d, active=%d",
		req.ExpertID, window.BaseDate().Format(domain.DateFormat), window.End().Format(domain.DateFormat),
		len(overrides), len(appointments))

	return resp, nil
}

// buildGrid собирает матрицу за один проход: два lookup-словаря по адресу
// слота вместо 112 точечных запросов
func buildGrid(window domain.Window, overrides []*domain.AvailabilityOverride, appointments []*domain.Appointment) domain.SlotGrid {
	blocked := make(map[domain.SlotKey]bool, len(overrides))
	for _, o := range overrides {
		if o.Blocked && domain.ValidPeriodIndex(o.PeriodIndex) {
			blocked[o.Key()] = true
		}
	}

	booked := make(map[domain.SlotKey]bool, len(appointments))
	for _, a := range appointments {
		if a.IsActive() && domain.ValidPeriodIndex(a.PeriodIndex) {
			booked[domain.SlotKeyOf(a.Date, a.PeriodIndex)] = true
		}
	}

	var grid domain.SlotGrid
	for day := 0; day < domain.WindowDays; day++ {
		date := window.DateAt(day)
		for period := 0; period < domain.PeriodsPerDay; period++ {
			key := domain.SlotKeyOf(date, period)
			switch {
			case booked[key]:
				grid[day][period] = domain.SlotBooked
			case blocked[key]:
				grid[day][period] = domain.SlotBlocked
			default:
				grid[day][period] = domain.SlotFree
			}
		}
	}

	return grid
}
