package get_detailed_slots

import (
	"github.com/mentara/scheduling-service/internal/domain"
	resolveSlots "github.com/mentara/scheduling-service/internal/usecase/resolve_slots"
)

// DetailedSlotsResponse HTTP response model
// Slots[day][period]: 0 - свободен, 1 - занят записью, 2 - закрыт экспертом
type DetailedSlotsResponse struct {
	ExpertID  int64     `json:"expertId"`
	BaseDate  string    `json:"baseDate"`  // "2026-09-01", день 0 окна
	Slots     [][]int   `json:"slots"`     // [14][8]
	IsPast    [][]bool  `json:"isPast"`    // [14][8], прошедшие слоты не бронируются
	TimeSlots []string  `json:"timeSlots"` // [8] метки начала периодов "HH:MM"
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *resolveSlots.Response) *DetailedSlotsResponse {
	slots := make([][]int, domain.WindowDays)
	isPast := make([][]bool, domain.WindowDays)
	for day := 0; day < domain.WindowDays; day++ {
		slots[day] = make([]int, domain.PeriodsPerDay)
		isPast[day] = make([]bool, domain.PeriodsPerDay)
		for period := 0; period < domain.PeriodsPerDay; period++ {
			slots[day][period] = int(resp.Grid[day][period])
			isPast[day][period] = resp.IsPast[day][period]
		}
	}

	return &DetailedSlotsResponse{
		ExpertID:  resp.ExpertID,
		BaseDate:  resp.BaseDate.Format(domain.DateFormat),
		Slots:     slots,
		IsPast:    isPast,
		TimeSlots: resp.Periods[:],
	}
}
