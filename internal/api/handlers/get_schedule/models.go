package get_schedule

import (
	"github.com/mentara/scheduling-service/internal/domain"
	resolveSlots "github.com/mentara/scheduling-service/internal/usecase/resolve_slots"
)

// ScheduleResponse HTTP response model
// Schedule[period][day]: true только для свободного слота. Матрица
// транспонирована относительно детального вида: строка - период, столбец - день
type ScheduleResponse struct {
	ExpertID  int64    `json:"expertId"`
	BaseDate  string   `json:"baseDate"` // "2026-09-01", день 0 окна
	Schedule  [][]bool `json:"schedule"` // [8][14]
	TimeSlots []string `json:"timeSlots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
// Булева проекция всегда выводится из той же разрешённой сетки, что и
// детальный вид, поэтому оба представления согласованы между собой
func FromUseCaseResponse(resp *resolveSlots.Response) *ScheduleResponse {
	matrix := resp.BookableMatrix()

	schedule := make([][]bool, domain.PeriodsPerDay)
	for period := 0; period < domain.PeriodsPerDay; period++ {
		schedule[period] = make([]bool, domain.WindowDays)
		copy(schedule[period], matrix[period][:])
	}

	return &ScheduleResponse{
		ExpertID:  resp.ExpertID,
		BaseDate:  resp.BaseDate.Format(domain.DateFormat),
		Schedule:  schedule,
		TimeSlots: resp.Periods[:],
	}
}
