package resolve_slots

import (
	"time"

	"github.com/mentara/scheduling-service/internal/domain"
)

// Request модель запроса на разрешение статусов слотов
type Request struct {
	ExpertID int64 // ID эксперта
}

// Response модель ответа с разрешённой сеткой слотов
type Response struct {
	ExpertID int64                           // ID эксперта
	BaseDate time.Time                       // День 0 окна (сегодня)
	Grid     domain.SlotGrid                 // [день][период] → статус
	Periods  [domain.PeriodsPerDay]string    // метки начала периодов "HH:MM"
	IsPast   [domain.WindowDays][domain.PeriodsPerDay]bool // прошедшие слоты не бронируются независимо от статуса
}

// BookableMatrix булева проекция сетки: true только для FREE
// Всегда выводится из той же матрицы, никогда не вычисляется отдельно
func (r *Response) BookableMatrix() [domain.PeriodsPerDay][domain.WindowDays]bool {
	return r.Grid.BooleanProjection()
}
