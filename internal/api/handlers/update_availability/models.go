package update_availability

import (
	batchUpdate "github.com/mentara/scheduling-service/internal/usecase/batch_update_availability"
)

// UpdateEntry один элемент пакета изменений
type UpdateEntry struct {
	DayOffset   int  `json:"dayOffset"`   // 0-13 от сегодняшнего дня
	PeriodIndex int  `json:"periodIndex"` // 0-7
	Available   bool `json:"available"`
}

// BatchUpdateRequest HTTP request model пакетного изменения
type BatchUpdateRequest struct {
	Updates []UpdateEntry `json:"updates"`
}

// SlotUpdateRequest HTTP request model изменения одного слота
type SlotUpdateRequest struct {
	DayOffset   int  `json:"dayOffset"`
	PeriodIndex int  `json:"periodIndex"`
	Available   bool `json:"available"`
}

// RejectedEntryResponse отклонённый элемент пакета
type RejectedEntryResponse struct {
	DayOffset   int    `json:"dayOffset"`
	PeriodIndex int    `json:"periodIndex"`
	Reason      string `json:"reason"` // out_of_range | slot_expired | slot_booked
}

// BatchUpdateResponse HTTP response model
type BatchUpdateResponse struct {
	ExpertID        int64                   `json:"expertId"`
	AppliedCount    int                     `json:"appliedCount"`
	RejectedEntries []RejectedEntryResponse `json:"rejectedEntries"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *BatchUpdateRequest) ToUseCaseRequest(expertID int64) *batchUpdate.Request {
	updates := make([]batchUpdate.Entry, len(r.Updates))
	for i, e := range r.Updates {
		updates[i] = batchUpdate.Entry{
			DayOffset:   e.DayOffset,
			PeriodIndex: e.PeriodIndex,
			Available:   e.Available,
		}
	}
	return &batchUpdate.Request{
		ExpertID: expertID,
		Updates:  updates,
	}
}

// ToUseCaseRequest конвертирует одиночное изменение в пакет из одного элемента
func (r *SlotUpdateRequest) ToUseCaseRequest(expertID int64) *batchUpdate.Request {
	return &batchUpdate.Request{
		ExpertID: expertID,
		Updates: []batchUpdate.Entry{{
			DayOffset:   r.DayOffset,
			PeriodIndex: r.PeriodIndex,
			Available:   r.Available,
		}},
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *batchUpdate.Response) *BatchUpdateResponse {
	rejected := make([]RejectedEntryResponse, len(resp.Rejected))
	for i, e := range resp.Rejected {
		rejected[i] = RejectedEntryResponse{
			DayOffset:   e.DayOffset,
			PeriodIndex: e.PeriodIndex,
			Reason:      e.Reason,
		}
	}
	return &BatchUpdateResponse{
		ExpertID:        resp.ExpertID,
		AppliedCount:    resp.AppliedCount,
		RejectedEntries: rejected,
	}
}
