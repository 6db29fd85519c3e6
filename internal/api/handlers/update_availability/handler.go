package update_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mentara/scheduling-service/internal/api/handlers"
	"github.com/mentara/scheduling-service/internal/api/middleware"
	batchUpdate "github.com/mentara/scheduling-service/internal/usecase/batch_update_availability"
)

const (
	msgInvalidExpertID    = "некорректный ID эксперта"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgForbidden          = "доступ запрещен"
	msgInvalidInput       = "некорректные данные пакета изменений"
)

type Handler struct {
	useCase BatchUpdateAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase BatchUpdateAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// HandleBatch PUT /api/v1/experts/{expertId}/availability
func (h *Handler) HandleBatch(w http.ResponseWriter, r *http.Request) {
	expertID, ok := h.authorizeExpert(w, r, "PUT /experts/{id}/availability")
	if !ok {
		return
	}

	var req BatchUpdateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /experts/{id}/availability - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	h.execute(w, r, req.ToUseCaseRequest(expertID), "PUT /experts/{id}/availability")
}

// HandleSlot PUT /api/v1/experts/{expertId}/availability/slot
// Одиночное изменение проходит через тот же пакетный механизм
func (h *Handler) HandleSlot(w http.ResponseWriter, r *http.Request) {
	expertID, ok := h.authorizeExpert(w, r, "PUT /experts/{id}/availability/slot")
	if !ok {
		return
	}

	var req SlotUpdateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /experts/{id}/availability/slot - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	h.execute(w, r, req.ToUseCaseRequest(expertID), "PUT /experts/{id}/availability/slot")
}

// authorizeExpert извлекает expertId из URL и проверяет, что доступностью
// управляет сам эксперт
func (h *Handler) authorizeExpert(w http.ResponseWriter, r *http.Request, route string) (int64, bool) {
	vars := mux.Vars(r)

	expertID, err := strconv.ParseInt(vars["expertId"], 10, 64)
	if err != nil || expertID <= 0 {
		h.logger.Warn("%s - Invalid expert ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidExpertID)
		return 0, false
	}

	actorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("%s - Missing user ID", route)
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return 0, false
	}
	if actorID != expertID {
		h.logger.Warn("%s - Access denied: expert_id=%d, actor=%d", route, expertID, actorID)
		handlers.RespondForbidden(w, msgForbidden)
		return 0, false
	}

	return expertID, true
}

func (h *Handler) execute(w http.ResponseWriter, r *http.Request, req *batchUpdate.Request, route string) {
	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, batchUpdate.ErrInvalidInput):
			h.logger.Warn("%s - Invalid input: expert_id=%d, error=%v", route, req.ExpertID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("%s - Failed to update availability: expert_id=%d, error=%v", route, req.ExpertID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("%s - Availability updated: expert_id=%d, applied=%d, rejected=%d",
		route, req.ExpertID, result.AppliedCount, len(result.Rejected))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
