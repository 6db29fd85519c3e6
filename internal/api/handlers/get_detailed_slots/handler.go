package get_detailed_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mentara/scheduling-service/internal/api/handlers"
	resolveSlots "github.com/mentara/scheduling-service/internal/usecase/resolve_slots"
)

const (
	msgInvalidExpertID = "некорректный ID эксперта"
)

type Handler struct {
	useCase ResolveSlotsUseCase
	logger  Logger
}

func NewHandler(useCase ResolveSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/experts/{expertId}/slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	expertIDStr := vars["expertId"]

	expertID, err := strconv.ParseInt(expertIDStr, 10, 64)
	if err != nil || expertID <= 0 {
		h.logger.Warn("GET /experts/{id}/slots - Invalid expert ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidExpertID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &resolveSlots.Request{ExpertID: expertID})
	if err != nil {
		switch {
		case errors.Is(err, resolveSlots.ErrInvalidInput):
			h.logger.Warn("GET /experts/{id}/slots - Invalid input: expert_id=%d", expertID)
			handlers.RespondBadRequest(w, msgInvalidExpertID)

		default:
			h.logger.Error("GET /experts/{id}/slots - Failed to resolve slots: expert_id=%d, error=%v", expertID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /experts/{id}/slots - Slots resolved successfully: expert_id=%d", expertID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
