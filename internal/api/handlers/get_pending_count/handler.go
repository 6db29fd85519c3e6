package get_pending_count

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mentara/scheduling-service/internal/api/handlers"
	"github.com/mentara/scheduling-service/internal/api/middleware"
)

const (
	msgInvalidExpertID = "некорректный ID эксперта"
	msgMissingUserID   = "отсутствует ID пользователя"
	msgForbidden       = "доступ запрещен"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/experts/{expertId}/appointments/pending-count
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	expertID, err := strconv.ParseInt(vars["expertId"], 10, 64)
	if err != nil || expertID <= 0 {
		h.logger.Warn("GET /experts/{id}/appointments/pending-count - Invalid expert ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidExpertID)
		return
	}

	actorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /experts/{id}/appointments/pending-count - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	if actorID != expertID {
		h.logger.Warn("GET /experts/{id}/appointments/pending-count - Access denied: expert_id=%d, actor=%d",
			expertID, actorID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	result, err := h.service.GetPendingCount(r.Context(), expertID)
	if err != nil {
		h.logger.Error("GET /experts/{id}/appointments/pending-count - Failed to count: expert_id=%d, error=%v",
			expertID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /experts/{id}/appointments/pending-count - Count retrieved: expert_id=%d, pending=%d",
		expertID, result.PendingCount)
	handlers.RespondJSON(w, http.StatusOK, result)
}
