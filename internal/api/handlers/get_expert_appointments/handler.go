package get_expert_appointments

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mentara/scheduling-service/internal/api/handlers"
	"github.com/mentara/scheduling-service/internal/api/middleware"
	"github.com/mentara/scheduling-service/internal/service/appointments"
	"github.com/mentara/scheduling-service/internal/service/appointments/models"
)

const (
	msgInvalidExpertID = "некорректный ID эксперта"
	msgInvalidStatus   = "некорректный статус записи"
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

// Handle GET /api/v1/experts/{expertId}/appointments
// Query params: status, page, size (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	expertID, err := strconv.ParseInt(vars["expertId"], 10, 64)
	if err != nil || expertID <= 0 {
		h.logger.Warn("GET /experts/{id}/appointments - Invalid expert ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidExpertID)
		return
	}

	actorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /experts/{id}/appointments - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Записи эксперта видит только сам эксперт
	if actorID != expertID {
		h.logger.Warn("GET /experts/{id}/appointments - Access denied: expert_id=%d, actor=%d", expertID, actorID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	var status *string
	if s := r.URL.Query().Get("status"); s != "" {
		status = &s
	}
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	size, _ := strconv.Atoi(r.URL.Query().Get("size"))

	result, err := h.service.GetExpertAppointments(r.Context(), &models.GetExpertAppointmentsRequest{
		ExpertID: expertID,
		Status:   status,
		Page:     page,
		Size:     size,
	})
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /experts/{id}/appointments - Invalid status filter: expert_id=%d", expertID)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /experts/{id}/appointments - Failed to list appointments: expert_id=%d, error=%v",
				expertID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /experts/{id}/appointments - Appointments retrieved successfully: expert_id=%d, count=%d",
		expertID, len(result.Appointments))
	handlers.RespondJSON(w, http.StatusOK, result)
}
