package transition_appointment

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mentara/scheduling-service/internal/api/handlers"
	"github.com/mentara/scheduling-service/internal/api/middleware"
	transitionAppointment "github.com/mentara/scheduling-service/internal/usecase/transition_appointment"
)

const (
	msgInvalidAppointmentID = "некорректный ID записи"
	msgInvalidAction        = "неизвестная операция над записью"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgMissingUserID        = "отсутствует ID пользователя"
	msgNotFound             = "запись не найдена"
	msgForbidden            = "доступ запрещен"
	msgInvalidTransition    = "операция недоступна в текущем статусе записи"
	msgNotEnded             = "приём ещё не закончился"
	msgAlreadyRated         = "приём уже оценён"
	msgInvalidInput         = "некорректные данные запроса"
)

type Handler struct {
	useCase TransitionAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase TransitionAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/appointments/{appointmentId}/{action}
// action: confirm | reject | cancel | complete | reply | rate
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	appointmentID, err := strconv.ParseInt(vars["appointmentId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /appointments/{id}/{action} - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	action := vars["action"]
	op, ok := transitionAppointment.ParseOperation(action)
	if !ok {
		h.logger.Warn("PATCH /appointments/{id}/{action} - Unknown action: %s", action)
		handlers.RespondBadRequest(w, msgInvalidAction)
		return
	}

	actorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /appointments/{id}/%s - Missing user ID", action)
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// cancel и complete идут без тела, для остальных операций тело опционально
	var req TransitionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("PATCH /appointments/{id}/%s - Invalid request body: %v", action, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(appointmentID, actorID, op))
	if err != nil {
		switch {
		case errors.Is(err, transitionAppointment.ErrAppointmentNotFound):
			h.logger.Warn("PATCH /appointments/{id}/%s - Appointment not found: appointment_id=%d", action, appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, transitionAppointment.ErrAccessDenied):
			h.logger.Warn("PATCH /appointments/{id}/%s - Access denied: appointment_id=%d, actor=%d",
				action, appointmentID, actorID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, transitionAppointment.ErrInvalidTransition):
			h.logger.Warn("PATCH /appointments/{id}/%s - Invalid transition: appointment_id=%d", action, appointmentID)
			handlers.RespondConflict(w, msgInvalidTransition)

		case errors.Is(err, transitionAppointment.ErrAppointmentNotEnded):
			h.logger.Warn("PATCH /appointments/{id}/%s - Appointment not ended: appointment_id=%d", action, appointmentID)
			handlers.RespondConflict(w, msgNotEnded)

		case errors.Is(err, transitionAppointment.ErrAlreadyRated):
			h.logger.Warn("PATCH /appointments/{id}/%s - Already rated: appointment_id=%d", action, appointmentID)
			handlers.RespondConflict(w, msgAlreadyRated)

		case errors.Is(err, transitionAppointment.ErrInvalidInput):
			h.logger.Warn("PATCH /appointments/{id}/%s - Invalid input: appointment_id=%d, error=%v",
				action, appointmentID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PATCH /appointments/{id}/%s - Failed to apply operation: appointment_id=%d, error=%v",
				action, appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /appointments/{id}/%s - Operation applied successfully: appointment_id=%d, status=%s",
		action, appointmentID, result.Status)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
