package create_appointment

import (
	"errors"
	"net/http"

	"github.com/mentara/scheduling-service/internal/api/handlers"
	"github.com/mentara/scheduling-service/internal/api/middleware"
	createAppointment "github.com/mentara/scheduling-service/internal/usecase/create_appointment"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTime        = "некорректное время записи, ожидается YYYY-MM-DDTHH:MM:SS с началом одного из периодов"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgOutOfWindow        = "дата записи вне двухнедельного окна бронирования"
	msgSlotExpired        = "выбранный слот уже прошёл"
	msgSlotAlreadyBooked  = "выбранный слот уже занят"
	msgSlotUnavailable    = "эксперт закрыл выбранный слот для записи"
	msgInvalidInput       = "некорректные данные записи"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Пользователь берётся из заголовка аутентификации, а не из тела
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /appointments - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /appointments - Failed to parse appointment time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createAppointment.ErrOutOfWindow):
			h.logger.Warn("POST /appointments - Date out of window: user_id=%d, expert_id=%d", userID, req.ExpertID)
			handlers.RespondBadRequest(w, msgOutOfWindow)

		case errors.Is(err, createAppointment.ErrSlotExpired):
			h.logger.Warn("POST /appointments - Slot expired: user_id=%d, expert_id=%d", userID, req.ExpertID)
			handlers.RespondBadRequest(w, msgSlotExpired)

		case errors.Is(err, createAppointment.ErrSlotAlreadyBooked):
			h.logger.Warn("POST /appointments - Slot already booked: user_id=%d, expert_id=%d", userID, req.ExpertID)
			handlers.RespondConflict(w, msgSlotAlreadyBooked)

		case errors.Is(err, createAppointment.ErrSlotUnavailable):
			h.logger.Warn("POST /appointments - Slot blocked by expert: user_id=%d, expert_id=%d", userID, req.ExpertID)
			handlers.RespondConflict(w, msgSlotUnavailable)

		case errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: user_id=%d, expert_id=%d, error=%v", userID, req.ExpertID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: user_id=%d, expert_id=%d, error=%v",
				userID, req.ExpertID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - Appointment created successfully: appointment_id=%d, user_id=%d, expert_id=%d",
		result.ID, userID, req.ExpertID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
