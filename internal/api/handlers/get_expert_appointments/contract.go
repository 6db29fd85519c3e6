package get_expert_appointments

import (
	"context"

	"github.com/mentara/scheduling-service/internal/service/appointments/models"
)

// AppointmentService интерфейс сервиса чтения записей
type AppointmentService interface {
	GetExpertAppointments(ctx context.Context, req *models.GetExpertAppointmentsRequest) (*models.AppointmentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
