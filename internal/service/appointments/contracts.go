package appointments

import (
	"context"

	"github.com/mentara/scheduling-service/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей на приём
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	ListByUser(ctx context.Context, filter domain.UserAppointmentsFilter) ([]*domain.Appointment, error)
	ListByExpert(ctx context.Context, filter domain.ExpertAppointmentsFilter) ([]*domain.Appointment, error)
	CountByExpertAndStatus(ctx context.Context, expertID int64, status domain.AppointmentStatus) (int64, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
