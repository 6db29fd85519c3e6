package get_pending_count

import (
	"context"

	"github.com/mentara/scheduling-service/internal/service/appointments/models"
)

// AppointmentService интерфейс сервиса чтения записей
type AppointmentService interface {
	GetPendingCount(ctx context.Context, expertID int64) (*models.PendingCountResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
