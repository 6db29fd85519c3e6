package create_appointment

import (
	"context"
	"time"

	"github.com/mentara/scheduling-service/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей на приём
type AppointmentRepository interface {
	Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)
	GetActiveBySlot(ctx context.Context, expertID int64, date time.Time, periodIndex int) (*domain.Appointment, error)
}

// AvailabilityRepository интерфейс репозитория ограничений доступности
type AvailabilityRepository interface {
	GetBySlot(ctx context.Context, expertID int64, date time.Time, periodIndex int) (*domain.AvailabilityOverride, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// NotificationClient интерфейс клиента сервиса уведомлений
type NotificationClient interface {
	PublishBestEffort(ctx context.Context, event domain.AppointmentEvent)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
