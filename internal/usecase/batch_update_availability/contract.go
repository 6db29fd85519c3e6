package batch_update_availability

import (
	"context"
	"time"

	"github.com/mentara/scheduling-service/internal/domain"
)

// AvailabilityRepository интерфейс репозитория ручных блокировок
type AvailabilityRepository interface {
	ListByExpertDateRange(ctx context.Context, expertID int64, from, to time.Time) ([]*domain.AvailabilityOverride, error)
	UpsertBatch(ctx context.Context, overrides []*domain.AvailabilityOverride) error
	DeleteBefore(ctx context.Context, expertID int64, cutoff time.Time) (int64, error)
}

// AppointmentRepository интерфейс репозитория записей на приём
type AppointmentRepository interface {
	ListActiveByExpertDateRange(ctx context.Context, expertID int64, from, to time.Time) ([]*domain.Appointment, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
