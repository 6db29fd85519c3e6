package update_availability

import (
	"context"

	batchUpdate "github.com/mentara/scheduling-service/internal/usecase/batch_update_availability"
)

type BatchUpdateAvailabilityUseCase interface {
	Execute(ctx context.Context, req *batchUpdate.Request) (*batchUpdate.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
