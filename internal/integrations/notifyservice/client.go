package notifyservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mentara/scheduling-service/internal/domain"
	"github.com/mentara/scheduling-service/pkg/types"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для отправки событий планировщика сервису уведомлений
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента сервиса уведомлений
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Publish отправляет событие сервису уведомлений
func (c *Client) Publish(ctx context.Context, event domain.AppointmentEvent) error {
	startTime, err := types.NewTimeStringFromHour(domain.PeriodStartHour(event.PeriodIndex))
	if err != nil {
		return fmt.Errorf("%w: failed to build start time: %v", ErrInternal, err)
	}
	endTime, err := startTime.AddMinutes(domain.AppointmentDurationMinutes)
	if err != nil {
		return fmt.Errorf("%w: failed to build end time: %v", ErrInternal, err)
	}

	payload := Event{
		Type:          string(event.Type),
		AppointmentID: event.AppointmentID,
		ExpertID:      event.ExpertID,
		UserID:        event.UserID,
		Date:          event.Date.Format(domain.DateFormat),
		StartTime:     startTime,
		EndTime:       endTime,
		OldStatus:     string(event.OldStatus),
		NewStatus:     string(event.NewStatus),
		OccurredAt:    event.OccurredAt.Format(time.RFC3339),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal event: %v", ErrInternal, err)
	}

	url := fmt.Sprintf("%s/internal/events/appointments", c.baseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}

	return nil
}

// PublishBestEffort отправляет событие, логируя сбой вместо возврата ошибки
// Недоступность сервиса уведомлений не должна откатывать зафиксированную запись
func (c *Client) PublishBestEffort(ctx context.Context, event domain.AppointmentEvent) {
	if err := c.Publish(ctx, event); err != nil {
		c.log.Error("NotifyService unavailable, event %s for appointment id=%d dropped: %v",
			event.Type, event.AppointmentID, err)
		return
	}
	c.log.Info("Published %s event for appointment id=%d", event.Type, event.AppointmentID)
}
