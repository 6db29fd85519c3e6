package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/mentara/scheduling-service/internal/domain"
	appointmentRepo "github.com/mentara/scheduling-service/internal/infra/storage/appointment"
	"github.com/mentara/scheduling-service/internal/service/appointments/models"
)

// Пагинация по умолчанию для списков истории
const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// Service сервис для чтения записей на приём
type Service struct {
	appointmentRepo AppointmentRepository
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(appointmentRepo AppointmentRepository, logger Logger) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		logger:          logger,
	}
}

// GetByID получает запись по ID
// Проверяет права доступа - запись видят только её пользователь и её эксперт
func (s *Service) GetByID(ctx context.Context, id int64, actorID int64) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d for actor=%d", id, actorID)

	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if appointment.UserID != actorID && appointment.ExpertID != actorID {
		s.logger.Warn("GetByID: access denied for actor=%d to appointment id=%d", actorID, id)
		return nil, ErrAccessDenied
	}

	s.logger.Info("GetByID: successfully fetched appointment id=%d", id)
	return models.FromDomainAppointment(appointment), nil
}

// GetUserAppointments получает историю записей пользователя
func (s *Service) GetUserAppointments(ctx context.Context, req *models.GetUserAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetUserAppointments: fetching appointments for user=%d, page=%d", req.UserID, req.Page)

	if req.UserID <= 0 {
		return nil, fmt.Errorf("%w: user_id must be positive", ErrInvalidInput)
	}

	filter := domain.UserAppointmentsFilter{
		UserID: req.UserID,
		Page:   req.Page,
		Size:   req.Size,
	}
	normalizePagination(&filter.Page, &filter.Size)

	appointments, err := s.appointmentRepo.ListByUser(ctx, filter)
	if err != nil {
		s.logger.Error("GetUserAppointments: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserAppointments: successfully fetched %d appointments for user=%d", len(appointments), req.UserID)
	return models.FromDomainAppointmentList(appointments), nil
}

// GetExpertAppointments получает записи эксперта с опциональным фильтром по статусу
func (s *Service) GetExpertAppointments(ctx context.Context, req *models.GetExpertAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetExpertAppointments: fetching appointments for expert=%d, status=%v, page=%d",
		req.ExpertID, req.Status, req.Page)

	if req.ExpertID <= 0 {
		return nil, fmt.Errorf("%w: expert_id must be positive", ErrInvalidInput)
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetExpertAppointments: invalid status=%v for expert=%d", req.Status, req.ExpertID)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}
	normalizePagination(&filter.Page, &filter.Size)

	appointments, err := s.appointmentRepo.ListByExpert(ctx, filter)
	if err != nil {
		s.logger.Error("GetExpertAppointments: repository error for expert=%d: %v", req.ExpertID, err)
		return nil, fmt.Errorf("%w: GetExpertAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetExpertAppointments: successfully fetched %d appointments for expert=%d", len(appointments), req.ExpertID)
	return models.FromDomainAppointmentList(appointments), nil
}

// GetPendingCount возвращает число необработанных запросов эксперта
// Используется для бейджа в кабинете эксперта
func (s *Service) GetPendingCount(ctx context.Context, expertID int64) (*models.PendingCountResponse, error) {
	if expertID <= 0 {
		return nil, fmt.Errorf("%w: expert_id must be positive", ErrInvalidInput)
	}

	count, err := s.appointmentRepo.CountByExpertAndStatus(ctx, expertID, domain.StatusPending)
	if err != nil {
		s.logger.Error("GetPendingCount: repository error for expert=%d: %v", expertID, err)
		return nil, fmt.Errorf("%w: GetPendingCount - repository error: %v", ErrInternal, err)
	}

	return &models.PendingCountResponse{
		ExpertID:     expertID,
		PendingCount: count,
	}, nil
}

// normalizePagination приводит параметры страницы к допустимым значениям
func normalizePagination(page, size *int) {
	if *page < 1 {
		*page = 1
	}
	if *size < 1 {
		*size = defaultPageSize
	}
	if *size > maxPageSize {
		*size = maxPageSize
	}
}
