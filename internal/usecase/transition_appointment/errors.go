package transition_appointment

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("transition_appointment: appointment not found")

	// ErrInvalidTransition возвращается, когда операция нелегальна из текущего статуса
	ErrInvalidTransition = errors.New("transition_appointment: operation not allowed from current status")

	// ErrAppointmentNotEnded возвращается при попытке завершить приём до его окончания
	ErrAppointmentNotEnded = errors.New("transition_appointment: appointment has not ended yet")

	// ErrAlreadyRated возвращается при повторной попытке оценить приём
	ErrAlreadyRated = errors.New("transition_appointment: appointment is already rated")

	// ErrAccessDenied возвращается, когда операция недоступна этому пользователю
	ErrAccessDenied = errors.New("transition_appointment: access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("transition_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("transition_appointment: internal error")
)
