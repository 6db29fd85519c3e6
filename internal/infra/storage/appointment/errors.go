package appointment

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись о приёме не найдена
	ErrAppointmentNotFound = errors.New("appointment.repository: appointment not found")

	// ErrActiveAppointmentExists возвращается, когда слот уже занят активной записью
	// (нарушение частичного уникального индекса uq_appointments_active_slot)
	ErrActiveAppointmentExists = errors.New("appointment.repository: active appointment already exists for slot")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("appointment.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("appointment.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("appointment.repository: failed to scan row")
)
