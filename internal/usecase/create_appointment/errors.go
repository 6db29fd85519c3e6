package create_appointment

import "errors"

var (
	// ErrOutOfWindow возвращается, когда дата вне текущего 14-дневного окна
	ErrOutOfWindow = errors.New("create_appointment: date is outside the booking window")

	// ErrSlotExpired возвращается, когда запрошенный слот уже в прошлом
	ErrSlotExpired = errors.New("create_appointment: slot is in the past")

	// ErrSlotAlreadyBooked возвращается, когда слот занят активной записью
	// (включая гонку двух одновременных бронирований, разрешённую при коммите)
	ErrSlotAlreadyBooked = errors.New("create_appointment: slot is already booked")

	// ErrSlotUnavailable возвращается, когда эксперт закрыл слот для записи
	ErrSlotUnavailable = errors.New("create_appointment: slot is blocked by the expert")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)
