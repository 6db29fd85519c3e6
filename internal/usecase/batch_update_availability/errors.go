package batch_update_availability

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("batch_update_availability: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("batch_update_availability: internal error")
)

// Причины отклонения отдельных элементов пакета. Отклонение элемента не
// является ошибкой всего запроса: остальные элементы применяются
const (
	ReasonOutOfRange  = "out_of_range" // адрес вне окна или вне сетки периодов
	ReasonSlotExpired = "slot_expired" // слот уже начался или прошёл
	ReasonSlotBooked  = "slot_booked"  // на слоте активная запись, им управляет её жизненный цикл
)
