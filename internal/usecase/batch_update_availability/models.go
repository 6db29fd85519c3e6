package batch_update_availability

// Entry один элемент пакета изменений: адрес слота и желаемая доступность
type Entry struct {
	DayOffset   int  // 0..13 от сегодняшнего дня
	PeriodIndex int  // 0..7
	Available   bool // true - открыть слот, false - закрыть
}

// Request модель запроса на пакетное изменение доступности
type Request struct {
	ExpertID int64
	Updates  []Entry
}

// RejectedEntry отклонённый элемент пакета с причиной
type RejectedEntry struct {
	DayOffset   int
	PeriodIndex int
	Reason      string
}

// Response результат применения пакета
// AppliedCount считает только реальные изменения состояния: повторное
// закрытие уже закрытого слота в счётчик не попадает
type Response struct {
	ExpertID     int64
	AppliedCount int
	Rejected     []RejectedEntry
}
