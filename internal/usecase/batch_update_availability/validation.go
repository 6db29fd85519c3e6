package batch_update_availability

import "fmt"

// maxBatchSize ограничивает размер пакета размером всей сетки:
// больше адресов в окне просто нет
const maxBatchSize = 112

// validateRequest проверяет форму запроса; адреса отдельных элементов
// проверяются при применении и отклоняются поэлементно
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: request is nil", ErrInvalidInput)
	}
	if req.ExpertID <= 0 {
		return fmt.Errorf("%w: expert_id must be positive", ErrInvalidInput)
	}
	if len(req.Updates) == 0 {
		return fmt.Errorf("%w: updates list is empty", ErrInvalidInput)
	}
	if len(req.Updates) > maxBatchSize {
		return fmt.Errorf("%w: updates list exceeds %d entries", ErrInvalidInput, maxBatchSize)
	}
	return nil
}
