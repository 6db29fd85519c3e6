package notifyservice

import "errors"

var (
	// ErrInternal возвращается при ошибках построения или выполнения запроса
	ErrInternal = errors.New("notifyservice.client: internal error")

	// ErrInvalidResponse возвращается при неожиданном ответе сервиса уведомлений
	ErrInvalidResponse = errors.New("notifyservice.client: invalid response")
)
