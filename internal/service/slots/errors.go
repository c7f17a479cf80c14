package slots

import "errors"

var (
	// ErrNotMentor возвращается, когда действие доступно только ментору
	ErrNotMentor = errors.New("user is not a mentor")

	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("slot not found")

	// ErrAccessDenied возвращается, когда ментор меняет чужой слот
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidTransition возвращается, когда из текущего статуса переход запрещен
	ErrInvalidTransition = errors.New("slot status transition not allowed")

	// ErrStatusConflict возвращается, когда статус слота изменился параллельно
	ErrStatusConflict = errors.New("slot status changed concurrently")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
