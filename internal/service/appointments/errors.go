package appointments

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда встреча не найдена
	ErrAppointmentNotFound = errors.New("appointment not found")

	// ErrAccessDenied возвращается, когда пользователь не участник встречи
	ErrAccessDenied = errors.New("access denied")

	// ErrCallNotActive возвращается при запросе токена для завершенной или отмененной встречи
	ErrCallNotActive = errors.New("call is not active")

	// ErrTokenProvider возвращается при ошибке выпуска токена
	ErrTokenProvider = errors.New("token provider error")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
