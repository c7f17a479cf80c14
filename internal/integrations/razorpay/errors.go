package razorpay

import "errors"

var (
	// ErrInvalidRequest возвращается, когда Razorpay отклонил параметры заказа
	ErrInvalidRequest = errors.New("razorpay: invalid request")

	// ErrUnauthorized возвращается при неверных ключах API
	ErrUnauthorized = errors.New("razorpay: unauthorized")

	// ErrInvalidResponse возвращается при неожиданном ответе
	ErrInvalidResponse = errors.New("razorpay: invalid response")

	// ErrInternal возвращается при сетевых и прочих внутренних ошибках
	ErrInternal = errors.New("razorpay: internal error")
)
