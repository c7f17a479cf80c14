package verify_payment

import "errors"

var (
	// ErrPaymentNotFound возвращается, когда платеж не найден
	ErrPaymentNotFound = errors.New("verify_payment: payment not found")

	// ErrUnauthorized возвращается, когда подтверждает не владелец платежа
	ErrUnauthorized = errors.New("verify_payment: payment belongs to another user")

	// ErrOrderMismatch возвращается, когда заказ из запроса не совпадает с заказом платежа
	ErrOrderMismatch = errors.New("verify_payment: order id does not match payment")

	// ErrAlreadyProcessed возвращается, когда платеж уже подтвержден или отклонен
	ErrAlreadyProcessed = errors.New("verify_payment: payment already processed")

	// ErrInvalidSignature возвращается, когда подпись не прошла проверку (платеж помечается failed)
	ErrInvalidSignature = errors.New("verify_payment: invalid payment signature")

	// ErrPaymentProvider возвращается при ошибке платежного провайдера
	ErrPaymentProvider = errors.New("verify_payment: payment provider error")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("verify_payment: internal error")
)
