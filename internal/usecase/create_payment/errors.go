package create_payment

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда встреча для звонка не найдена
	ErrAppointmentNotFound = errors.New("create_payment: appointment not found")

	// ErrUnauthorized возвращается, когда платит не клиент встречи
	ErrUnauthorized = errors.New("create_payment: only the booking user can pay")

	// ErrNotCompleted возвращается, когда звонок еще не завершен
	ErrNotCompleted = errors.New("create_payment: appointment is not completed")

	// ErrPaymentExists возвращается, когда платеж по встрече уже создан
	ErrPaymentExists = errors.New("create_payment: payment already exists")

	// ErrPaymentProvider возвращается при ошибке платежного провайдера
	ErrPaymentProvider = errors.New("create_payment: payment provider error")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_payment: internal error")
)
