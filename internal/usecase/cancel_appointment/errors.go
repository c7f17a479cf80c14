package cancel_appointment

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда встреча не найдена
	ErrAppointmentNotFound = errors.New("cancel_appointment: appointment not found")

	// ErrUnauthorized возвращается, когда пользователь не участник встречи
	ErrUnauthorized = errors.New("cancel_appointment: user is not a participant")

	// ErrAlreadyFinalized возвращается, когда встреча уже завершена или отменена
	ErrAlreadyFinalized = errors.New("cancel_appointment: appointment is already finalized")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("cancel_appointment: internal error")
)
