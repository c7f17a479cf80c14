package call_session

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда встреча для звонка не найдена
	ErrAppointmentNotFound = errors.New("call_session: appointment not found")

	// ErrUnauthorized возвращается, когда пользователь не участник встречи
	ErrUnauthorized = errors.New("call_session: user is not a participant")

	// ErrAlreadyFinalized возвращается, когда встреча отменена или больше не назначена
	ErrAlreadyFinalized = errors.New("call_session: appointment is already finalized")

	// ErrAlreadyEnded возвращается при повторном завершении звонка
	ErrAlreadyEnded = errors.New("call_session: call already ended")

	// ErrInvalidDuration возвращается при отрицательной длительности звонка
	ErrInvalidDuration = errors.New("call_session: invalid call duration")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("call_session: internal error")
)
