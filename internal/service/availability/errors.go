package availability

import "errors"

var (
	// ErrNotMentor возвращается, когда у пользователя нет профиля ментора
	ErrNotMentor = errors.New("user is not a mentor")

	// ErrRuleNotFound возвращается, когда правило не найдено у ментора
	ErrRuleNotFound = errors.New("availability rule not found")

	// ErrRuleHasBookedSlots возвращается при удалении правила с забронированными слотами
	ErrRuleHasBookedSlots = errors.New("availability rule has booked slots")

	// ErrRuleHasHistory возвращается, когда на слоты правила ссылаются прошлые встречи
	ErrRuleHasHistory = errors.New("availability rule has appointment history")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
