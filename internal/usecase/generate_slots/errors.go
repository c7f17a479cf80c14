package generate_slots

import "errors"

var (
	// ErrInvalidRule возвращается, когда окно доступности некорректно (start >= end, день вне 0..6)
	ErrInvalidRule = errors.New("generate_slots: invalid availability rule")

	// ErrNotMentor возвращается, когда у пользователя нет профиля ментора
	ErrNotMentor = errors.New("generate_slots: user is not a mentor")

	// ErrRuleNotFound возвращается, когда обновляемое правило не найдено у ментора
	ErrRuleNotFound = errors.New("generate_slots: availability rule not found")

	// ErrRuleExists возвращается, когда обновление совпадает с другим окном ментора
	ErrRuleExists = errors.New("generate_slots: availability rule with the same window already exists")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("generate_slots: internal error")
)
