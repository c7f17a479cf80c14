package send_reminders

import "errors"

var (
	// ErrInternal возвращается, когда не удалось получить список встреч
	ErrInternal = errors.New("send_reminders: internal error")
)
