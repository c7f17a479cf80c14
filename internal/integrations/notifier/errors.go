package notifier

import "errors"

var (
	// ErrPublish возвращается, если не удалось опубликовать событие
	ErrPublish = errors.New("notifier: failed to publish notification")
)
