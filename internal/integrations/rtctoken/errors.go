package rtctoken

import "errors"

var (
	// ErrSign возвращается, если не удалось подписать токен
	ErrSign = errors.New("rtctoken: failed to sign token")

	// ErrInvalidToken возвращается для поддельных или истекших токенов
	ErrInvalidToken = errors.New("rtctoken: invalid token")
)
