package stripepay

import "errors"

var (
	// ErrProvider возвращается при ошибке Stripe API
	ErrProvider = errors.New("stripepay: provider error")
)
