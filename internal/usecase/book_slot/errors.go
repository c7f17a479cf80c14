package book_slot

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("book_slot: slot not found")

	// ErrSlotNotAvailable возвращается, когда слот уже забронирован или заблокирован
	ErrSlotNotAvailable = errors.New("book_slot: slot is not available")

	// ErrOwnSlot возвращается, когда ментор пытается забронировать собственный слот
	ErrOwnSlot = errors.New("book_slot: mentor cannot book own slot")

	// ErrBookingConflict возвращается, когда слот заняли параллельно
	ErrBookingConflict = errors.New("book_slot: slot was booked concurrently")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("book_slot: internal error")
)
