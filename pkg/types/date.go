package types

import "time"

// DateOnly возвращает календарную дату t (полночь UTC)
// Все даты слотов и встреч хранятся в таком виде
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// IsSameDay проверяет, что две даты относятся к одному календарному дню
func IsSameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// WeekdayMondayFirst возвращает день недели, где 0 - понедельник, 6 - воскресенье
func WeekdayMondayFirst(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}
