package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidMoney возвращается при некорректном денежном значении
var ErrInvalidMoney = errors.New("types: invalid money value")

// Money денежная сумма в минимальных единицах валюты (копейки, пайсы, центы)
// В БД хранится как NUMERIC(10,2)
type Money int64

// NewMoney создает сумму из целой и дробной части: NewMoney(150, 0) = 150.00
func NewMoney(units, cents int64) Money {
	return Money(units*100 + cents)
}

// ParseMoney парсит десятичную строку с не более чем двумя знаками после точки
func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalidMoney)
	}

	negative := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	intPart, fracPart, _ := strings.Cut(s, ".")
	if intPart == "" {
		intPart = "0"
	}
	// NUMERIC может прийти с лишними нулями (150.0000)
	fracPart = strings.TrimRight(fracPart, "0")
	if len(fracPart) > 2 {
		return 0, fmt.Errorf("%w: too many fractional digits in %q", ErrInvalidMoney, s)
	}
	for len(fracPart) < 2 {
		fracPart += "0"
	}

	units, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidMoney, err)
	}
	cents, err := strconv.ParseInt(fracPart, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidMoney, err)
	}

	m := NewMoney(units, cents)
	if negative {
		m = -m
	}
	return m, nil
}

// MinorUnits возвращает сумму в минимальных единицах
func (m Money) MinorUnits() int64 {
	return int64(m)
}

// String форматирует сумму с двумя знаками после точки
func (m Money) String() string {
	sign := ""
	v := int64(m)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

// Scan реализует sql.Scanner для NUMERIC колонок
func (m *Money) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*m = 0
		return nil
	case []byte:
		return m.scanString(string(v))
	case string:
		return m.scanString(v)
	case int64:
		*m = NewMoney(v, 0)
		return nil
	case float64:
		return m.scanString(strconv.FormatFloat(v, 'f', 2, 64))
	default:
		return fmt.Errorf("%w: unsupported type %T", ErrInvalidMoney, value)
	}
}

// Value реализует driver.Valuer
func (m Money) Value() (driver.Value, error) {
	return m.String(), nil
}

func (m *Money) scanString(s string) error {
	parsed, err := ParseMoney(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// MulDivHalfEven вычисляет a*b/c с банковским округлением до целого
// c должен быть положительным
func MulDivHalfEven(a, b, c int64) int64 {
	n := a * b
	q := n / c
	r := n % c
	if r < 0 {
		r = -r
	}

	switch {
	case 2*r > c:
		q += sign(n)
	case 2*r == c && q%2 != 0:
		q += sign(n)
	}
	return q
}

func sign(v int64) int64 {
	if v < 0 {
		return -1
	}
	return 1
}
