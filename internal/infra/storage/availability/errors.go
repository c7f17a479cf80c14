package availability

import "errors"

var (
	// ErrRuleNotFound возвращается, когда правило доступности не найдено
	ErrRuleNotFound = errors.New("availability.repository: rule not found")

	// ErrRuleExists возвращается, когда у ментора уже есть такое же окно
	ErrRuleExists = errors.New("availability.repository: rule with the same window already exists")

	// ErrRuleInUse возвращается, когда у правила остались слоты
	ErrRuleInUse = errors.New("availability.repository: rule still has slots")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("availability.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("availability.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("availability.repository: failed to scan row")
)
