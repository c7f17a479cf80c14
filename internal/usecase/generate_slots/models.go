package generate_slots

import (
	"time"

	"github.com/Arunkino/MindHaven-Backend/internal/domain"
	"github.com/Arunkino/MindHaven-Backend/pkg/types"
)

// Request модель запроса на создание или изменение окна доступности
type Request struct {
	UserID      int64            // ID пользователя-ментора
	RuleID      *int64           // ID правила при обновлении (nil - создание)
	DayOfWeek   int              // День недели, 0 - понедельник
	StartTime   types.TimeString // Начало окна (например, "09:00")
	EndTime     types.TimeString // Конец окна
	IsRecurring bool             // Повторять еженедельно (горизонт 4 недели)
	CurrentDate *time.Time       // Первая дата горизонта вместо сегодняшней, используется только Y-M-D (опционально)
}

// Response модель ответа с правилом и созданными слотами
type Response struct {
	Rule         *domain.AvailabilityRule
	CreatedSlots []*domain.Slot
	SkippedCount int // Слоты, пропущенные из-за пересечения
}
