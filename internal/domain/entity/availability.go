package entity

import "github.com/google/uuid"

// DetailAvailability — вычисляемая проекция свободных мест на позицию:
// Quantity = count позиции минус число подтверждённых неснятых откликов.
// Не хранится; пересчитывается запросом внутри той же транзакции,
// что и решение о подтверждении.
type DetailAvailability struct {
	DetailID uuid.UUID
	Quantity int
}

func (a DetailAvailability) IsFull() bool {
	return a.Quantity <= 0
}

// AllFull сообщает, заняты ли все позиции заказа.
func AllFull(availabilities []DetailAvailability) bool {
	for _, av := range availabilities {
		if !av.IsFull() {
			return false
		}
	}
	return true
}
