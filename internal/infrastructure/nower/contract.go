package nower

import "time"

// Nower источник текущего времени для отметок created_at/drawn_at.
// Подменяется в тестах репозитория.
type Nower interface {
	Now() time.Time
}
