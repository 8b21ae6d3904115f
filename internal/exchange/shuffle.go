package exchange

import "gift-exchange-service/internal/infrastructure/randomizer"

// Shuffle возвращает новую равномерно перемешанную копию src. Исходный срез не меняется.
func Shuffle[T any](r randomizer.Randomizer, src []T) []T {
	shuffled := make([]T, len(src))
	copy(shuffled, src)
	r.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled
}
