package exchange

import "gift-exchange-service/internal/infrastructure/randomizer"

// DummyList строит ленту "барабана" длиной до count из перемешанных копий source.
// Последние len(source)-1 элементов гарантированно не содержат победителя,
// чтобы лента не останавливалась на нём раньше времени.
func DummyList[T any, K comparable](r randomizer.Randomizer, source []T, count int, winner K, key func(T) K) []T {
	if len(source) == 0 || count <= 0 {
		return []T{}
	}
	list := make([]T, 0, count+len(source))
	for i := 0; i < count/len(source); i++ {
		list = append(list, Shuffle(r, source)...)
	}
	for _, item := range Shuffle(r, source) {
		if key(item) != winner {
			list = append(list, item)
		}
	}
	if len(list) > count {
		list = list[len(list)-count:]
	}
	return list
}
