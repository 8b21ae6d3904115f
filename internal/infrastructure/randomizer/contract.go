package randomizer

// Randomizer источник равномерных случайных перестановок.
// Реализация обязана выдавать каждую из n! перестановок с равной вероятностью.
type Randomizer interface {
	Shuffle(n int, swap func(i, j int))
}
