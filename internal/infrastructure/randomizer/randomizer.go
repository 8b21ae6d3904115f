package randomizer

import (
	"math/rand"
	"sync"
	"time"
)

type randomizerImpl struct {
	mu  sync.Mutex // Защищает доступ к генератору случайных чисел
	rnd *rand.Rand
}

// New создаёт потокобезопасный randomizer на основе math/rand с сидом от текущего времени.
// Криптостойкость не нужна: жеребьёвке достаточно равномерности.
func New() Randomizer {
	return NewSeeded(time.Now().UnixNano())
}

// NewSeeded создаёт randomizer с фиксированным сидом. Используется в тестах
// для воспроизводимых сценариев.
func NewSeeded(seed int64) Randomizer {
	return &randomizerImpl{
		rnd: rand.New(rand.NewSource(seed)), // #nosec G404
	}
}

// Shuffle перемешивает элементы алгоритмом Fisher-Yates (rand.Shuffle).
// Потокобезопасна благодаря мьютексу.
func (r *randomizerImpl) Shuffle(n int, swap func(i, j int)) {
	if n <= 1 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rnd.Shuffle(n, swap)
}
