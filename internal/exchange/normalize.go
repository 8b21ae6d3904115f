package exchange

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"gift-exchange-service/internal/domain"
)

// Normalize материализует неявные группы: участник без GroupID попадает
// в одиночную группу со своим ID. Непустой ключ, даже из одних пробелов,
// остаётся ключом группы как есть. Возвращает копию.
func Normalize(participants []domain.Participant) []domain.Participant {
	res := make([]domain.Participant, len(participants))
	for i, p := range participants {
		if p.GroupID == "" {
			p.GroupID = p.ID
		}
		res[i] = p
	}
	return res
}

// GroupSizes считает участников в каждой используемой группе.
// Пустые группы сюда не попадают по построению.
func GroupSizes(participants []domain.Participant) map[string]int {
	sizes := make(map[string]int)
	for _, p := range participants {
		sizes[p.GroupID]++
	}
	return sizes
}

// MaxGroupSize размер самой большой группы (0 для пустого списка).
func MaxGroupSize(participants []domain.Participant) int {
	var largest int
	for _, size := range GroupSizes(participants) {
		largest = max(largest, size)
	}
	return largest
}

// NormalizeName приводит имя к каноническому виду для поиска дублей:
// trim, NFKC, нижний регистр.
func NormalizeName(name string) string {
	return strings.ToLower(norm.NFKC.String(strings.TrimSpace(name)))
}

// DuplicateNames возвращает нормализованные имена, встречающиеся более одного раза,
// в порядке первого повтора.
func DuplicateNames(participants []domain.Participant) []string {
	seen := make(map[string]int, len(participants))
	duplicates := []string{}
	for _, p := range participants {
		name := NormalizeName(p.Name)
		seen[name]++
		if seen[name] == 2 {
			duplicates = append(duplicates, name)
		}
	}
	return duplicates
}
