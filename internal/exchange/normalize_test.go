package exchange

import (
	"testing"

	"github.com/stretchr/testify/require"

	"gift-exchange-service/internal/domain"
	"gift-exchange-service/internal/infrastructure/randomizer"
)

func TestNormalizeFillsMissingGroups(t *testing.T) {
	input := []domain.Participant{
		{ID: "p1", Name: "Alice"},
		{ID: "p2", Name: "Bob", GroupID: "family"},
		{ID: "p3", Name: "Carol", GroupID: "  "},
	}
	got := Normalize(input)

	require.Equal(t, "p1", got[0].GroupID)
	require.Equal(t, "family", got[1].GroupID)
	require.Equal(t, "  ", got[2].GroupID)
	require.Empty(t, input[0].GroupID, "input must stay untouched")
}

func TestNormalizeKeepsBlankGroupKeyShared(t *testing.T) {
	input := []domain.Participant{
		{ID: "a", GroupID: " "},
		{ID: "b", GroupID: " "},
	}
	require.Equal(t, domain.ReasonSingleGroup, CheckFeasibility(Normalize(input)).Reason)
}

func TestNormalizeMakesUngroupedFeasible(t *testing.T) {
	input := []domain.Participant{{ID: "p1"}, {ID: "p2"}}
	require.Equal(t, domain.ReasonSingleGroup, CheckFeasibility(input).Reason)
	require.True(t, CheckFeasibility(Normalize(input)).Feasible)
}

func TestMaxGroupSize(t *testing.T) {
	require.Equal(t, 0, MaxGroupSize(nil))
	require.Equal(t, 3, MaxGroupSize(participants("g", "x", "g", "g", "y")))
}

func TestNormalizeName(t *testing.T) {
	require.Equal(t, "alice", NormalizeName("  Alice "))
	// Полноширинные символы сводятся к ASCII через NFKC.
	require.Equal(t, "alice", NormalizeName("ＡＬＩＣＥ"))
}

func TestDuplicateNames(t *testing.T) {
	input := []domain.Participant{
		{ID: "1", Name: "Alice"},
		{ID: "2", Name: "alice "},
		{ID: "3", Name: "Bob"},
		{ID: "4", Name: "ALICE"},
		{ID: "5", Name: "ｂｏｂ"},
	}
	require.Equal(t, []string{"alice", "bob"}, DuplicateNames(input))
	require.Empty(t, DuplicateNames(input[:1]))
}

func TestDummyListNeverEndsWithWinner(t *testing.T) {
	source := participants("A", "B", "C", "D")
	key := func(p domain.Participant) string { return p.ID }
	r := randomizer.NewSeeded(8)

	for _, count := range []int{1, 3, 4, 10, 30} {
		list := DummyList(r, source, count, "B", key)
		require.LessOrEqual(t, len(list), count)
		tail := list
		if len(tail) > len(source)-1 {
			tail = tail[len(tail)-(len(source)-1):]
		}
		for _, p := range tail {
			require.NotEqual(t, "B", p.ID, "count=%d", count)
		}
	}
	require.Len(t, DummyList(r, source, 30, "B", key), 30)
}

func TestDummyListEdgeCases(t *testing.T) {
	r := randomizer.NewSeeded(8)
	key := func(s string) string { return s }
	require.Empty(t, DummyList(r, []string{}, 10, "a", key))
	require.Empty(t, DummyList(r, []string{"a", "b"}, 0, "a", key))
}
