package exchange

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"gift-exchange-service/internal/domain"
	"gift-exchange-service/internal/infrastructure/randomizer"
)

// countingRandomizer считает количество перемешиваний, то есть попыток генератора.
type countingRandomizer struct {
	next  randomizer.Randomizer
	calls int
}

func (c *countingRandomizer) Shuffle(n int, swap func(i, j int)) {
	c.calls++
	c.next.Shuffle(n, swap)
}

func participants(groups ...string) []domain.Participant {
	res := make([]domain.Participant, len(groups))
	for i, g := range groups {
		id := string(rune('A' + i))
		res[i] = domain.Participant{ID: id, Name: id, GroupID: g}
	}
	return res
}

func TestCheckFeasibility(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		input    []domain.Participant
		feasible bool
		reason   domain.FeasibilityReason
	}{
		{"empty", nil, false, domain.ReasonTooFewParticipants},
		{"single participant", participants("A"), false, domain.ReasonTooFewParticipants},
		{"two in one group", participants("g", "g"), false, domain.ReasonSingleGroup},
		{"everyone in one group", participants("g", "g", "g", "g"), false, domain.ReasonSingleGroup},
		{"group of two out of three", participants("g", "g", "C"), false, domain.ReasonOversizedGroup},
		{"group of three out of five", participants("g", "g", "g", "D", "E"), false, domain.ReasonOversizedGroup},
		{"all singletons", participants("A", "B", "C", "D"), true, domain.ReasonProvisionallyFeasible},
		{"two pairs", participants("g1", "g1", "g2", "g2"), true, domain.ReasonProvisionallyFeasible},
		{"half of odd count", participants("g", "g", "C", "D", "E"), true, domain.ReasonProvisionallyFeasible},
		{"two singletons", participants("A", "B"), true, domain.ReasonProvisionallyFeasible},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := CheckFeasibility(tc.input)
			require.Equal(t, tc.feasible, got.Feasible)
			require.Equal(t, tc.reason, got.Reason)
		})
	}
}

func TestGenerate_AllSingletons(t *testing.T) {
	input := participants("A", "B", "C", "D")
	gen := NewGenerator(randomizer.NewSeeded(1))

	assignments, ok := gen.Generate(input, domain.DefaultMaxAttempts)
	require.True(t, ok)
	require.Len(t, assignments, 4)
	require.NoError(t, Validate(input, assignments))
	for i, a := range assignments {
		require.Equal(t, input[i].ID, a.GiverID, "giver order follows input order")
	}
}

func TestGenerate_TwoPairsCrossGroups(t *testing.T) {
	input := participants("g1", "g1", "g2", "g2")
	gen := NewGenerator(randomizer.NewSeeded(7))

	assignments, ok := gen.Generate(input, domain.DefaultMaxAttempts)
	require.True(t, ok)
	require.NoError(t, Validate(input, assignments))

	byGiver := map[string]string{}
	for _, a := range assignments {
		byGiver[a.GiverID] = a.ReceiverID
	}
	require.Contains(t, []string{"C", "D"}, byGiver["A"])
	require.Contains(t, []string{"C", "D"}, byGiver["B"])
	require.Contains(t, []string{"A", "B"}, byGiver["C"])
	require.Contains(t, []string{"A", "B"}, byGiver["D"])
}

func TestGenerate_HonoursAttemptCap(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name        string
		input       []domain.Participant
		maxAttempts int
		want        int
	}{
		{"single group", participants("g", "g"), 7, 7},
		{"oversized group", participants("g", "g", "C"), 25, 25},
		{"lonely participant", participants("A"), 3, 3},
		{"default cap", participants("g", "g"), 0, domain.DefaultMaxAttempts},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			counter := &countingRandomizer{next: randomizer.NewSeeded(3)}
			res := NewGenerator(counter).GenerateDetailed(tc.input, tc.maxAttempts)
			require.False(t, res.OK)
			require.Nil(t, res.Assignments)
			require.Equal(t, tc.want, res.Attempts)
			require.Equal(t, tc.want, counter.calls)
		})
	}
}

func TestGenerate_StopsOnFirstAcceptedAttempt(t *testing.T) {
	counter := &countingRandomizer{next: randomizer.NewSeeded(11)}
	res := NewGenerator(counter).GenerateDetailed(participants("A", "B", "C", "D", "E"), 100)
	require.True(t, res.OK)
	require.Equal(t, res.Attempts, counter.calls)
}

func TestGenerate_DoesNotMutateInput(t *testing.T) {
	input := participants("g1", "g1", "g2", "g2", "E")
	snapshot := append([]domain.Participant(nil), input...)

	_, ok := NewGenerator(randomizer.NewSeeded(5)).Generate(input, domain.DefaultMaxAttempts)
	require.True(t, ok)
	require.Equal(t, snapshot, input)
}

func TestGenerate_RandomConfigurationsAreValid(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	gen := NewGenerator(randomizer.NewSeeded(99))

	for i := 0; i < 300; i++ {
		n := 2 + rng.Intn(9)
		groups := make([]string, n)
		for j := range groups {
			groups[j] = fmt.Sprintf("g%d", rng.Intn(n))
		}
		input := participants(groups...)
		if !CheckFeasibility(input).Feasible {
			continue
		}
		assignments, ok := gen.Generate(input, domain.DefaultMaxAttempts)
		if !ok {
			continue
		}
		require.NoError(t, Validate(input, assignments), "groups=%s", strings.Join(groups, ","))
	}
}

func TestShuffle_DoesNotMutateInput(t *testing.T) {
	src := []string{"a", "b", "c", "d", "e"}
	shuffled := Shuffle(randomizer.NewSeeded(1), src)
	require.Equal(t, []string{"a", "b", "c", "d", "e"}, src)
	require.ElementsMatch(t, src, shuffled)
}

func TestShuffle_EmptyAndSingle(t *testing.T) {
	r := randomizer.NewSeeded(1)
	require.Empty(t, Shuffle(r, []int{}))
	require.Equal(t, []int{42}, Shuffle(r, []int{42}))
}

func TestShuffle_IsUniform(t *testing.T) {
	const trials = 48000 // 24 перестановки по ~2000 раз
	r := randomizer.NewSeeded(2024)
	src := []int{1, 2, 3, 4}
	counts := map[string]int{}
	for i := 0; i < trials; i++ {
		counts[fmt.Sprint(Shuffle(r, src))]++
	}
	require.Len(t, counts, 24)
	expected := trials / 24
	for perm, count := range counts {
		require.InDelta(t, expected, count, 300, "permutation %s", perm)
	}
}

func TestValidate_RejectsBrokenSets(t *testing.T) {
	input := participants("g1", "g1", "g2", "g2")

	cases := map[string][]domain.Assignment{
		"partial": {{GiverID: "A", ReceiverID: "C"}},
		"self": {
			{GiverID: "A", ReceiverID: "A"}, {GiverID: "B", ReceiverID: "C"},
			{GiverID: "C", ReceiverID: "B"}, {GiverID: "D", ReceiverID: "D"},
		},
		"same group": {
			{GiverID: "A", ReceiverID: "B"}, {GiverID: "B", ReceiverID: "A"},
			{GiverID: "C", ReceiverID: "D"}, {GiverID: "D", ReceiverID: "C"},
		},
		"receives twice": {
			{GiverID: "A", ReceiverID: "C"}, {GiverID: "B", ReceiverID: "C"},
			{GiverID: "C", ReceiverID: "A"}, {GiverID: "D", ReceiverID: "B"},
		},
		"unknown receiver": {
			{GiverID: "A", ReceiverID: "Z"}, {GiverID: "B", ReceiverID: "D"},
			{GiverID: "C", ReceiverID: "A"}, {GiverID: "D", ReceiverID: "B"},
		},
	}
	for name, assignments := range cases {
		require.ErrorIs(t, Validate(input, assignments), ErrInvalidAssignment, name)
	}

	valid := []domain.Assignment{
		{GiverID: "A", ReceiverID: "C"}, {GiverID: "B", ReceiverID: "D"},
		{GiverID: "C", ReceiverID: "B"}, {GiverID: "D", ReceiverID: "A"},
	}
	require.NoError(t, Validate(input, valid))
}
