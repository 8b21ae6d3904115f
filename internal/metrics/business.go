package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "gift_exchange"

var (
	exchangesCreated = promauto.NewCounter(
		prometheusCounterOpts("exchanges_created_total", "Total number of created gift exchanges"),
	)
	participantsAdded = promauto.NewCounter(
		prometheusCounterOpts("participants_added_total", "Total number of participants added via API"),
	)
	drawsSucceeded = promauto.NewCounter(
		prometheusCounterOpts("draws_succeeded_total", "Total number of successful draws"),
	)
	drawsExhausted = promauto.NewCounter(
		prometheusCounterOpts("draws_exhausted_total", "Total number of draws that ran out of attempts"),
	)
	drawsInfeasible = promauto.NewCounterVec(
		prometheusCounterOpts("draws_infeasible_total", "Draws rejected by the feasibility pre-check"),
		[]string{"reason"},
	)
	drawAttempts = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "draw_attempts",
		Help:      "Number of sampling attempts spent per draw.",
		Buckets:   []float64{1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
	})
)

// IncExchangesCreated увеличивает счётчик созданных обменов.
func IncExchangesCreated() {
	exchangesCreated.Inc()
}

// AddParticipantsAdded увеличивает счётчик добавленных участников.
func AddParticipantsAdded(delta int) {
	if delta <= 0 {
		return
	}
	participantsAdded.Add(float64(delta))
}

// ObserveDrawSucceeded учитывает успешную жеребьёвку и потраченные попытки.
func ObserveDrawSucceeded(attempts int) {
	drawsSucceeded.Inc()
	drawAttempts.Observe(float64(attempts))
}

// ObserveDrawExhausted учитывает жеребьёвку, исчерпавшую лимит попыток.
func ObserveDrawExhausted(attempts int) {
	drawsExhausted.Inc()
	drawAttempts.Observe(float64(attempts))
}

// IncDrawInfeasible учитывает отказ предварительной проверки.
func IncDrawInfeasible(reason string) {
	drawsInfeasible.WithLabelValues(reason).Inc()
}

func prometheusCounterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{
		Namespace: namespace,
		Name:      name,
		Help:      help,
	}
}
