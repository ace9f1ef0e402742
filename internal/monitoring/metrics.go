package monitoring

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/kirinyoku/tix-ledger/internal/domain"
)

const (
	StatusOK       = "ok"
	StatusRejected = "rejected"
	StatusError    = "error"
)

var (
	ledgerOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledger_operations_total",
			Help: "Ledger operations by outcome",
		},
		[]string{"operation", "status"},
	)

	ticketsIssued = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "ledger_tickets_issued",
			Help: "Tickets issued per concert",
		},
		[]string{"concert_id"},
	)

	ticketsRemaining = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "ledger_tickets_remaining",
			Help: "Tickets still available per concert",
		},
		[]string{"concert_id"},
	)

	settledRevenue = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledger_settled_revenue_total",
			Help: "Revenue credited to balances at cash-out",
		},
		[]string{"party"},
	)
)

// RecordOperation counts one ledger operation by outcome.
func RecordOperation(operation string, err error) {
	status := StatusOK
	if err != nil {
		status = StatusError
		if domain.IsRejected(err) {
			status = StatusRejected
		}
	}
	ledgerOperations.WithLabelValues(operation, status).Inc()
}

// SetSupply publishes the supply gauges of a concert.
func SetSupply(concertID uint64, issued, remaining uint32) {
	label := strconv.FormatUint(concertID, 10)
	ticketsIssued.WithLabelValues(label).Set(float64(issued))
	ticketsRemaining.WithLabelValues(label).Set(float64(remaining))
}

// AddSettlement records the split of one cash-out.
func AddSettlement(artistCut, venueCut uint64) {
	settledRevenue.WithLabelValues("artist").Add(float64(artistCut))
	settledRevenue.WithLabelValues("venue").Add(float64(venueCut))
}
