package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// EventsCreated counts events opened for betting
	EventsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "betbook_events_created_total",
		Help: "Number of betting events created",
	})

	// EventsSettled counts events closed with a declared result
	EventsSettled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "betbook_events_settled_total",
		Help: "Number of betting events settled",
	})

	// EventsDeleted counts events removed before settlement
	EventsDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "betbook_events_deleted_total",
		Help: "Number of betting events deleted with refunds",
	})

	// BetsPlaced counts accepted bets
	BetsPlaced = promauto.NewCounter(prometheus.CounterOpts{
		Name: "betbook_bets_placed_total",
		Help: "Number of bets placed",
	})

	// PayoutCredited totals the currency credited to winning bets
	PayoutCredited = promauto.NewCounter(prometheus.CounterOpts{
		Name: "betbook_payout_credited_total",
		Help: "Total currency credited to winning bets",
	})
)

// Handler exposes the default registry for scraping
func Handler() http.Handler {
	return promhttp.Handler()
}
