package httpserver

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var commitOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "mrhook",
	Name:      "order_commits_total",
	Help:      "Checkout commit attempts by outcome.",
}, []string{"outcome"})

const (
	outcomeCommitted    = "committed"
	outcomeEmptyCart    = "empty_cart"
	outcomeInsufficient = "insufficient_stock"
	outcomeError        = "error"
)
