// Package metrics holds the Prometheus metrics for the backend.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TransactionsSynced counts transactions stored from the aggregator.
	TransactionsSynced = promauto.NewCounter(prometheus.CounterOpts{
		Name: "centsible_transactions_synced_total",
		Help: "Number of transactions stored from the transaction aggregator",
	})

	// TransactionsImported counts transactions stored from file imports.
	TransactionsImported = promauto.NewCounter(prometheus.CounterOpts{
		Name: "centsible_transactions_imported_total",
		Help: "Number of transactions stored from file imports",
	})

	// TransactionsClassified counts classified transactions per bucket.
	TransactionsClassified = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "centsible_transactions_classified_total",
		Help: "Number of transactions classified, partitioned by bucket",
	}, []string{"bucket"})
)
