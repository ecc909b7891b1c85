package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type BusinessMetrics struct {
	CustomersCreatedTotal prometheus.Counter
	CustomersDeletedTotal prometheus.Counter
	CreditsCreatedTotal   prometheus.Counter
}

var Business = BusinessMetrics{
	CustomersCreatedTotal: promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "credit_engine_customers_created_total",
			Help: "Total number of customers successfully created.",
		},
	),
	CustomersDeletedTotal: promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "credit_engine_customers_deleted_total",
			Help: "Total number of customers deleted.",
		},
	),
	CreditsCreatedTotal: promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "credit_engine_credits_created_total",
			Help: "Total number of credit applications successfully created.",
		},
	),
}

func RecordCustomerCreated() {
	Business.CustomersCreatedTotal.Inc()
}

func RecordCustomerDeleted() {
	Business.CustomersDeletedTotal.Inc()
}

func RecordCreditCreated() {
	Business.CreditsCreatedTotal.Inc()
}
