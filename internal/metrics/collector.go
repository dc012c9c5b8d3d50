package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Loader metrics
	DocumentsLoaded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "logconf_documents_loaded_total",
			Help: "Total configuration documents loaded, by serialization format",
		},
		[]string{"format"},
	)
	ValidationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "logconf_validation_errors_total",
			Help: "Total validation errors reported during document loads",
		},
		[]string{"kind"},
	)
	DocumentsResolved = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "logconf_documents_resolved_total",
			Help: "Total documents fully resolved against a variable mapping",
		},
	)

	// Activation metrics
	ActivationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "logconf_activations_total",
			Help: "Total successful activations handed to the logging facility",
		},
	)
	HandlersActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "logconf_handlers_active",
			Help: "Handlers constructed by the current activation, by class",
		},
		[]string{"class"},
	)

	// Facility metrics
	RecordsEmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "logconf_records_emitted_total",
			Help: "Records emitted through activated loggers",
		},
		[]string{"logger", "level"},
	)
)
