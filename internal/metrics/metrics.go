package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventHandlerErrors,
			Help: HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)
)

// Garden Metrics
var (
	PlantsWatered = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNamePlantsWatered,
			Help: HelpTextPlantsWatered,
		},
		[]string{LabelGuest},
	)

	PlantsDied = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNamePlantsDied,
			Help: HelpTextPlantsDied,
		},
		[]string{LabelPlantType},
	)

	PlantsWilting = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNamePlantsWilting,
			Help: HelpTextPlantsWilting,
		},
	)

	PlantsPurchased = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNamePlantsPurchased,
			Help: HelpTextPlantsPurchased,
		},
		[]string{LabelPlantType},
	)

	PlantsRevived = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNamePlantsRevived,
			Help: HelpTextPlantsRevived,
		},
	)

	ItemsPurchased = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameItemsPurchased,
			Help: HelpTextItemsPurchased,
		},
		[]string{LabelItem},
	)

	ExperienceGranted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameExperienceGranted,
			Help: HelpTextExperienceGranted,
		},
	)

	Trades = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameTrades,
			Help: HelpTextTrades,
		},
		[]string{LabelOutcome},
	)

	ActiveTrades = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameActiveTrades,
			Help: HelpTextActiveTrades,
		},
	)

	Renders = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRenders,
			Help: HelpTextRenders,
		},
		[]string{LabelKind},
	)

	RenderDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameRenderDuration,
			Help:    HelpTextRenderDuration,
			Buckets: RenderLatencyBuckets,
		},
		[]string{LabelKind},
	)

	CapabilityLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCapabilityLookups,
			Help: HelpTextCapabilityLookups,
		},
		[]string{LabelKind, LabelResult},
	)

	LifecycleTickDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    MetricNameLifecycleTickDuration,
			Help:    HelpTextLifecycleTickDuration,
			Buckets: HTTPLatencyBuckets,
		},
	)
)
