package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Garden metric names
const (
	MetricNamePlantsWatered         = "garden_plants_watered_total"
	MetricNamePlantsDied            = "garden_plants_died_total"
	MetricNamePlantsWilting         = "garden_plants_wilting_total"
	MetricNamePlantsPurchased       = "garden_plants_purchased_total"
	MetricNamePlantsRevived         = "garden_plants_revived_total"
	MetricNameItemsPurchased        = "garden_items_purchased_total"
	MetricNameExperienceGranted     = "garden_experience_granted_total"
	MetricNameTrades                = "garden_trades_total"
	MetricNameRenders               = "garden_renders_total"
	MetricNameRenderDuration        = "garden_render_duration_seconds"
	MetricNameCapabilityLookups     = "garden_capability_lookups_total"
	MetricNameLifecycleTickDuration = "garden_lifecycle_tick_duration_seconds"
	MetricNameActiveTrades          = "garden_active_trades"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Garden metric help text
const (
	HelpTextPlantsWatered         = "Total number of successful waterings"
	HelpTextPlantsDied            = "Total number of plants killed by the lifecycle worker"
	HelpTextPlantsWilting         = "Total number of imminent-death notifications"
	HelpTextPlantsPurchased       = "Total number of plants adopted from the shop"
	HelpTextPlantsRevived         = "Total number of plants revived"
	HelpTextItemsPurchased        = "Total number of items and pots purchased"
	HelpTextExperienceGranted     = "Total experience granted by watering"
	HelpTextTrades                = "Total number of finished trades by outcome"
	HelpTextRenders               = "Total number of image renders"
	HelpTextRenderDuration        = "Image render latency in seconds"
	HelpTextCapabilityLookups     = "Total number of premium and vote lookups by result"
	HelpTextLifecycleTickDuration = "Lifecycle tick latency in seconds"
	HelpTextActiveTrades          = "Current number of open trade sessions"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod    = "method"
	LabelPath      = "path"
	LabelStatus    = "status"
	LabelType      = "type"
	LabelItem      = "item"
	LabelGuest     = "guest"
	LabelPlantType = "plant_type"
	LabelOutcome   = "outcome"
	LabelKind      = "kind"
	LabelResult    = "result"
)

// Label values
const (
	OutcomeCommitted = "committed"
	ResultHit        = "hit"
	ResultMiss       = "miss"
	ResultError      = "error"
	RenderKindPNG    = "png"
	RenderKindGIF    = "gif"
	RenderKindGarden = "garden"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets range from 1ms to 10s
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// RenderLatencyBuckets range from 1ms to 5s; growth GIFs sit at the top end
var RenderLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5}

// ============================================================================
// Log Messages
// ============================================================================

const (
	LogMsgEventPayloadUnexpected = "Event payload has unexpected shape"
	LogMsgMetricsRecorded        = "Metrics recorded for event"
)
