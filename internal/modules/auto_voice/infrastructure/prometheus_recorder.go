package infrastructure

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/sglre6355/tempvoice/internal/modules/auto_voice/application/ports"
)

const metricsNamespace = "tempvoice"

// PrometheusRecorder counts channel lifecycle outcomes.
type PrometheusRecorder struct {
	primaryProvisioned prometheus.Counter
	temporaryCreated   prometheus.Counter
	temporaryDeleted   prometheus.Counter
	handlerFailures    *prometheus.CounterVec
}

// NewPrometheusRecorder creates the counters and registers them with reg.
func NewPrometheusRecorder(reg prometheus.Registerer) *PrometheusRecorder {
	factory := promauto.With(reg)

	return &PrometheusRecorder{
		primaryProvisioned: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "primary_channels_provisioned_total",
			Help:      "Primary channels created by the create command.",
		}),
		temporaryCreated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "temporary_channels_created_total",
			Help:      "Temporary channels created and registered.",
		}),
		temporaryDeleted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "temporary_channels_deleted_total",
			Help:      "Temporary channels deleted and deregistered.",
		}),
		handlerFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "membership_handler_failures_total",
			Help:      "Membership handler invocations that returned an error or panicked.",
		}, []string{"handler"}),
	}
}

func (r *PrometheusRecorder) PrimaryChannelProvisioned() {
	r.primaryProvisioned.Inc()
}

func (r *PrometheusRecorder) TemporaryChannelCreated() {
	r.temporaryCreated.Inc()
}

func (r *PrometheusRecorder) TemporaryChannelDeleted() {
	r.temporaryDeleted.Inc()
}

func (r *PrometheusRecorder) HandlerFailed(handler string) {
	r.handlerFailures.WithLabelValues(handler).Inc()
}

var _ ports.LifecycleRecorder = (*PrometheusRecorder)(nil)
