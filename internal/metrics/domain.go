package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CertificatesRequested = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "edgedomains_certificates_requested_total",
			Help: "Certificate requests sent to the certificate authority",
		},
		[]string{"result"},
	)

	CertificatesSwept = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "edgedomains_certificates_swept_total",
			Help: "Certificates handled by the sweeper, by outcome",
		},
		[]string{"result"},
	)

	DistributionUpdates = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "edgedomains_distribution_updates_total",
			Help: "Conditional distribution updates, by outcome",
		},
		[]string{"result"},
	)

	TrackedCertificates = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "edgedomains_tracked_certificates",
			Help: "Number of tracked certificate ARNs after the last sweep",
		},
	)
)

// Result returns the label value for an operation outcome.
func Result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
