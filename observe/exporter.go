package observe

import (
	"go.opencensus.io/exporter/prometheus"
)

// NewPrometheusExporter will return a view exporter that serves every
// registered view on a Prometheus scrape endpoint. The exporter is an
// http.Handler, so it can be mounted wherever metrics are served; hand
// it to view.RegisterExporter to start receiving data.
func NewPrometheusExporter(namespace string, onErr func(err error)) (*prometheus.Exporter, error) {
	return prometheus.NewExporter(prometheus.Options{
		Namespace: namespace,
		OnError:   onErr,
	})
}
