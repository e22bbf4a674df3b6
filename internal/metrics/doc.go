// Package metrics provides the observability hooks for documentation generation.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so no call site needs a nil check. The Prometheus implementation
// is activated by the CLI when metrics are enabled in configuration:
//
//	reg := prometheus.NewRegistry()
//	gen := generator.New(opts, generator.WithRecorder(metrics.NewPrometheusRecorder(reg)))
//	http.Handle("/metrics", metrics.HTTPHandler(reg))
package metrics
