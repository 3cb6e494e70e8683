/*
Package observability turns factory hooks into Prometheus metrics and
structured log records.

	metrics := observability.NewMetrics(prometheus.DefaultRegisterer)
	f := cantype.NewFactory(cantype.WithHooks(observability.Combine(
		metrics.Hooks(),
		observability.LogHooks(logger),
	)))
*/
package observability
