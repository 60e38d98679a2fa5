/*
Package observability turns engine lifecycle notifications into Prometheus
metrics and structured log lines.

Both are plain domain.LifecycleHooks and can be combined:

	m := observability.NewMetrics(prometheus.DefaultRegisterer)
	hooks := domain.ComposeHooks(m.Hooks(), observability.LogHooks(logger))
	g, err := tictactoe.New(tictactoe.WithLifecycleHooks(hooks))
*/
package observability
