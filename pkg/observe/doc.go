// Package observe provides vtree.Observer implementations backed by
// Prometheus metrics and OpenTelemetry traces.
//
//	reg := prometheus.NewRegistry()
//	rt := vtree.NewRuntime(
//	    vtree.WithScheduler(vtree.NewScheduler()),
//	    vtree.WithObserver(observe.Multi(
//	        observe.Prometheus(observe.WithRegistry(reg)),
//	        observe.Tracer(),
//	    )),
//	)
//
// Observers are called on the rendering goroutine.
package observe
