/*
Package observability turns the engine's tick hook into structured logs and
Prometheus metrics.

Hooks compose: register Combine(SlogHook(log), metrics.Hook()) on a context
to get both.
*/
package observability
