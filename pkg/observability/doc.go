/*
Package observability turns engine lifecycle events into logs and Prometheus metrics.

Metrics exposes counters for step visits, extraction attempts and finished runs
through domain.LifecycleHooks, and NewRouter serves them over HTTP alongside a
health probe and the workflow diagram.
*/
package observability
