/*
Package observability provides lifecycle hooks for monitoring runners.

Metrics exports Prometheus collectors fed by run, visit and transition events;
LoggingHooks writes the same events to a structured logger. Both are plain
domain.LifecycleHooks and can be merged.
*/
package observability
