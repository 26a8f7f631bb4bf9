// Package metrics collects run statistics (Prometheus collectors on a private
// registry) and runtime memory snapshots.
package metrics
