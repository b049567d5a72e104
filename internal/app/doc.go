// Package app wires configuration, logging, the reconciliation service and
// the HTTP surface into a runnable application with graceful shutdown.
package app
