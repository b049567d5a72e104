// Package http contains the HTTP handlers for the reconciliation API.
//
// Handlers follow a uniform shape: a constructor taking the service, a
// logger and the shared error handler, plus a Routes method returning a
// chi.Router. Error responses are RFC 7807 problem documents.
package http
