// Package http contains the chi HTTP handlers for the dashboard API.
// Handlers depend on service interfaces, translate query parameters and
// request bodies into service calls, and surface failures as RFC 7807
// problem responses.
package http
