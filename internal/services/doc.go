// Package services contains the application services behind the HTTP
// handlers: dataset access and aggregation, authentication, user action
// logging and health reporting. Services hold no transport concerns;
// handlers translate their errors into RFC 7807 responses.
package services
