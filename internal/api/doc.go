// Package api contains the HTTP handlers, request/response models, and
// error mapping for the public REST surface: authentication, enrollment,
// the project dashboard, and the AI simulation endpoints.
package api
