// Package api contains the HTTP handlers, request/response models, and the
// error-to-status mapping for the REST surface. Handlers stay thin: they
// decode and validate input, delegate to the service layer, and shape the
// response.
package api
