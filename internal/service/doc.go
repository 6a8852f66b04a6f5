// Package service contains the business logic of the application: category
// reference resolution, the task query and mutation engine, and category
// management. Services depend on the store interfaces and are invoked by the
// HTTP handlers in internal/api.
package service
