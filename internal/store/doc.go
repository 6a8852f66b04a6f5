// Package store defines the persistence contracts the services depend on,
// along with the error taxonomy shared by all store implementations.
// Concrete implementations live in internal/platform/postgres.
package store
