// Package postgres provides PostgreSQL implementations of the store
// interfaces, using the pgx stdlib driver over database/sql. Dynamic filter
// and update queries are composed with squirrel.
package postgres
