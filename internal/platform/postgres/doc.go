// Package postgres implements the store interfaces against PostgreSQL,
// using database/sql over the pgx stdlib driver.
package postgres
