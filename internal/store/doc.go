// Package store defines persistence interfaces and sentinel errors shared
// by all storage backends. Postgres implementations live in
// internal/platform/postgres; the redis-backed challenge store lives in
// internal/platform/redisotp.
package store
