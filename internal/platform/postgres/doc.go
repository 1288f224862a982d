// Package postgres provides PostgreSQL implementations of the store
// interfaces defined in the store package. All implementations accept a
// store.DBTX so they can run against a database connection or inside a
// transaction, and map driver errors to the store package's sentinel
// errors before returning them.
package postgres
