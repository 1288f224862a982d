// Package service contains the application-specific use cases and business
// logic. It orchestrates interactions between domain objects and the stores
// (defined in internal/store) to fulfill application features, layering
// cross-cutting concerns like the advisory list cache on top of persistence.
//
// Services receive dependencies through constructor injection and depend on
// store interfaces, never on specific infrastructure implementations.
package service
