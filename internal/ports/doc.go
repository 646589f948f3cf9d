// Package ports defines interfaces between layers in the hexagonal architecture.
// Service ports are implemented by the application layer and called by handlers.
// Store and executor ports are implemented by outbound adapters and platform
// packages and consumed by the commit coordinator.
package ports
