// Package services defines the error taxonomy shared by external-service
// clients.
//
// Sentinel errors classify failures into the categories the resolvers care
// about: connection and configuration errors are fatal and abort a run, while
// transient, validation, and not-found errors are absorbed into per-item
// statuses. Wrap attaches service/operation context while preserving the
// marker for errors.Is checks.
package services
