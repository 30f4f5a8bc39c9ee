// Package resource limits the cost of staging datasets from blob storage:
// concurrent range reads, in-flight buffer memory and bytes per second.
package resource
