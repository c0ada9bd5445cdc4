// Package notifications sends optional ntfy push notifications for pipeline
// runs. When no topic is configured every notification is a no-op.
package notifications
