// Package history provides a gorm-backed audit log of dispatch outcomes.
// Every entry handed to the control process and every preparation failure is
// recorded; the queue itself is never persisted here.
package history
