// Package schedule provides queue activation windows.
//
// This package includes:
//   - Schedule interface for computing the next occurrence of an instant
//   - Every() for fixed-interval schedules
//   - Daily() and Weekly() for clock-based schedules
//   - Cron() / ParseCron() for cron expression-based schedules
//   - Window and Runner for starting and stopping a queue at window edges
//
// Most users should import the root package github.com/obsworks/obsqueue
// which re-exports these functions.
package schedule
