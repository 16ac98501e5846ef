// Package queue provides the Queue composition root for the obsqueue
// package: it binds one container to one backend and exposes start/stop
// control, dispatch hooks, and an event stream.
package queue
