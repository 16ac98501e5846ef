// Package backend provides the polling backend that feeds queue entries to
// an external control process, one at a time. The poll step treats reading
// the cursor, fetching the entry there, and dispatching it as one atomic
// unit against the container's lock.
package backend
