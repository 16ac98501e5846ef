package core

import (
	"fmt"
	"sort"
	"strings"
)

// FailureKind tags the class of a preparation failure.
type FailureKind string

const (
	// FailurePrecondition marks a structurally unrecoverable precondition
	// that a human or higher layer must resolve.
	FailurePrecondition FailureKind = "unrecoverable precondition unmet"

	// FailureMissingTarget marks a job with no resolvable target.
	FailureMissingTarget FailureKind = "missing target"

	// FailureWriteFailed marks a job whose materialization produced no
	// artifacts.
	FailureWriteFailed FailureKind = "write produced no artifacts"
)

// FailureReason describes why a job could not be prepared for dispatch.
// It is data, not a thrown fault: it flows as a return value so the backend
// or a higher layer can decide how to surface it, leaving the queue order
// intact for the operator to edit and resume.
type FailureReason struct {
	Kind    FailureKind
	Details map[string]string
}

// NewFailureReason builds a FailureReason of the given kind. details may be
// nil; a copy is taken so the caller's map stays independent.
func NewFailureReason(kind FailureKind, details map[string]string) *FailureReason {
	r := &FailureReason{Kind: kind, Details: make(map[string]string, len(details))}
	for k, v := range details {
		r.Details[k] = v
	}
	return r
}

// Detail returns the named contextual field, or "" when absent.
func (r *FailureReason) Detail(key string) string {
	if r == nil || r.Details == nil {
		return ""
	}
	return r.Details[key]
}

// String renders the reason with its details in stable key order.
func (r *FailureReason) String() string {
	if r == nil {
		return ""
	}
	if len(r.Details) == 0 {
		return string(r.Kind)
	}
	keys := make([]string, 0, len(r.Details))
	for k := range r.Details {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(string(r.Kind))
	b.WriteString(":")
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%s", k, r.Details[k])
	}
	return b.String()
}
