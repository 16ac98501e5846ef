// Package security provides validation, sanitization, and limits for the
// obsqueue package.
package security
