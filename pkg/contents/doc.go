// Package contents implements the ordered containers at the heart of the
// obsqueue engine.
//
// This package includes:
//   - Contents, the base insertion-ordered container of entries
//   - Indexed, a container carrying the dispatch cursor
//   - PasteBuff, an indexed container with a clipboard for cut/paste editing
//
// Most users should import the root package github.com/obsworks/obsqueue
// which re-exports these types.
package contents
