// Package scheduler holds the pure meeting coordination state machine: the
// meeting record, its status lifecycle and the overlap resolvers that pick an
// agreed time and venue from two independently submitted preference lists.
//
// Nothing in this package performs I/O. Callers load a Meeting, apply one
// transition and persist the result atomically.
package scheduler
