// Package core — error taxonomy.
// All pipeline failures surface at the Fetcher and Store boundaries; the
// Normalizer and Segmenter are total functions and have no error paths.
package core

import "fmt"

// UnknownKeyError reports a key absent from the source catalog.
type UnknownKeyError struct {
	Key string
}

func (e *UnknownKeyError) Error() string {
	return fmt.Sprintf("unknown catalog key %q", e.Key)
}

// StatusError reports a non-2xx response from the remote source.
// It is distinct from TransportError so callers can tell "source responded
// with an error" from "source unreachable".
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d for %s", e.Code, e.URL)
}

// TransportError reports a network-level failure (DNS, timeout, reset)
// before any HTTP status was received.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("fetching %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// StoreError reports a durable-storage failure. Op is "read" or "write".
type StoreError struct {
	Op  string
	Key string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }
