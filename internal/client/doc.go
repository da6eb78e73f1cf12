// Package client is a small HTTP client for a running `backdrop serve`.
// The CLI uses it when --server is given so that one-shot commands go
// through the serving process instead of opening the slot themselves.
package client
