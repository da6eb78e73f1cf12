// Package cli wires the backdrop commands onto cobra.
//
// One-shot commands (list, current, select, add, update, delete, css) open
// the configured slot directly, or talk to a running `backdrop serve` when
// --server is given. watch, serve and pick keep the store open and follow
// changes made by other processes.
package cli
