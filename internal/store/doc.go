// Package store holds the preference state of one context and keeps it in
// step with every other context that shares the same slot.
//
// # Lifecycle
//
// Open loads the slot (falling back to the default state when it is empty or
// unreadable, without writing anything back) and starts a goroutine that
// feeds slot changes to Observe. Close stops that goroutine. Tests and
// embedders create as many independent stores as they need.
//
// # Mutations
//
// Select, AddCustom, UpdateCustom and DeleteCustom each compute the next
// state from a copy, write the complete snapshot to the slot and only then
// swap it in. A failed mutation, for whatever reason, leaves the state as it
// was. A mutation that would not change anything writes nothing.
//
// # Two channels
//
// Changes reach the Store through the slot (cross-context, asynchronous,
// possibly echoing this Store's own writes) and leave it through Subscribe
// (in-process, synchronous). Every Event carries an Origin so subscribers can
// tell their own mutations from changes made elsewhere.
//
// Before each write the Store fingerprints the payload with xxhash. The next
// observed change is compared with that fingerprint once: a match is the
// echo of the write and is dropped, anything else clears the fingerprint and
// is applied. Applying means decode, normalise the selection, and swap in the
// result only when it differs structurally from the current state, so
// repeated payloads are no-ops and nothing observed is ever written back.
package store
