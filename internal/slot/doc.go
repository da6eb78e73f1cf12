// Package slot provides the durable, named record that backs the preference
// store and the channel through which other contexts learn about writes to
// it.
//
// A Slot holds one opaque payload per key. Every context (process or
// in-process handle) that opens the same key on the same backend shares the
// payload; last writer wins. Watch reports writes made by other contexts.
//
// Backends:
//
//   - FileSlot keeps <dir>/<key>.json, written atomically via temp file and
//     rename, and watches the directory with fsnotify. It echoes its own
//     writes back through Watch.
//   - SQLiteSlot keeps rows in a WAL-mode modernc.org/sqlite database and
//     watches the database and WAL files, reporting only when the row for its
//     key actually changed.
//   - RedisSlot stores the payload with SET and announces each write on
//     <key>:changes. Announcements carry an origin id so a slot never
//     observes its own writes.
//   - MemorySlot handles come from a Hub and share payloads in process. They
//     are used by tests and by embedders that host several stores in one
//     program.
//
// Consumers that must not react to their own writes (see package store)
// suppress echoes themselves, so the differing echo behaviour of the
// backends is not visible above this package.
package slot
