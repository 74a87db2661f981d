// Package content loads the fixed HTML pages and resolves the video asset.
//
// Everything is read once before the server accepts connections and is
// never mutated afterwards, so handlers share the Store without locking.
// Pages are compiled into the binary; a directory on disk may replace them.
// A missing page aborts startup, a missing video does not.
package content
