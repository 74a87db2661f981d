// Package media implements HTTP byte-range delivery of a single asset.
//
// Negotiate maps an optional Range header onto a Window: the full asset
// (200), a validated partial span (206), or ErrInvalidRange (416 with
// "Content-Range: bytes */<size>"). Only the "bytes=<start>-[<end>]" form
// is accepted; anything else is rejected rather than guessed at.
//
// Streamer.Copy then moves exactly that window from an io.ReaderAt to the
// response in fixed-size chunks. Each request reads through its own
// section cursor, so concurrent windows over one file never interfere,
// and a failed write or cancelled context ends the copy before the next
// read.
package media
