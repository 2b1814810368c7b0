// Package store keeps a SQLite history of generated programs.
//
// Every generation recorded through Record becomes a run row holding the
// program text and its content hash. Runs are ordered by a logical seq
// column, never by wall-clock time, so histories read back in the same
// order on every machine.
//
// Open sets journal_mode=WAL, synchronous=NORMAL and a five second
// busy_timeout, then applies schema.sql and any pending migrations. The
// schema version lives in PRAGMA user_version.
//
// Content hashes are SHA-256 over a domain prefix, a 0x00 separator and
// the NFC-normalized program text.
package store
