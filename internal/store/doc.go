// Package store keeps responsibility records in a SQLite file.
//
// A store holds one ordered record set, written by "workday import" and read
// back by the records loader. Computed allocations are never stored.
//
// # Tables
//
//   - responsibilities: one row per record, ordered by position
//   - responsibility_dates: the dates of Discrete records, ordered by ordinal
//
// Reads always order by position (and ordinal for dates) so that a record set
// round-trips in input order.
//
// # Files
//
// schema.sql stamps user_version with the store format. Open refuses SQLite
// files carrying anything else, and OpenReadOnly opens with mode=ro so that
// loading records never writes to the file it reads.
package store
