/*
Package wiredb implements a generic asynchronous document store over one
logical table addressed by a primary key and a secondary identifier field.

Values implement the wirebuf.Object capability (or are wrapped in
MsgpackObject); the store encodes them into opaque byte payloads through the
wire buffer, hands the bytes to a statement executor together with the key
and identifier, and decodes them back on read.

We implement:

1. Tables, a typed CRUD/query surface over rows of (key, identifier, data).
Every operation is dispatched to a shared worker pool and returns a Future.

2. Statement executors: MySQL through database/sql, embedded Bolt, and a
transient in-memory executor. All three interpret the same fixed set of
statement shapes; the store never builds ad-hoc queries.

3. Entries, materialized rows with write-back conveniences.

# Semantics worth knowing

Insert falls back to an update of all rows matching the key or identifier
when the backend reports the insert as not applied. The two steps are not
wrapped in a transaction; concurrent inserts for one key race.

Row-level decode failures during multi-row reads are skipped, not surfaced.
A failed statement fails the operation's future; nothing retries.

The identifier is non-unique and mutable; SortByIdentifier orders by its
numeric value, with non-numeric identifiers sorting as zero.
*/
package wiredb
