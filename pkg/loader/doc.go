// Package loader decodes the delimited text inputs of an alignment run.
//
// Edge files hold one header row followed by source,target,weight rows.
// Mapping files hold one header row followed by source,target rows. Headers
// are skipped without inspection. A row with the wrong number of fields, a
// weight that is not a base-10 integer, or malformed quoting fails the
// whole load with an error matching ErrFormat; unreadable inputs fail with
// an error matching ErrIO.
//
// Inputs are local paths or s3://bucket/key objects. A ".sz" suffix marks
// snappy-framed compression. Each load reports a BLAKE2b-256 digest of the
// decoded table bytes, so compressed and plain copies of a file agree.
package loader
