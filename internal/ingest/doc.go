// Package ingest turns one file into one local (min, max) pair.
//
// A [Source] acquires a read-only [View] of a file's bytes: a shared
// memory mapping on Linux and macOS, or a read-once buffer on other
// platforms and on non-OS afero filesystems. An [Ingester] runs the
// tokenizer over the view in fixed-size batches and folds each batch with
// its reducer.
//
// Failures are not errors here. A file that cannot be opened, is empty, or
// cannot be mapped is reported through [Outcome] and contributes nothing;
// the caller decides whether to count it.
package ingest
