// Package engine runs the parallel ingestion-and-reduction pass.
//
// A fixed pool of workers, sized to min(GOMAXPROCS, len(tasks)), claims
// file indexes from a shared [Cursor] with an atomic add. Each worker owns
// one [ingest.Ingester] and folds every file it claims into a local pair,
// then merges that pair into the shared [Global] with compare-and-swap
// retry loops. Nothing is locked; workers only meet at the final join.
//
// Per-file failures never fail the run. They are counted in [Counters] so
// the caller can see how many files were left out of the result.
package engine
