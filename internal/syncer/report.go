package syncer

import "time"

// Report summarises what a run did. Counts only include work that completed, so the report of a
// failed run shows how far it got.
type Report struct {
	RunId string
	// Documents deleted from the collection
	Deleted       int
	DeleteBatches int
	// Rows returned by the query
	Rows int
	// Chunks and documents written
	Chunks  int
	Written int
	Elapsed time.Duration
}
