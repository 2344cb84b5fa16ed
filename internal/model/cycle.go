package model

// CycleResult aggregates the outcome of one scheduler invocation.
// Skipped covers units that were handled without a delivery: removed
// invalid tokens, accounts without voter rows, rewards not yet claimable.
type CycleResult struct {
	Processed int
	Succeeded int
	Failed    int
	Skipped   int
}
