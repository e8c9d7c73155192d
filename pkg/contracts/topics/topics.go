package topics

const (
	// Rounds carries settled rounds and cashouts
	Rounds = "redblack_rounds"

	// SnapshotChannel is the Redis channel session snapshots are broadcast on
	SnapshotChannel = "redblack_snapshots"
)
