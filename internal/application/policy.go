package application

type EntryState string

const (
	EntryUnloaded   EntryState = "unloaded"
	EntryLoaded     EntryState = "loaded"
	EntryOptimistic EntryState = "optimistically_modified"
	EntryReconciled EntryState = "reconciled"
	EntryStale      EntryState = "stale"
)

// FailedWrite describes an optimistic write the server rejected.
type FailedWrite struct {
	// Superseded is true when another local write touched the entry after this one.
	Superseded bool
	// Removed is true when the entry left the store while the request was in flight.
	Removed bool
}

// Resolution tells the store what to do with the local entry after a failed write.
// An empty State leaves the entry's state untouched.
type Resolution struct {
	Restore bool
	State   EntryState
}

type FailurePolicy interface {
	Resolve(w FailedWrite) Resolution
}

// KeepOptimistic leaves the rejected value visible and marks the entry stale until
// the next reload.
type KeepOptimistic struct{}

func (KeepOptimistic) Resolve(w FailedWrite) Resolution {
	if w.Removed {
		return Resolution{}
	}
	return Resolution{State: EntryStale}
}

// RollbackOnFailure restores the pre-write value unless a newer local write has
// already replaced it.
type RollbackOnFailure struct{}

func (RollbackOnFailure) Resolve(w FailedWrite) Resolution {
	switch {
	case w.Removed:
		return Resolution{}
	case w.Superseded:
		return Resolution{}
	default:
		return Resolution{Restore: true, State: EntryLoaded}
	}
}

func FailurePolicyFor(rollback bool) FailurePolicy {
	if rollback {
		return RollbackOnFailure{}
	}
	return KeepOptimistic{}
}
