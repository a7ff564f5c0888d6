package syncer

import "fmt"

// ErrPhase is returned when a run fails. Phase is the phase the run was in at the time; any work done
// before the failure, e.g. documents already deleted, is not undone.
type ErrPhase struct {
	Phase Phase
	Err   error
}

func (err *ErrPhase) Error() string {
	return fmt.Sprintf("sync failed while %s: %s", err.Phase, err.Err)
}

func (err *ErrPhase) Unwrap() error {
	return err.Err
}
