package dashboard

import (
	"time"

	"kitchen-dashboard/internal/domain"
)

type Phase string

const (
	PhaseLoading Phase = "loading"
	PhaseReady   Phase = "ready"
	PhaseError   Phase = "error"
)

// User-facing messages for the error state.
const (
	MessageFetchFailed    = "Failed to connect to server"
	MessageCompleteFailed = "Failed to update order status"
)

// State is an immutable value. In PhaseReady, Snapshot is the current data.
// In PhaseError, Snapshot is the last snapshot that was ready, or nil.
type State struct {
	Phase     Phase
	Snapshot  *domain.DashboardSnapshot
	Message   string
	Err       error
	Seq       uint64
	UpdatedAt time.Time
}

func readyState(snapshot *domain.DashboardSnapshot) State {
	return State{Phase: PhaseReady, Snapshot: snapshot}
}

func errorState(prev State, message string, err error) State {
	return State{
		Phase:    PhaseError,
		Snapshot: prev.Snapshot,
		Message:  message,
		Err:      err,
	}
}
