package domain

import "time"

type CallQueue struct {
	ActiveCalls      int
	CustomersWaiting int
}

func (q CallQueue) TotalInQueue() int {
	return q.ActiveCalls + q.CustomersWaiting
}

// DashboardSnapshot is one fetch of the remote dashboard. It is replaced
// wholesale on every successful refresh and never mutated.
type DashboardSnapshot struct {
	CallQueue        CallQueue
	ActiveOrders     []Order
	TotalOrdersToday int
	FetchedAt        time.Time
}
