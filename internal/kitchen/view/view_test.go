package view

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kitchen-dashboard/internal/classify"
	"kitchen-dashboard/internal/domain"
	"kitchen-dashboard/internal/kitchen/dashboard"
	"kitchen-dashboard/internal/testutil"
)

var now = time.Date(2026, 3, 1, 18, 30, 15, 0, time.UTC)

func readyState(s domain.DashboardSnapshot) dashboard.State {
	return dashboard.State{Phase: dashboard.PhaseReady, Snapshot: &s, Seq: 1, UpdatedAt: now}
}

func TestBuild_Loading(t *testing.T) {
	d := Build(dashboard.State{Phase: dashboard.PhaseLoading}, now, DefaultOptions())

	assert.Equal(t, dashboard.PhaseLoading, d.Phase)
	require.NotNil(t, d.Loading)
	assert.Equal(t, LoadingMessage, d.Loading.Message)
	assert.Nil(t, d.Orders)
	assert.Nil(t, d.Error)
}

func TestBuild_Ready(t *testing.T) {
	d := Build(readyState(testutil.SampleSnapshot(now)), now, DefaultOptions())

	assert.Equal(t, dashboard.PhaseReady, d.Phase)
	assert.Nil(t, d.Error)
	assert.False(t, d.Stale)

	require.NotNil(t, d.Header)
	assert.Equal(t, "012", d.Header.TotalOrdersLabel)
	assert.Equal(t, "18:30:15", d.Header.Clock)

	require.NotNil(t, d.Queue)
	assert.Equal(t, 5, d.Queue.TotalInQueue)
	assert.Equal(t, "05", d.Queue.TotalInQueueLabel)
	assert.Equal(t, "02", d.Queue.ActiveCallsLabel)
	assert.Equal(t, classify.TierBusy, d.Queue.Tier)
	assert.Equal(t, "Busy period", d.Queue.TierLabel)
	assert.True(t, d.Queue.ActiveCallsPulse)
	assert.True(t, d.Queue.CustomersWaitingPulse)

	require.NotNil(t, d.Orders)
	assert.Equal(t, 2, d.Orders.Count)
	assert.Equal(t, "2 orders pending", d.Orders.CountLabel)
	require.Len(t, d.Orders.Cards, 2)

	urgent := d.Orders.Cards[0]
	assert.Equal(t, "#042", urgent.Label)
	assert.Equal(t, 25, urgent.ElapsedMinutes)
	assert.Equal(t, "25m ago", urgent.ElapsedLabel)
	assert.True(t, urgent.Urgent)
	assert.Equal(t, "in preparation", urgent.StatusLabel)
	assert.Equal(t, classify.ClassPrimary, urgent.StatusClass)
	assert.Equal(t, "delivery", urgent.OrderType)
	assert.Equal(t, "12 Elm St", urgent.Address)
	assert.False(t, urgent.Pickup)
	assert.Equal(t, "2x Margherita, 1x Garlic Bread, +1 more", urgent.Items)
	assert.Equal(t, "$48.96", urgent.TotalPrice)
	assert.Equal(t, "18:05", urgent.PlacedAt)

	fresh := d.Orders.Cards[1]
	assert.False(t, fresh.Urgent)
	assert.True(t, fresh.Pickup)
	assert.Empty(t, fresh.Address)
	assert.Equal(t, classify.ClassAccent, fresh.StatusClass)
	assert.Equal(t, "1x Hawaiian", fresh.Items)
}

func TestBuild_EmptyOrders(t *testing.T) {
	d := Build(readyState(domain.DashboardSnapshot{}), now, DefaultOptions())

	require.NotNil(t, d.Orders)
	assert.True(t, d.Orders.Empty)
	assert.Equal(t, NoOrdersMessage, d.Orders.EmptyMessage)
	assert.Equal(t, "0 orders pending", d.Orders.CountLabel)
	assert.NotNil(t, d.Orders.Cards)
	assert.Equal(t, classify.TierEmpty, d.Queue.Tier)
	assert.False(t, d.Queue.ActiveCallsPulse)
}

func TestBuild_SingleOrderLabel(t *testing.T) {
	snap := testutil.SampleSnapshot(now)
	snap.ActiveOrders = snap.ActiveOrders[:1]

	d := Build(readyState(snap), now, DefaultOptions())
	assert.Equal(t, "1 order pending", d.Orders.CountLabel)
}

func TestBuild_ErrorHidesSnapshotByDefault(t *testing.T) {
	snap := testutil.SampleSnapshot(now)
	st := dashboard.State{
		Phase:    dashboard.PhaseError,
		Snapshot: &snap,
		Message:  dashboard.MessageFetchFailed,
	}

	d := Build(st, now, DefaultOptions())

	require.NotNil(t, d.Error)
	assert.Equal(t, ErrorTitle, d.Error.Title)
	assert.Equal(t, dashboard.MessageFetchFailed, d.Error.Message)
	assert.Equal(t, RetryLabel, d.Error.RetryLabel)
	assert.False(t, d.Stale)
	assert.Nil(t, d.Orders)
	assert.Nil(t, d.Queue)
}

func TestBuild_ErrorWithStaleSnapshot(t *testing.T) {
	snap := testutil.SampleSnapshot(now)
	st := dashboard.State{Phase: dashboard.PhaseError, Snapshot: &snap, Message: dashboard.MessageCompleteFailed}
	opts := DefaultOptions()
	opts.ShowStaleOnError = true

	d := Build(st, now, opts)

	require.NotNil(t, d.Error)
	assert.True(t, d.Stale)
	require.NotNil(t, d.Orders)
	assert.Len(t, d.Orders.Cards, 2)

	noSnap := Build(dashboard.State{Phase: dashboard.PhaseError, Message: "x"}, now, opts)
	assert.False(t, noSnap.Stale)
	assert.Nil(t, noSnap.Orders)
}

func TestBuild_IdenticalInputGivesIdenticalDisplay(t *testing.T) {
	first := Build(readyState(testutil.SampleSnapshot(now)), now, DefaultOptions())
	refetched := Build(readyState(testutil.SampleSnapshot(now)), now, DefaultOptions())

	assert.Equal(t, first, refetched)
}

func TestBuild_UnknownStatusAndType(t *testing.T) {
	snap := domain.DashboardSnapshot{
		ActiveOrders: []domain.Order{{
			ID:            1,
			Fulfillment:   domain.OtherFulfillment{Type: "drive_thru"},
			Timestamp:     now.Add(2 * time.Minute),
			KitchenStatus: "on_hold",
		}},
	}

	card := Build(readyState(snap), now, DefaultOptions()).Orders.Cards[0]

	assert.Equal(t, classify.ClassMuted, card.StatusClass)
	assert.Equal(t, "drive_thru", card.OrderType)
	assert.False(t, card.Pickup)
	assert.Empty(t, card.Address)
	assert.Equal(t, -2, card.ElapsedMinutes)
	assert.False(t, card.Urgent)
	assert.Equal(t, "$0.00", card.TotalPrice)
	assert.Equal(t, "", card.Items)
}
