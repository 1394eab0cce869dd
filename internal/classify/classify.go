// Package classify derives display attributes from raw dashboard data.
// Every function is pure.
package classify

import (
	"fmt"
	"iter"
	"strings"
	"time"

	"kitchen-dashboard/internal/domain"
)

// UrgentAfterMinutes is how long an order may wait before it is urgent.
const UrgentAfterMinutes = 20

// DefaultMaxShown is how many items an order card lists before "+N more".
const DefaultMaxShown = 2

// ElapsedMinutes is floor((now - timestamp) / 1m). It is negative when the
// timestamp is in the future.
func ElapsedMinutes(timestamp, now time.Time) int {
	d := now.Sub(timestamp)
	m := d / time.Minute
	if d < 0 && d%time.Minute != 0 {
		m--
	}
	return int(m)
}

func IsUrgent(elapsedMinutes int) bool {
	return elapsedMinutes > UrgentAfterMinutes
}

type Tier string

const (
	TierEmpty  Tier = "empty"
	TierNormal Tier = "normal"
	TierBusy   Tier = "busy"
	TierHigh   Tier = "high"
)

func QueueVolumeTier(totalInQueue int) Tier {
	switch {
	case totalInQueue <= 0:
		return TierEmpty
	case totalInQueue <= 3:
		return TierNormal
	case totalInQueue <= 6:
		return TierBusy
	default:
		return TierHigh
	}
}

func TierLabel(t Tier) string {
	switch t {
	case TierNormal:
		return "Normal queue level"
	case TierBusy:
		return "Busy period"
	case TierHigh:
		return "High volume!"
	default:
		return "No customers in queue"
	}
}

type VisualClass string

const (
	ClassAccent    VisualClass = "accent"
	ClassPrimary   VisualClass = "primary"
	ClassSecondary VisualClass = "secondary"
	ClassMuted     VisualClass = "muted"
)

// StatusVisualClass never fails: unknown statuses get ClassMuted.
func StatusVisualClass(s domain.KitchenStatus) VisualClass {
	switch s {
	case domain.KitchenStatusPending:
		return ClassAccent
	case domain.KitchenStatusInPreparation:
		return ClassPrimary
	case domain.KitchenStatusReady:
		return ClassSecondary
	default:
		return ClassMuted
	}
}

// StatusLabel turns "in_preparation" into "in preparation". Only the first
// underscore is replaced.
func StatusLabel(s domain.KitchenStatus) string {
	return strings.Replace(string(s), "_", " ", 1)
}

// OrderLabel renders an order id as "#007".
func OrderLabel(id int) string {
	return "#" + PadCount(id, 3)
}

func PadCount(n, width int) string {
	return fmt.Sprintf("%0*d", width, n)
}

// Summary is a lazily built description of an order's items. It holds no
// rendered text; each call to All or String walks the items again.
type Summary struct {
	items    []domain.Item
	maxShown int
}

func ItemsSummary(items []domain.Item, maxShown int) Summary {
	if maxShown < 0 {
		maxShown = 0
	}
	return Summary{items: items, maxShown: maxShown}
}

// All yields "<quantity>x <name>" for the shown items, then "+N more" when
// some were left out.
func (s Summary) All() iter.Seq[string] {
	return func(yield func(string) bool) {
		shown := min(s.maxShown, len(s.items))
		for _, item := range s.items[:shown] {
			if !yield(fmt.Sprintf("%dx %s", item.Quantity, item.Name)) {
				return
			}
		}
		if hidden := len(s.items) - shown; hidden > 0 {
			yield(fmt.Sprintf("+%d more", hidden))
		}
	}
}

func (s Summary) String() string {
	var b strings.Builder
	for part := range s.All() {
		if b.Len() > 0 {
			b.WriteString(", ")
		}
		b.WriteString(part)
	}
	return b.String()
}
