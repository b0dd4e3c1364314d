package types

import (
	"time"

	"github.com/threadguard/threadguard/internal/database/types/enum"
)

// RateWindow stores the action count for one actor within one aligned
// time window. Exactly one row exists per key and the count never
// decreases; expired rows are removed by the sweep worker as an
// optimization only.
type RateWindow struct {
	ActorID     uint64          `bun:",pk"`         // Actor performing the actions
	Action      enum.RateAction `bun:",pk"`         // Action category being counted
	WindowStart time.Time       `bun:",pk,notnull"` // Action timestamp truncated to the window size
	Count       int64           `bun:",notnull"`    // Monotonically increasing attempt count
	UpdatedAt   time.Time       `bun:",notnull"`    // When the count last changed
}

// Expired returns true once the window is old enough to purge without
// affecting rate decisions (age beyond twice the window size).
func (w *RateWindow) Expired(now time.Time, windowSize time.Duration) bool {
	return now.Sub(w.WindowStart) > 2*windowSize
}
