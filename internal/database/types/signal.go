package types

import (
	"time"

	"github.com/threadguard/threadguard/internal/database/types/enum"
)

// AbuseSignal records one detected voting abuse pattern. Rows are
// append-only; the sweep worker removes signals past the configured
// retention.
type AbuseSignal struct {
	ID          int64           `bun:",pk,autoincrement"` // Unique numeric identifier
	SignalType  enum.SignalType `bun:",notnull"`          // Detected pattern
	ActorID     uint64          `bun:",notnull"`          // Actor exhibiting the pattern
	CommentID   uint64          `bun:",nullzero"`         // Target comment, if the pattern has one
	Severity    int             `bun:",notnull"`          // Signal strength 1-5
	Fingerprint string          `bun:",nullzero"`         // Correlating cluster ID supplied by the caller
	DetectedAt  time.Time       `bun:",notnull"`          // When the pattern was detected
}
