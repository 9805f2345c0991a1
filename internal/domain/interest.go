package domain

import "time"

type InterestStatus string

const (
	InterestPending  InterestStatus = "pending"
	InterestAccepted InterestStatus = "accepted"
	InterestRejected InterestStatus = "rejected"
)

func (s InterestStatus) Valid() bool {
	switch s {
	case InterestPending, InterestAccepted, InterestRejected:
		return true
	}
	return false
}

// Interest is a directed request from requester to target. It is created
// pending, resolved exactly once by the target, and immutable afterwards.
type Interest struct {
	ID          int            `json:"id" db:"id"`
	RequesterID int            `json:"requester_id" db:"requester_id"`
	TargetID    int            `json:"target_id" db:"target_id"`
	Status      InterestStatus `json:"status" db:"status"`
	Message     *string        `json:"message" db:"message"`
	CreatedAt   time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at" db:"updated_at"`
}

// Active reports whether the interest still blocks a new request for the same
// ordered pair. Rejected interests do not.
func (i *Interest) Active() bool {
	return i.Status == InterestPending || i.Status == InterestAccepted
}

// InterestWithProfile pairs an interest with the counterpart's profile: the
// requester for the received view, the target for the sent view. Profile is
// nil when the counterpart's profile can no longer be resolved.
type InterestWithProfile struct {
	Interest
	Profile *UserProfile `json:"profile,omitempty"`
}
