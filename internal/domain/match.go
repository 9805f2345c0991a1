package domain

import "time"

// Match records confirmed mutual interest. The user pair is unordered and
// stored canonically with the smaller id first; there is at most one match
// per pair and matches are never mutated or deleted.
type Match struct {
	ID        int       `json:"id" db:"id"`
	User1ID   int       `json:"user1_id" db:"user1_id"`
	User2ID   int       `json:"user2_id" db:"user2_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// CanonicalPair orders two user ids so that the smaller comes first.
func CanonicalPair(a, b int) (int, int) {
	if a > b {
		return b, a
	}
	return a, b
}

func (m *Match) HasUser(userID int) bool {
	return m.User1ID == userID || m.User2ID == userID
}

func (m *Match) OtherUserID(userID int) (int, bool) {
	if m.User1ID == userID {
		return m.User2ID, true
	}
	if m.User2ID == userID {
		return m.User1ID, true
	}
	return 0, false
}

// MatchWithProfile pairs a match with the other party's profile. Profile is
// nil when that profile can no longer be resolved.
type MatchWithProfile struct {
	Match
	Profile *UserProfile `json:"profile,omitempty"`
}
