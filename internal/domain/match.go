package domain

import "time"

// Match pairs two users. User1ID is always the smaller id, so a pair of
// users maps to exactly one match regardless of who found it first.
type Match struct {
	ID                int       `json:"id" db:"id"`
	User1ID           int       `json:"user1" db:"user1_id"`
	User2ID           int       `json:"user2" db:"user2_id"`
	IsAcceptedByUser1 bool      `json:"is_accepted_by_user1" db:"is_accepted_by_user1"`
	IsAcceptedByUser2 bool      `json:"is_accepted_by_user2" db:"is_accepted_by_user2"`
	Explanation       *string   `json:"explanation" db:"match_explanation"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
}

// NewMatch builds the canonical match for a pair, accepted on the
// initiator's side.
func NewMatch(initiatorID, otherID int) (*Match, error) {
	if initiatorID == otherID {
		return nil, ErrCannotMatchSelf
	}
	user1ID, user2ID := CanonicalPair(initiatorID, otherID)
	match := &Match{
		User1ID: user1ID,
		User2ID: user2ID,
	}
	if err := match.AcceptBy(initiatorID); err != nil {
		return nil, err
	}
	return match, nil
}

// CanonicalPair orders two user ids as (smaller, larger).
func CanonicalPair(a, b int) (int, int) {
	if a > b {
		return b, a
	}
	return a, b
}

func (m *Match) HasUser(userID int) bool {
	return m.User1ID == userID || m.User2ID == userID
}

func (m *Match) GetOtherUserID(userID int) (int, bool) {
	if m.User1ID == userID {
		return m.User2ID, true
	}
	if m.User2ID == userID {
		return m.User1ID, true
	}
	return 0, false
}

// AcceptBy sets the acceptance flag for the given side.
func (m *Match) AcceptBy(userID int) error {
	switch userID {
	case m.User1ID:
		m.IsAcceptedByUser1 = true
	case m.User2ID:
		m.IsAcceptedByUser2 = true
	default:
		return ErrNotMatchParticipant
	}
	return nil
}

func (m *Match) IsMutual() bool {
	return m.IsAcceptedByUser1 && m.IsAcceptedByUser2
}
