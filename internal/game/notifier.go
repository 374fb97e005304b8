package game

// ChangeType tags a committed mutation for subscribers.
type ChangeType string

const (
	RoundChanged ChangeType = "ROUND_CHANGED"
	VoteChanged  ChangeType = "VOTE_CHANGED"
	ScoreChanged ChangeType = "SCORE_CHANGED"
)

// Change describes a committed state change on a game.
type Change struct {
	Type    ChangeType `json:"type"`
	GameID  string     `json:"game_id"`
	RoundID string     `json:"round_id,omitempty"`
}

// Notifier receives changes strictly after the corresponding transaction has
// committed. Delivery semantics belong to the implementation; the core never
// blocks on it and never notifies for a rolled-back attempt.
type Notifier interface {
	GameChanged(change Change)
}

func (s *Service) notify(changeType ChangeType, gameID, roundID string) {
	if s.notifier == nil {
		return
	}
	s.notifier.GameChanged(Change{Type: changeType, GameID: gameID, RoundID: roundID})
}
