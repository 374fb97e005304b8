package game

import "pickem-live/internal/db"

// ScoreDelta is the per-alias increment produced by scoring one round.
type ScoreDelta struct {
	AliasID      string
	PointDelta   int
	CorrectDelta int
}

// scoreVotes computes the increments for one round's vote snapshot. Only
// aliases whose current vote matches the correct option earn anything;
// everyone else is left untouched rather than penalized.
func scoreVotes(votes []db.Vote, correctOptionID string, pointsPerCorrect int) []ScoreDelta {
	deltas := make([]ScoreDelta, 0, len(votes))
	for _, vote := range votes {
		if vote.OptionID != correctOptionID {
			continue
		}
		deltas = append(deltas, ScoreDelta{
			AliasID:      vote.AliasID,
			PointDelta:   pointsPerCorrect,
			CorrectDelta: 1,
		})
	}
	return deltas
}
