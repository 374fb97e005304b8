package game

import (
	"sort"

	"pickem-live/internal/db"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// applyScoringDeltas upserts cumulative alias scores inside the scoring
// transaction. The increment happens in SQL against the stored row, so two
// rounds scored back to back can never lose an update.
func applyScoringDeltas(tx *gorm.DB, gameID string, deltas []ScoreDelta) error {
	now := timeNowUTC()
	for _, delta := range deltas {
		score := db.AliasScore{
			ID:           uuid.NewString(),
			GameID:       gameID,
			AliasID:      delta.AliasID,
			Points:       delta.PointDelta,
			CorrectCount: delta.CorrectDelta,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "game_id"}, {Name: "alias_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"points":        gorm.Expr("alias_scores.points + EXCLUDED.points"),
				"correct_count": gorm.Expr("alias_scores.correct_count + EXCLUDED.correct_count"),
				"updated_at":    now,
			}),
		}).Create(&score).Error
		if err != nil {
			return err
		}
	}
	return nil
}

// StandingRow is one leaderboard entry.
type StandingRow struct {
	AliasID      string `json:"alias_id"`
	AliasName    string `json:"alias_name"`
	OwnerName    string `json:"owner_name,omitempty"`
	Points       int    `json:"points"`
	CorrectCount int    `json:"correct_count"`
}

// sortStandings orders points descending, ties broken by alias name
// ascending (case-sensitive), so equal scores always render in the same
// order on every poll.
func sortStandings(rows []StandingRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Points != rows[j].Points {
			return rows[i].Points > rows[j].Points
		}
		return rows[i].AliasName < rows[j].AliasName
	})
}

// Standings returns the cumulative leaderboard for a game. A limit of 0
// returns the whole table; the display projection passes its configured cap.
// The table is bounded by the participant count, so sorting in process is
// cheap even at polling frequency.
func (s *Service) Standings(gameID string, limit int) ([]StandingRow, error) {
	rows := make([]StandingRow, 0)
	err := s.db.Table("alias_scores").
		Select("alias_scores.alias_id, aliases.name AS alias_name, aliases.owner_name, alias_scores.points, alias_scores.correct_count").
		Joins("JOIN aliases ON aliases.id = alias_scores.alias_id").
		Where("alias_scores.game_id = ?", gameID).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	sortStandings(rows)
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}
