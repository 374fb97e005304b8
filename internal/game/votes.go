package game

import (
	"errors"

	"pickem-live/internal/db"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CastVote records the alias's current choice for an open round, replacing
// any previous choice. The round row is locked FOR SHARE so a vote and a
// concurrent ScoreRound serialize on the round: either the vote commits
// before scoring reads the snapshot, or the vote observes SCORED and is
// rejected. Votes for different aliases never contend.
func (s *Service) CastVote(roundID, aliasID, optionID string) error {
	var gameID string
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var round db.Round
		err := tx.Clauses(clause.Locking{Strength: "SHARE"}).
			First(&round, "id = ?", roundID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFoundf("round not found")
		}
		if err != nil {
			return err
		}
		gameID = round.GameID
		if round.Status != db.RoundOpen {
			return roundClosedf("round is not open for voting")
		}

		var option db.Option
		if err := tx.First(&option, "id = ? AND round_id = ?", optionID, roundID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return validationf("option does not belong to this round")
			}
			return err
		}

		var alias db.Alias
		if err := tx.First(&alias, "id = ?", aliasID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFoundf("alias not found")
			}
			return err
		}
		if alias.GameID != round.GameID {
			return validationf("alias does not belong to this game")
		}
		if !alias.IsActive {
			return validationf("alias is inactive")
		}

		now := timeNowUTC()
		vote := db.Vote{
			ID:        uuid.NewString(),
			RoundID:   roundID,
			AliasID:   aliasID,
			OptionID:  optionID,
			OwnerName: alias.OwnerName,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "round_id"}, {Name: "alias_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"option_id":  optionID,
				"updated_at": now,
			}),
		}).Create(&vote).Error; err != nil {
			return err
		}
		return appendEvent(tx, round.GameID, &round.ID, "vote_cast", EventPayload{
			AliasID:  aliasID,
			OptionID: optionID,
		})
	})
	if err != nil {
		return err
	}
	s.notify(VoteChanged, gameID, roundID)
	return nil
}

// VotesForRound returns the current choice of every alias that has voted in
// the round.
func (s *Service) VotesForRound(roundID string) (map[string]string, error) {
	if _, err := s.RoundByID(roundID); err != nil {
		return nil, err
	}
	var votes []db.Vote
	if err := s.db.Where("round_id = ?", roundID).Find(&votes).Error; err != nil {
		return nil, err
	}
	choices := make(map[string]string, len(votes))
	for _, vote := range votes {
		choices[vote.AliasID] = vote.OptionID
	}
	return choices, nil
}

// OptionCount is one option of a round with its live vote count.
type OptionCount struct {
	OptionID string `json:"option_id"`
	Label    string `json:"label"`
	Count    int    `json:"count"`
}

// Tally is the per-option vote distribution of a round. Options nobody has
// picked appear with a zero count; Total is the number of aliases that have
// voted.
type Tally struct {
	Options []OptionCount `json:"options"`
	Total   int           `json:"total"`
}

// TallyForRound counts the current votes per option.
func (s *Service) TallyForRound(roundID string) (*Tally, error) {
	round, err := s.RoundByID(roundID)
	if err != nil {
		return nil, err
	}

	type countRow struct {
		OptionID string
		Count    int
	}
	var rows []countRow
	if err := s.db.Model(&db.Vote{}).
		Select("option_id, COUNT(*) AS count").
		Where("round_id = ?", roundID).
		Group("option_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.OptionID] = row.Count
	}

	tally := &Tally{Options: make([]OptionCount, 0, len(round.Options))}
	for _, option := range round.Options {
		count := counts[option.ID]
		tally.Options = append(tally.Options, OptionCount{
			OptionID: option.ID,
			Label:    option.Label,
			Count:    count,
		})
		tally.Total += count
	}
	return tally, nil
}
