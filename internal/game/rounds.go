package game

import (
	"errors"
	"strings"

	"pickem-live/internal/db"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// normalizeOptions trims labels, drops empties and exact duplicates, and
// requires at least two distinct labels to remain.
func normalizeOptions(options []string) ([]string, error) {
	seen := make(map[string]struct{}, len(options))
	labels := make([]string, 0, len(options))
	for _, option := range options {
		label := strings.TrimSpace(option)
		if label == "" {
			continue
		}
		if _, dup := seen[label]; dup {
			continue
		}
		seen[label] = struct{}{}
		labels = append(labels, label)
	}
	if len(labels) < 2 {
		return nil, validationf("a round needs at least 2 distinct options")
	}
	return labels, nil
}

// CreateRound creates a DRAFT round with its options in one transaction.
// Round numbers are assigned as max+1 per game; a concurrent creation that
// takes the same number trips the (game_id, round_number) unique index and
// the allocation is retried.
func (s *Service) CreateRound(gameID, title, hintText string, options []string) (*db.Round, error) {
	labels, err := normalizeOptions(options)
	if err != nil {
		return nil, err
	}
	title = strings.TrimSpace(title)
	hintText = strings.TrimSpace(hintText)

	var round db.Round
	for attempt := 0; attempt < 3; attempt++ {
		err = s.db.Transaction(func(tx *gorm.DB) error {
			// FOR SHARE holds the game row so a concurrent EndGame cannot
			// commit between this status check and the round insert.
			var game db.Game
			if err := tx.Clauses(clause.Locking{Strength: "SHARE"}).
				First(&game, "id = ?", gameID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return notFoundf("game not found")
				}
				return err
			}
			if game.Status == db.GameEnded {
				return validationf("game has ended")
			}

			var maxNumber int
			if err := tx.Model(&db.Round{}).
				Where("game_id = ?", gameID).
				Select("COALESCE(MAX(round_number), 0)").
				Scan(&maxNumber).Error; err != nil {
				return err
			}

			now := timeNowUTC()
			round = db.Round{
				ID:          uuid.NewString(),
				GameID:      gameID,
				RoundNumber: maxNumber + 1,
				Title:       title,
				HintText:    hintText,
				Status:      db.RoundDraft,
				CreatedAt:   now,
				UpdatedAt:   now,
			}
			if err := tx.Create(&round).Error; err != nil {
				return err
			}
			for position, label := range labels {
				option := db.Option{
					ID:        uuid.NewString(),
					RoundID:   round.ID,
					Label:     label,
					Position:  position,
					CreatedAt: now,
				}
				if err := tx.Create(&option).Error; err != nil {
					return err
				}
				round.Options = append(round.Options, option)
			}
			return appendEvent(tx, gameID, &round.ID, "round_created", EventPayload{
				RoundNumber: round.RoundNumber,
			})
		})
		if err == nil {
			s.notify(RoundChanged, gameID, round.ID)
			return &round, nil
		}
		if isUniqueViolation(err) {
			continue
		}
		return nil, err
	}
	return nil, conflictf("could not allocate a round number, try again")
}

// OpenRound transitions a DRAFT round to OPEN. The partial unique index on
// (game_id) WHERE status='OPEN' guarantees that of two concurrent opens in
// the same game exactly one commits; the loser surfaces as a ConflictError.
func (s *Service) OpenRound(roundID string) error {
	var gameID string
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var round db.Round
		if err := tx.First(&round, "id = ?", roundID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFoundf("round not found")
			}
			return err
		}
		gameID = round.GameID

		// Same FOR SHARE discipline as CreateRound: the round must not open
		// on a game that ends concurrently.
		var game db.Game
		if err := tx.Clauses(clause.Locking{Strength: "SHARE"}).
			First(&game, "id = ?", round.GameID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFoundf("game not found")
			}
			return err
		}
		if game.Status == db.GameEnded {
			return invalidStatef("game has ended")
		}
		if round.Status != db.RoundDraft {
			return invalidStatef("round is not in draft")
		}

		now := timeNowUTC()
		result := tx.Model(&db.Round{}).
			Where("id = ? AND status = ?", roundID, db.RoundDraft).
			Updates(map[string]any{"status": db.RoundOpen, "opened_at": now, "updated_at": now})
		if result.Error != nil {
			if isUniqueViolation(result.Error) {
				return conflictf("another round is already open")
			}
			return result.Error
		}
		if result.RowsAffected == 0 {
			return invalidStatef("round is not in draft")
		}
		return appendEvent(tx, round.GameID, &round.ID, "round_opened", EventPayload{
			RoundNumber: round.RoundNumber,
		})
	})
	if err != nil {
		return err
	}
	s.notify(RoundChanged, gameID, roundID)
	return nil
}

// ScoreRound transitions an OPEN round to SCORED exactly once, awards points
// for correct votes, and updates the leaderboard, all in one transaction.
func (s *Service) ScoreRound(roundID, correctOptionID string) error {
	var gameID string
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var round db.Round
		if err := tx.First(&round, "id = ?", roundID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFoundf("round not found")
			}
			return err
		}
		gameID = round.GameID

		var option db.Option
		if err := tx.First(&option, "id = ? AND round_id = ?", correctOptionID, roundID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return validationf("option does not belong to this round")
			}
			return err
		}

		// Single check-and-set makes scoring exactly-once: the second of
		// two concurrent attempts matches zero rows.
		now := timeNowUTC()
		result := tx.Model(&db.Round{}).
			Where("id = ? AND status = ?", roundID, db.RoundOpen).
			Updates(map[string]any{"status": db.RoundScored, "scored_at": now, "updated_at": now})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return invalidStatef("round is not open")
		}

		var votes []db.Vote
		if err := tx.Where("round_id = ?", roundID).Find(&votes).Error; err != nil {
			return err
		}
		deltas := scoreVotes(votes, correctOptionID, s.pointsPerCorrect)
		if err := applyScoringDeltas(tx, round.GameID, deltas); err != nil {
			return err
		}
		return appendEvent(tx, round.GameID, &round.ID, "round_scored", EventPayload{
			RoundNumber:     round.RoundNumber,
			CorrectOptionID: correctOptionID,
			VoteCount:       len(votes),
			CorrectCount:    len(deltas),
		})
	})
	if err != nil {
		return err
	}
	s.notify(ScoreChanged, gameID, roundID)
	s.notify(RoundChanged, gameID, roundID)
	return nil
}

// ActiveRound returns the single OPEN round for a game with its options, or
// nil when no round is open.
func (s *Service) ActiveRound(gameID string) (*db.Round, error) {
	var round db.Round
	err := s.db.
		Preload("Options", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("position ASC")
		}).
		First(&round, "game_id = ? AND status = ?", gameID, db.RoundOpen).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &round, nil
}

// RoundByID returns a round with its options.
func (s *Service) RoundByID(roundID string) (*db.Round, error) {
	var round db.Round
	err := s.db.
		Preload("Options", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("position ASC")
		}).
		First(&round, "id = ?", roundID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFoundf("round not found")
	}
	if err != nil {
		return nil, err
	}
	return &round, nil
}

// ListRounds returns all rounds of a game, newest first, for the host view.
func (s *Service) ListRounds(gameID string) ([]db.Round, error) {
	var rounds []db.Round
	err := s.db.
		Preload("Options", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("position ASC")
		}).
		Where("game_id = ?", gameID).
		Order("round_number DESC").
		Find(&rounds).Error
	if err != nil {
		return nil, err
	}
	return rounds, nil
}
