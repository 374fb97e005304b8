package game

import (
	"errors"
	"strings"

	"pickem-live/internal/db"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateGame creates an active game with a fresh join code and display
// token. Join codes are retried on the rare collision.
func (s *Service) CreateGame(name string) (*db.Game, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, validationf("game name is required")
	}

	var game db.Game
	for attempt := 0; attempt < 3; attempt++ {
		now := timeNowUTC()
		game = db.Game{
			ID:           uuid.NewString(),
			Name:         name,
			JoinCode:     newJoinCode(),
			DisplayToken: newDisplayToken(),
			Status:       db.GameActive,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		err := s.db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&game).Error; err != nil {
				return err
			}
			return appendEvent(tx, game.ID, nil, "game_created", EventPayload{JoinCode: game.JoinCode})
		})
		if err == nil {
			return &game, nil
		}
		if isUniqueViolation(err) {
			continue
		}
		return nil, err
	}
	return nil, errors.New("could not allocate a unique join code")
}

// EndGame transitions an active game to ENDED. Ending an already ended game
// is a no-op; rounds keep their stored state and stay queryable.
func (s *Service) EndGame(gameID string) error {
	var game db.Game
	ended := false
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&game, "id = ?", gameID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFoundf("game not found")
			}
			return err
		}
		if game.Status == db.GameEnded {
			return nil
		}
		now := timeNowUTC()
		result := tx.Model(&db.Game{}).
			Where("id = ? AND status = ?", gameID, db.GameActive).
			Updates(map[string]any{"status": db.GameEnded, "ended_at": now, "updated_at": now})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			// Lost the race to another EndGame call; still a no-op.
			return nil
		}
		ended = true
		return appendEvent(tx, gameID, nil, "game_ended", EventPayload{})
	})
	if err != nil {
		return err
	}
	if ended {
		s.notify(RoundChanged, gameID, "")
	}
	return nil
}

// GameByID returns a game with its rounds, newest round first.
func (s *Service) GameByID(gameID string) (*db.Game, error) {
	var game db.Game
	err := s.db.
		Preload("Rounds", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("round_number DESC")
		}).
		First(&game, "id = ?", gameID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFoundf("game not found")
	}
	if err != nil {
		return nil, err
	}
	return &game, nil
}

// GameByDisplayToken resolves the opaque token used by the read-only
// projection.
func (s *Service) GameByDisplayToken(token string) (*db.Game, error) {
	var game db.Game
	err := s.db.First(&game, "display_token = ?", token).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFoundf("game not found")
	}
	if err != nil {
		return nil, err
	}
	return &game, nil
}

// DisplayTokenByJoinCode maps a human-entered join code to the display
// token, so a shared screen can be pointed at a game by code.
func (s *Service) DisplayTokenByJoinCode(code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return "", validationf("join code is required")
	}
	var game db.Game
	err := s.db.Select("display_token").First(&game, "join_code = ?", code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", notFoundf("game not found")
	}
	if err != nil {
		return "", err
	}
	return game.DisplayToken, nil
}
