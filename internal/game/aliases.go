package game

import (
	"errors"
	"strings"

	"pickem-live/internal/db"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateAlias registers a named persona in a game. A participant may hold
// several aliases; each votes independently. Names are unique per game.
func (s *Service) CreateAlias(gameID, ownerName, name string) (*db.Alias, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, validationf("alias name is required")
	}
	ownerName = strings.TrimSpace(ownerName)

	var alias db.Alias
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var game db.Game
		if err := tx.First(&game, "id = ?", gameID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFoundf("game not found")
			}
			return err
		}
		if game.Status == db.GameEnded {
			return validationf("game has ended")
		}
		now := timeNowUTC()
		alias = db.Alias{
			ID:        uuid.NewString(),
			GameID:    gameID,
			Name:      name,
			OwnerName: ownerName,
			IsActive:  true,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := tx.Create(&alias).Error; err != nil {
			if isUniqueViolation(err) {
				return validationf("alias name is already taken in this game")
			}
			return err
		}
		return appendEvent(tx, gameID, nil, "alias_created", EventPayload{
			AliasID:   alias.ID,
			AliasName: alias.Name,
		})
	})
	if err != nil {
		return nil, err
	}
	return &alias, nil
}

// AliasesForGame lists aliases in a game, optionally filtered by owner.
func (s *Service) AliasesForGame(gameID, ownerName string) ([]db.Alias, error) {
	query := s.db.Where("game_id = ?", gameID).Order("name ASC")
	if owner := strings.TrimSpace(ownerName); owner != "" {
		query = query.Where("owner_name = ?", owner)
	}
	var aliases []db.Alias
	if err := query.Find(&aliases).Error; err != nil {
		return nil, err
	}
	return aliases, nil
}

// DeactivateAlias hides an alias from future rounds without touching its
// accumulated score or past votes.
func (s *Service) DeactivateAlias(aliasID string) error {
	result := s.db.Model(&db.Alias{}).
		Where("id = ?", aliasID).
		Updates(map[string]any{"is_active": false, "updated_at": timeNowUTC()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return notFoundf("alias not found")
	}
	return nil
}
