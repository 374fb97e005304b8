package game

import (
	"encoding/json"

	"pickem-live/internal/db"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// EventPayload is the jsonb body of an outbox row. Fields are optional and
// depend on the event type.
type EventPayload struct {
	JoinCode        string `json:"join_code,omitempty"`
	RoundNumber     int    `json:"round_number,omitempty"`
	AliasID         string `json:"alias_id,omitempty"`
	AliasName       string `json:"alias_name,omitempty"`
	OptionID        string `json:"option_id,omitempty"`
	CorrectOptionID string `json:"correct_option_id,omitempty"`
	VoteCount       int    `json:"vote_count,omitempty"`
	CorrectCount    int    `json:"correct_count,omitempty"`
}

// appendEvent writes an outbox row inside the caller's transaction so the
// event commits with the mutation it describes, or not at all.
func appendEvent(tx *gorm.DB, gameID string, roundID *string, eventType string, payload EventPayload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	record := db.Event{
		GameID:    gameID,
		RoundID:   roundID,
		Type:      eventType,
		Payload:   datatypes.JSON(data),
		CreatedAt: timeNowUTC(),
	}
	return tx.Create(&record).Error
}

// EventsForGame returns the committed event history for a game, oldest first.
func (s *Service) EventsForGame(gameID string, limit int) ([]db.Event, error) {
	var events []db.Event
	query := s.db.Where("game_id = ?", gameID).Order("id ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}
