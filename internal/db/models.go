package db

import (
	"time"

	"gorm.io/datatypes"
)

const (
	GameActive = "ACTIVE"
	GameEnded  = "ENDED"

	RoundDraft  = "DRAFT"
	RoundOpen   = "OPEN"
	RoundClosed = "CLOSED"
	RoundScored = "SCORED"
)

type Game struct {
	ID           string `gorm:"type:uuid;primaryKey"`
	Name         string `gorm:"size:120;not null"`
	JoinCode     string `gorm:"size:12;uniqueIndex;not null"`
	DisplayToken string `gorm:"type:uuid;uniqueIndex;not null"`
	Status       string `gorm:"size:16;not null;default:'ACTIVE'"`
	EndedAt      *time.Time
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
	Rounds       []Round
	Aliases      []Alias
	Events       []Event
}

type Round struct {
	ID          string `gorm:"type:uuid;primaryKey"`
	GameID      string `gorm:"type:uuid;index;not null;uniqueIndex:idx_rounds_game_number"`
	RoundNumber int    `gorm:"not null;uniqueIndex:idx_rounds_game_number"`
	Title       string `gorm:"size:200"`
	HintText    string `gorm:"size:500"`
	Status      string `gorm:"size:16;not null;default:'DRAFT'"`
	OpenedAt    *time.Time
	ScoredAt    *time.Time
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
	Options     []Option  `gorm:"constraint:OnDelete:CASCADE"`
	Votes       []Vote
}

type Option struct {
	ID        string    `gorm:"type:uuid;primaryKey"`
	RoundID   string    `gorm:"type:uuid;index;not null"`
	Label     string    `gorm:"size:200;not null"`
	Position  int       `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
}

type Alias struct {
	ID        string    `gorm:"type:uuid;primaryKey"`
	GameID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_aliases_game_name"`
	Name      string    `gorm:"size:64;not null;uniqueIndex:idx_aliases_game_name"`
	OwnerName string    `gorm:"size:64"`
	IsActive  bool      `gorm:"not null;default:true"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type Vote struct {
	ID        string    `gorm:"type:uuid;primaryKey"`
	RoundID   string    `gorm:"type:uuid;not null;uniqueIndex:idx_votes_round_alias"`
	AliasID   string    `gorm:"type:uuid;not null;uniqueIndex:idx_votes_round_alias"`
	OptionID  string    `gorm:"type:uuid;index;not null"`
	OwnerName string    `gorm:"size:64"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type AliasScore struct {
	ID           string    `gorm:"type:uuid;primaryKey"`
	GameID       string    `gorm:"type:uuid;not null;uniqueIndex:idx_alias_scores_game_alias"`
	AliasID      string    `gorm:"type:uuid;not null;uniqueIndex:idx_alias_scores_game_alias"`
	Points       int       `gorm:"not null;default:0"`
	CorrectCount int       `gorm:"not null;default:0"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

type Event struct {
	ID        uint           `gorm:"primaryKey"`
	GameID    string         `gorm:"type:uuid;index;not null"`
	RoundID   *string        `gorm:"type:uuid;index"`
	Type      string         `gorm:"size:64;not null"`
	Payload   datatypes.JSON `gorm:"type:jsonb;not null"`
	CreatedAt time.Time      `gorm:"not null"`
}
