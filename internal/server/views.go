package server

import (
	"time"

	"pickem-live/internal/db"
)

type optionView struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

type roundView struct {
	ID          string       `json:"id"`
	RoundNumber int          `json:"round_number"`
	Title       string       `json:"title,omitempty"`
	HintText    string       `json:"hint_text,omitempty"`
	Status      string       `json:"status"`
	OpenedAt    string       `json:"opened_at,omitempty"`
	ScoredAt    string       `json:"scored_at,omitempty"`
	Options     []optionView `json:"options,omitempty"`
}

type gameView struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	JoinCode     string      `json:"join_code"`
	DisplayToken string      `json:"display_token"`
	Status       string      `json:"status"`
	EndedAt      string      `json:"ended_at,omitempty"`
	Rounds       []roundView `json:"rounds,omitempty"`
}

type aliasView struct {
	ID        string `json:"id"`
	GameID    string `json:"game_id"`
	Name      string `json:"name"`
	OwnerName string `json:"owner_name,omitempty"`
	IsActive  bool   `json:"is_active"`
}

func formatTime(value *time.Time) string {
	if value == nil {
		return ""
	}
	return value.UTC().Format(time.RFC3339)
}

func buildRoundView(round *db.Round) roundView {
	view := roundView{
		ID:          round.ID,
		RoundNumber: round.RoundNumber,
		Title:       round.Title,
		HintText:    round.HintText,
		Status:      round.Status,
		OpenedAt:    formatTime(round.OpenedAt),
		ScoredAt:    formatTime(round.ScoredAt),
	}
	for _, option := range round.Options {
		view.Options = append(view.Options, optionView{ID: option.ID, Label: option.Label})
	}
	return view
}

func buildGameView(game *db.Game) gameView {
	view := gameView{
		ID:           game.ID,
		Name:         game.Name,
		JoinCode:     game.JoinCode,
		DisplayToken: game.DisplayToken,
		Status:       game.Status,
		EndedAt:      formatTime(game.EndedAt),
	}
	for i := range game.Rounds {
		view.Rounds = append(view.Rounds, buildRoundView(&game.Rounds[i]))
	}
	return view
}

func buildAliasView(alias *db.Alias) aliasView {
	return aliasView{
		ID:        alias.ID,
		GameID:    alias.GameID,
		Name:      alias.Name,
		OwnerName: alias.OwnerName,
		IsActive:  alias.IsActive,
	}
}
