package server

import (
	"net/http"

	"pickem-live/internal/config"
	"pickem-live/internal/db"
	"pickem-live/internal/game"
)

// Core is the slice of the game engine the HTTP layer depends on. It is
// implemented by *game.Service; tests substitute a fake.
type Core interface {
	CreateGame(name string) (*db.Game, error)
	GameByID(gameID string) (*db.Game, error)
	EndGame(gameID string) error

	CreateRound(gameID, title, hintText string, options []string) (*db.Round, error)
	OpenRound(roundID string) error
	ScoreRound(roundID, correctOptionID string) error
	ActiveRound(gameID string) (*db.Round, error)
	ListRounds(gameID string) ([]db.Round, error)

	CastVote(roundID, aliasID, optionID string) error
	VotesForRound(roundID string) (map[string]string, error)
	TallyForRound(roundID string) (*game.Tally, error)
	Standings(gameID string, limit int) ([]game.StandingRow, error)

	CreateAlias(gameID, ownerName, name string) (*db.Alias, error)
	AliasesForGame(gameID, ownerName string) ([]db.Alias, error)
	DeactivateAlias(aliasID string) error

	GameByDisplayToken(token string) (*db.Game, error)
	DisplayTokenByJoinCode(code string) (string, error)
	EventsForGame(gameID string, limit int) ([]db.Event, error)
}

type Server struct {
	core Core
	hub  *Hub
	cfg  config.Config
}

func New(core Core, hub *Hub, cfg config.Config) *Server {
	if hub == nil {
		hub = NewHub()
	}
	return &Server{
		core: core,
		hub:  hub,
		cfg:  cfg,
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/games", s.handleCreateGame)
	mux.HandleFunc("GET /api/games/{id}", s.handleGetGame)
	mux.HandleFunc("POST /api/games/{id}/end", s.handleEndGame)
	mux.HandleFunc("POST /api/games/{id}/rounds", s.handleCreateRound)
	mux.HandleFunc("GET /api/games/{id}/rounds", s.handleListRounds)
	mux.HandleFunc("GET /api/games/{id}/active-round", s.handleActiveRound)
	mux.HandleFunc("GET /api/games/{id}/standings", s.handleStandings)
	mux.HandleFunc("GET /api/games/{id}/events", s.handleEvents)
	mux.HandleFunc("POST /api/games/{id}/aliases", s.handleCreateAlias)
	mux.HandleFunc("GET /api/games/{id}/aliases", s.handleListAliases)
	mux.HandleFunc("GET /api/games/{id}/qr", s.handleDisplayQR)
	mux.HandleFunc("POST /api/rounds/{id}/open", s.handleOpenRound)
	mux.HandleFunc("POST /api/rounds/{id}/score", s.handleScoreRound)
	mux.HandleFunc("POST /api/rounds/{id}/votes", s.handleCastVote)
	mux.HandleFunc("GET /api/rounds/{id}/votes", s.handleVotesForRound)
	mux.HandleFunc("GET /api/rounds/{id}/tally", s.handleTally)
	mux.HandleFunc("POST /api/aliases/{id}/deactivate", s.handleDeactivateAlias)
	mux.HandleFunc("GET /api/display/by-code", s.handleDisplayByCode)
	mux.HandleFunc("GET /api/display/{token}", s.handleDisplay)
	mux.HandleFunc("GET /ws/games/{id}", s.handleWebsocket)
	return mux
}
