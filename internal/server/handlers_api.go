package server

import (
	"log"
	"net/http"
	"strconv"
)

type createGameRequest struct {
	Name string `json:"name"`
}

type createRoundRequest struct {
	Title    string   `json:"title"`
	HintText string   `json:"hint_text"`
	Options  []string `json:"options"`
}

type scoreRoundRequest struct {
	CorrectOptionID string `json:"correct_option_id"`
}

type castVoteRequest struct {
	AliasID  string `json:"alias_id"`
	OptionID string `json:"option_id"`
}

type createAliasRequest struct {
	OwnerName string `json:"owner_name"`
	Name      string `json:"name"`
}

func (s *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	var req createGameRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	game, err := s.core.CreateGame(req.Name)
	if err != nil {
		writeGameError(w, err)
		return
	}
	log.Printf("game created game_id=%s join_code=%s", game.ID, game.JoinCode)
	writeJSON(w, http.StatusCreated, buildGameView(game))
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	game, err := s.core.GameByID(r.PathValue("id"))
	if err != nil {
		writeGameError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, buildGameView(game))
}

func (s *Server) handleEndGame(w http.ResponseWriter, r *http.Request) {
	gameID := r.PathValue("id")
	if err := s.core.EndGame(gameID); err != nil {
		writeGameError(w, err)
		return
	}
	log.Printf("game ended game_id=%s", gameID)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ENDED"})
}

func (s *Server) handleCreateRound(w http.ResponseWriter, r *http.Request) {
	gameID := r.PathValue("id")
	var req createRoundRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	round, err := s.core.CreateRound(gameID, req.Title, req.HintText, req.Options)
	if err != nil {
		writeGameError(w, err)
		return
	}
	log.Printf("round created game_id=%s round_id=%s number=%d", gameID, round.ID, round.RoundNumber)
	writeJSON(w, http.StatusCreated, buildRoundView(round))
}

func (s *Server) handleListRounds(w http.ResponseWriter, r *http.Request) {
	rounds, err := s.core.ListRounds(r.PathValue("id"))
	if err != nil {
		writeGameError(w, err)
		return
	}
	views := make([]roundView, 0, len(rounds))
	for i := range rounds {
		views = append(views, buildRoundView(&rounds[i]))
	}
	writeJSON(w, http.StatusOK, map[string]any{"rounds": views})
}

func (s *Server) handleActiveRound(w http.ResponseWriter, r *http.Request) {
	round, err := s.core.ActiveRound(r.PathValue("id"))
	if err != nil {
		writeGameError(w, err)
		return
	}
	if round == nil {
		writeJSON(w, http.StatusOK, map[string]any{"round": nil})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"round": buildRoundView(round)})
}

func (s *Server) handleStandings(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil || value < 0 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = value
	}
	rows, err := s.core.Standings(r.PathValue("id"), limit)
	if err != nil {
		writeGameError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"standings": rows})
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			limit = value
		}
	}
	events, err := s.core.EventsForGame(r.PathValue("id"), limit)
	if err != nil {
		writeGameError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"events": events})
}

func (s *Server) handleOpenRound(w http.ResponseWriter, r *http.Request) {
	roundID := r.PathValue("id")
	if err := s.core.OpenRound(roundID); err != nil {
		writeGameError(w, err)
		return
	}
	log.Printf("round opened round_id=%s", roundID)
	writeJSON(w, http.StatusOK, map[string]string{"status": "OPEN"})
}

func (s *Server) handleScoreRound(w http.ResponseWriter, r *http.Request) {
	roundID := r.PathValue("id")
	var req scoreRoundRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.CorrectOptionID == "" {
		writeError(w, http.StatusBadRequest, "correct_option_id is required")
		return
	}
	if err := s.core.ScoreRound(roundID, req.CorrectOptionID); err != nil {
		writeGameError(w, err)
		return
	}
	log.Printf("round scored round_id=%s correct_option_id=%s", roundID, req.CorrectOptionID)
	writeJSON(w, http.StatusOK, map[string]string{"status": "SCORED"})
}

func (s *Server) handleCastVote(w http.ResponseWriter, r *http.Request) {
	roundID := r.PathValue("id")
	var req castVoteRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.AliasID == "" || req.OptionID == "" {
		writeError(w, http.StatusBadRequest, "alias_id and option_id are required")
		return
	}
	if err := s.core.CastVote(roundID, req.AliasID, req.OptionID); err != nil {
		writeGameError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "recorded"})
}

func (s *Server) handleVotesForRound(w http.ResponseWriter, r *http.Request) {
	votes, err := s.core.VotesForRound(r.PathValue("id"))
	if err != nil {
		writeGameError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"votes": votes})
}

func (s *Server) handleTally(w http.ResponseWriter, r *http.Request) {
	tally, err := s.core.TallyForRound(r.PathValue("id"))
	if err != nil {
		writeGameError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tally)
}

func (s *Server) handleCreateAlias(w http.ResponseWriter, r *http.Request) {
	gameID := r.PathValue("id")
	var req createAliasRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	alias, err := s.core.CreateAlias(gameID, req.OwnerName, req.Name)
	if err != nil {
		writeGameError(w, err)
		return
	}
	log.Printf("alias created game_id=%s alias_id=%s name=%s", gameID, alias.ID, alias.Name)
	writeJSON(w, http.StatusCreated, buildAliasView(alias))
}

func (s *Server) handleListAliases(w http.ResponseWriter, r *http.Request) {
	aliases, err := s.core.AliasesForGame(r.PathValue("id"), r.URL.Query().Get("owner_name"))
	if err != nil {
		writeGameError(w, err)
		return
	}
	views := make([]aliasView, 0, len(aliases))
	for i := range aliases {
		views = append(views, buildAliasView(&aliases[i]))
	}
	writeJSON(w, http.StatusOK, map[string]any{"aliases": views})
}

func (s *Server) handleDeactivateAlias(w http.ResponseWriter, r *http.Request) {
	if err := s.core.DeactivateAlias(r.PathValue("id")); err != nil {
		writeGameError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deactivated"})
}
